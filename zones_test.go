package amt8000

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestZoneProblems(t *testing.T) {
	ps := ZoneProblems(ZoneOpen | ZoneLowBattery | ZoneTriggered)

	require.True(t, ps.Has(ZoneOpen))
	require.True(t, ps.Has(ZoneTriggered))
	require.False(t, ps.Has(ZoneTamper))
	require.False(t, ps.Has(ZoneBypassed))

	require.Equal(t, []ZoneProblem{ZoneTriggered, ZoneOpen, ZoneLowBattery}, ps.Problems())
	require.Equal(t, ZoneTriggered, ps.Severest())
	require.Equal(t, "triggered,open,low_battery", ps.String())
}

func TestZoneProblemsEmpty(t *testing.T) {
	var ps ZoneProblems
	require.Empty(t, ps.Problems())
	require.Equal(t, ZoneProblem(0), ps.Severest())
	require.Equal(t, "", ps.String())
	require.Equal(t, "unknown", ps.Severest().String())
}

func TestZoneProblemsSeverity(t *testing.T) {
	// every problem outranks the ones after it
	for i, p := range severity {
		ps := ZoneProblems(p)
		for _, lesser := range severity[i+1:] {
			ps |= ZoneProblems(lesser)
		}
		require.Equal(t, p, ps.Severest())
	}
}

func TestZoneLayoutProblems(t *testing.T) {
	t.Run("v1", func(t *testing.T) {
		require.Equal(t, ZoneProblems(ZoneOpen), ZoneLayoutV1.problems(0x01))
		require.Equal(t, ZoneProblems(ZoneTamper), ZoneLayoutV1.problems(0x02))
		require.Equal(t, ZoneProblems(ZoneBypassed), ZoneLayoutV1.problems(0x04))
		require.Equal(t, ZoneProblems(ZoneLowBattery), ZoneLayoutV1.problems(0x08))
		require.Equal(t, ZoneProblems(ZoneCommFailure), ZoneLayoutV1.problems(0x10))
		require.Equal(t, ZoneProblems(ZoneTriggered), ZoneLayoutV1.problems(0x20))
		require.Equal(t, ZoneProblems(0), ZoneLayoutV1.problems(0x00))
	})

	t.Run("v2", func(t *testing.T) {
		require.Equal(t, ZoneProblems(ZoneOpen), ZoneLayoutV2.problems(0x01))
		require.Equal(t, ZoneProblems(ZoneTriggered), ZoneLayoutV2.problems(0x02))
		require.Equal(t, ZoneProblems(ZoneBypassed), ZoneLayoutV2.problems(0x04))
		require.Equal(t, ZoneProblems(ZoneTamper), ZoneLayoutV2.problems(0x08))
		require.Equal(t, ZoneProblems(ZoneLowBattery), ZoneLayoutV2.problems(0x10))
		require.Equal(t, ZoneProblems(ZoneCommFailure), ZoneLayoutV2.problems(0x20))
	})

	t.Run("stray bits", func(t *testing.T) {
		require.Equal(t, ZoneProblems(ZoneOpen), ZoneLayoutV1.problems(0x41))
	})
}

func TestParseZoneLayout(t *testing.T) {
	for name, want := range map[string]ZoneLayout{
		"":   ZoneLayoutV1,
		"v1": ZoneLayoutV1,
		"v2": ZoneLayoutV2,
	} {
		layout, err := ParseZoneLayout(name)
		require.NoError(t, err)
		require.Equal(t, want, layout, "layout %q", name)
	}

	_, err := ParseZoneLayout("v3")
	require.Error(t, err)
}
