package main

import (
	"testing"

	"github.com/brutella/hap/characteristic"
	client "github.com/caarlos0/amt8000"
	"github.com/stretchr/testify/require"
)

func TestAllZones(t *testing.T) {
	cfg := Config{
		MotionZones:  []int{3, 1},
		ContactZones: []int{2, 5},
		ZoneNames:    []string{"Living room", "", "Kitchen"},
	}

	zones := cfg.allZones()
	require.Equal(t, []zoneConfig{
		{number: 1, name: "Living room", kind: kindMotion},
		{number: 2, name: "Zone 2", kind: kindContact},
		{number: 3, name: "Kitchen", kind: kindMotion},
		{number: 5, name: "Zone 5", kind: kindContact},
	}, zones)

	require.Equal(t, `zone 1: "Living room" (motion)
zone 2: "Zone 2" (contact)
zone 3: "Kitchen" (motion)
zone 5: "Zone 5" (contact)`, allZoneConfigs(zones).String())
}

func TestGetAlarmState(t *testing.T) {
	cfg := Config{PartialMode: "stay"}

	t.Run("siren wins", func(t *testing.T) {
		require.Equal(
			t,
			characteristic.SecuritySystemCurrentStateAlarmTriggered,
			cfg.getAlarmState(client.Status{
				State: client.StateDisarmed,
				Siren: true,
			}),
		)
	})

	t.Run("disarmed", func(t *testing.T) {
		require.Equal(
			t,
			characteristic.SecuritySystemCurrentStateDisarmed,
			cfg.getAlarmState(client.Status{State: client.StateDisarmed}),
		)
	})

	t.Run("armed away", func(t *testing.T) {
		require.Equal(
			t,
			characteristic.SecuritySystemCurrentStateAwayArm,
			cfg.getAlarmState(client.Status{State: client.StateArmed}),
		)
	})

	t.Run("partial as stay", func(t *testing.T) {
		require.Equal(
			t,
			characteristic.SecuritySystemCurrentStateStayArm,
			cfg.getAlarmState(client.Status{State: client.StatePartial}),
		)
	})

	t.Run("partial as night", func(t *testing.T) {
		cfg := Config{PartialMode: "night"}
		require.Equal(
			t,
			characteristic.SecuritySystemCurrentStateNightArm,
			cfg.getAlarmState(client.Status{State: client.StatePartial}),
		)
	})

	t.Run("unknown", func(t *testing.T) {
		require.Equal(t, -1, cfg.getAlarmState(client.Status{State: client.State(2)}))
	})
}

func TestZoneLayoutConfig(t *testing.T) {
	layout, err := Config{ZoneLayout: "v2"}.zoneLayout()
	require.NoError(t, err)
	require.Equal(t, client.ZoneLayoutV2, layout)

	_, err = Config{ZoneLayout: "v9"}.zoneLayout()
	require.Error(t, err)
}
