package amt8000

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBatteryStatus(t *testing.T) {
	payload := make([]byte, 135)
	for octet, want := range map[byte]BatteryStatus{
		0x00: BatteryStatusUnknown,
		0x01: BatteryStatusDead,
		0x02: BatteryStatusLow,
		0x03: BatteryStatusMiddle,
		0x04: BatteryStatusFull,
		0x05: BatteryStatusUnknown,
	} {
		payload[134] = octet
		require.Equal(t, want, batteryStatusFor(payload), "octet 0x%02x", octet)
	}
}

func TestBatteryLevel(t *testing.T) {
	require.Equal(t, 0, BatteryStatusUnknown.Level())
	require.Equal(t, 0, BatteryStatusDead.Level())
	require.Equal(t, 20, BatteryStatusLow.Level())
	require.Equal(t, 50, BatteryStatusMiddle.Level())
	require.Equal(t, 100, BatteryStatusFull.Level())
}

func TestBatteryString(t *testing.T) {
	require.Equal(t, "unknown", BatteryStatusUnknown.String())
	require.Equal(t, "dead", BatteryStatusDead.String())
	require.Equal(t, "low", BatteryStatusLow.String())
	require.Equal(t, "middle", BatteryStatusMiddle.String())
	require.Equal(t, "full", BatteryStatusFull.String())
}
