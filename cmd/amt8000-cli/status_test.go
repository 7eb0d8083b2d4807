package main

import (
	"encoding/json"
	"testing"

	client "github.com/caarlos0/amt8000"
	"github.com/stretchr/testify/require"
)

func TestZoneSummary(t *testing.T) {
	require.Equal(t, "none", zoneSummary(nil))
	require.Equal(t, "1:open 3:triggered,tamper", zoneSummary(map[int]client.ZoneProblems{
		3: client.ZoneProblems(client.ZoneTriggered | client.ZoneTamper),
		1: client.ZoneProblems(client.ZoneOpen),
	}))
}

func TestStatusToJSON(t *testing.T) {
	status := client.Status{
		Model:       "AMT-8000",
		Version:     client.Version{Major: 9, Minor: 1, Patch: 2},
		State:       client.StateArmed,
		Siren:       true,
		ZonesFiring: true,
		Tamper:      false,
		Battery:     client.BatteryStatusLow,
		Zones: map[int]client.ZoneProblems{
			2: client.ZoneProblems(client.ZoneTriggered | client.ZoneOpen),
		},
	}

	bts, err := json.Marshal(statusToJSON(status))
	require.NoError(t, err)
	require.JSONEq(t, `{
		"model": "AMT-8000",
		"version": "9.1.2",
		"state": "armed_away",
		"siren": true,
		"zones_firing": true,
		"zones_closed": false,
		"tamper": false,
		"battery": "low",
		"zones": {
			"2": {"problems": ["triggered", "open"], "severest": "triggered"}
		}
	}`, string(bts))
}

func TestStatusKey(t *testing.T) {
	status := client.Status{
		State:   client.StateDisarmed,
		Battery: client.BatteryStatusFull,
		Zones: map[int]client.ZoneProblems{
			1: client.ZoneProblems(client.ZoneOpen),
		},
	}
	require.Equal(t, statusKey(status), statusKey(status))

	opened := status
	opened.Zones = map[int]client.ZoneProblems{
		1: client.ZoneProblems(client.ZoneOpen),
		2: client.ZoneProblems(client.ZoneOpen),
	}
	require.NotEqual(t, statusKey(status), statusKey(opened))
}
