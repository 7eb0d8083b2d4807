package main

import (
	"errors"
	"testing"

	client "github.com/caarlos0/amt8000"
	"github.com/stretchr/testify/require"
)

func TestHAAlarmState(t *testing.T) {
	cfg := Config{PartialMode: "stay"}
	night := Config{PartialMode: "night"}

	require.Equal(t, "disarmed", haAlarmState(cfg, client.Status{State: client.StateDisarmed}))
	require.Equal(t, "armed_away", haAlarmState(cfg, client.Status{State: client.StateArmed}))
	require.Equal(t, "armed_home", haAlarmState(cfg, client.Status{State: client.StatePartial}))
	require.Equal(t, "armed_night", haAlarmState(night, client.Status{State: client.StatePartial}))
	require.Equal(t, "triggered", haAlarmState(cfg, client.Status{
		State: client.StateArmed,
		Siren: true,
	}))
	require.Empty(t, haAlarmState(cfg, client.Status{State: client.State(2)}))
}

func TestStatusPayload(t *testing.T) {
	cfg := Config{ZoneNames: []string{"Front door"}}
	status := client.Status{
		Model:   "AMT-8000",
		Version: client.Version{Major: 9, Minor: 1, Patch: 2},
		State:   client.StatePartial,
		Tamper:  true,
		Battery: client.BatteryStatusFull,
		Zones: map[int]client.ZoneProblems{
			1: client.ZoneProblems(client.ZoneOpen | client.ZoneLowBattery),
			3: client.ZoneProblems(client.ZoneTriggered),
		},
	}

	require.JSONEq(t, `{
		"model": "AMT-8000",
		"version": "9.1.2",
		"state": "partial_armed",
		"siren": false,
		"tamper": true,
		"battery": "full",
		"zones": {
			"1": {"name": "Front door", "open": true, "problems": ["open", "low_battery"]},
			"3": {"name": "Zone 3", "open": true, "problems": ["triggered"]}
		}
	}`, statusPayload(cfg, status))
}

func TestStatusPayloadQuietZone(t *testing.T) {
	status := client.Status{
		Model:   "AMT-8000",
		State:   client.StateDisarmed,
		Battery: client.BatteryStatusMiddle,
		Zones: map[int]client.ZoneProblems{
			2: client.ZoneProblems(client.ZoneBypassed),
		},
	}

	require.JSONEq(t, `{
		"model": "AMT-8000",
		"version": "0.0.0",
		"state": "disarmed",
		"siren": false,
		"tamper": false,
		"battery": "middle",
		"zones": {
			"2": {"name": "Zone 2", "open": false, "problems": ["bypassed"]}
		}
	}`, statusPayload(Config{}, status))
}

func TestMQTTCommands(t *testing.T) {
	var calls int
	b := &mqttBridge{
		cfg: Config{
			AwayPartitions:  []int{0},
			StayPartitions:  []int{1, 2},
			NightPartitions: []int{3},
		},
		execute: func(_ func(cli *client.Client) error) error {
			calls++
			return nil
		},
	}

	for _, tt := range []struct {
		payload string
		calls   int
	}{
		{"DISARM", 1},
		{"ARM_AWAY", 2},
		{"ARM_HOME", 3},
		{"ARM_NIGHT", 2},
		{"TRIGGER", 1},
		{"SELF_DESTRUCT", 0},
	} {
		t.Run(tt.payload, func(t *testing.T) {
			calls = 0
			b.handleCommand(tt.payload)
			require.Equal(t, tt.calls, calls)
		})
	}
}

func TestMQTTArmStopsOnFailure(t *testing.T) {
	var calls int
	b := &mqttBridge{
		cfg: Config{StayPartitions: []int{1, 2, 3}},
		execute: func(_ func(cli *client.Client) error) error {
			calls++
			if calls == 2 {
				return errors.New("central is not in the mood")
			}
			return nil
		},
	}

	require.Error(t, b.arm(b.cfg.StayPartitions))
	require.Equal(t, 2, calls)
}
