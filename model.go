package amt8000

import "fmt"

// State is the arm state of the central, from bits 5 and 6 of the status
// byte.
type State byte

const (
	StateDisarmed State = 0x00
	StatePartial  State = 0x01
	StateArmed    State = 0x03 // one must ask what 0x02 is... and why its missing...
)

func (s State) String() string {
	switch s {
	case StateDisarmed:
		return "disarmed"
	case StatePartial:
		return "partial_armed"
	case StateArmed:
		return "armed_away"
	default:
		return "unknown"
	}
}

type Version struct {
	Major, Minor, Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Status is one decoded status report. Zones holds the 1-based numbers of
// the zones reporting at least one problem, quiet zones are absent.
type Status struct {
	Model       string
	Version     Version
	State       State
	ZonesFiring bool
	ZonesClosed bool
	Siren       bool
	Tamper      bool
	Battery     BatteryStatus
	Zones       map[int]ZoneProblems
}

const maxZones = 64

// DecodeStatus decodes a raw status response frame, zone block per the given
// layout. An error means the whole report is unusable, fields past the end
// of a short but valid payload simply keep their zero value.
func DecodeStatus(raw []byte, layout ZoneLayout) (Status, error) {
	payload, err := parseFrame(raw)
	if err != nil {
		return Status{}, fmt.Errorf("could not decode status: %w", err)
	}
	if len(payload) < 22 {
		return Status{}, fmt.Errorf("could not decode status: payload too short: %d bytes", len(payload))
	}
	status := Status{
		Model: modelName(payload[0]),
		Version: Version{
			Major: int(payload[1]),
			Minor: int(payload[2]),
			Patch: int(payload[3]),
		},
		State:       State(payload[20] >> 5 & 0x03),
		ZonesFiring: payload[20]&0x8 > 0,
		ZonesClosed: payload[20]&0x4 > 0,
		Siren:       payload[20]&0x2 > 0,
		Battery:     batteryStatusFor(payload),
		Zones:       map[int]ZoneProblems{},
	}
	if len(payload) >= 72 {
		status.Tamper = payload[71]&(1<<0x01) > 0
	}
	for i := 0; i < maxZones && layout.Start+i < len(payload); i++ {
		if probs := layout.problems(payload[layout.Start+i]); probs > 0 {
			status.Zones[i+1] = probs
		}
	}
	return status, nil
}

func modelName(b byte) string {
	switch b {
	case 0x01:
		return "AMT-8000"
	default:
		return "Unknown"
	}
}
