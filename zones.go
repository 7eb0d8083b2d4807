package amt8000

import (
	"fmt"
	"strings"
)

// ZoneProblem is one condition a zone can report in a status frame.
type ZoneProblem uint8

const (
	ZoneOpen ZoneProblem = 1 << iota
	ZoneTamper
	ZoneBypassed
	ZoneLowBattery
	ZoneCommFailure
	ZoneTriggered
)

func (p ZoneProblem) String() string {
	switch p {
	case ZoneOpen:
		return "open"
	case ZoneTamper:
		return "tamper"
	case ZoneBypassed:
		return "bypassed"
	case ZoneLowBattery:
		return "low_battery"
	case ZoneCommFailure:
		return "comm_failure"
	case ZoneTriggered:
		return "triggered"
	default:
		return "unknown"
	}
}

// severity orders problems from most to least urgent.
var severity = []ZoneProblem{
	ZoneTriggered,
	ZoneTamper,
	ZoneOpen,
	ZoneLowBattery,
	ZoneCommFailure,
	ZoneBypassed,
}

// ZoneProblems is the set of conditions a zone reported in one status frame.
type ZoneProblems uint8

func (ps ZoneProblems) Has(p ZoneProblem) bool {
	return uint8(ps)&uint8(p) > 0
}

// Problems lists the conditions in the set, most urgent first.
func (ps ZoneProblems) Problems() []ZoneProblem {
	var out []ZoneProblem
	for _, p := range severity {
		if ps.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

// Severest returns the most urgent condition in the set, zero when empty.
func (ps ZoneProblems) Severest() ZoneProblem {
	for _, p := range severity {
		if ps.Has(p) {
			return p
		}
	}
	return 0
}

func (ps ZoneProblems) String() string {
	probs := ps.Problems()
	names := make([]string, 0, len(probs))
	for _, p := range probs {
		names = append(names, p.String())
	}
	return strings.Join(names, ",")
}

// ZoneLayout locates the zone block inside a status payload and maps its per
// zone bits to problems. Firmwares moved the block around and shuffled the
// bits, so the layout is explicit configuration, never guessed from the
// frame.
type ZoneLayout struct {
	Name  string
	Start int
	Bits  [6]ZoneProblem
}

var (
	// ZoneLayoutV1 matches the original firmware family. Default.
	ZoneLayoutV1 = ZoneLayout{
		Name:  "v1",
		Start: 21,
		Bits: [6]ZoneProblem{
			ZoneOpen,
			ZoneTamper,
			ZoneBypassed,
			ZoneLowBattery,
			ZoneCommFailure,
			ZoneTriggered,
		},
	}

	// ZoneLayoutV2 matches later firmwares, which moved the block past the
	// partition table and reordered the bits.
	ZoneLayoutV2 = ZoneLayout{
		Name:  "v2",
		Start: 84,
		Bits: [6]ZoneProblem{
			ZoneOpen,
			ZoneTriggered,
			ZoneBypassed,
			ZoneTamper,
			ZoneLowBattery,
			ZoneCommFailure,
		},
	}
)

// ParseZoneLayout resolves a layout by name. An empty name picks the
// default.
func ParseZoneLayout(name string) (ZoneLayout, error) {
	switch name {
	case "", ZoneLayoutV1.Name:
		return ZoneLayoutV1, nil
	case ZoneLayoutV2.Name:
		return ZoneLayoutV2, nil
	default:
		return ZoneLayout{}, fmt.Errorf("unknown zone layout: %q", name)
	}
}

func (l ZoneLayout) problems(octet byte) ZoneProblems {
	var ps ZoneProblems
	for i, p := range l.Bits {
		if octet&(1<<i) > 0 {
			ps |= ZoneProblems(p)
		}
	}
	return ps
}
