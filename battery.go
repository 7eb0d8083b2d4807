package amt8000

type BatteryStatus uint8

const (
	BatteryStatusUnknown BatteryStatus = iota
	BatteryStatusDead
	BatteryStatusLow
	BatteryStatusMiddle
	BatteryStatusFull
)

func (b BatteryStatus) String() string {
	switch b {
	case BatteryStatusDead:
		return "dead"
	case BatteryStatusLow:
		return "low"
	case BatteryStatusMiddle:
		return "middle"
	case BatteryStatusFull:
		return "full"
	default:
		return "unknown"
	}
}

// Level maps the status to a charge percentage.
func (b BatteryStatus) Level() int {
	switch b {
	case BatteryStatusLow:
		return 20
	case BatteryStatusMiddle:
		return 50
	case BatteryStatusFull:
		return 100
	default: // <= Dead
		return 0
	}
}

func batteryStatusFor(payload []byte) BatteryStatus {
	if len(payload) < 135 {
		return BatteryStatusUnknown
	}
	switch payload[134] {
	case 0x01:
		return BatteryStatusDead
	case 0x02:
		return BatteryStatusLow
	case 0x03:
		return BatteryStatusMiddle
	case 0x04:
		return BatteryStatusFull
	default:
		return BatteryStatusUnknown
	}
}
