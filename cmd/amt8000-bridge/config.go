package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/brutella/hap/characteristic"
	client "github.com/caarlos0/amt8000"
	"golang.org/x/exp/slices"
)

type Config struct {
	Host            string        `env:"HOST,notEmpty"`
	Port            string        `env:"PORT"          envDefault:"9009"`
	Password        string        `env:"PASSWORD,notEmpty"`
	MotionZones     []int         `env:"MOTION"`
	ContactZones    []int         `env:"CONTACT"`
	ZoneNames       []string      `env:"ZONE_NAMES"`
	AwayPartitions  []int         `env:"AWAY"          envDefault:"0"`
	StayPartitions  []int         `env:"STAY"          envDefault:"0"`
	NightPartitions []int         `env:"NIGHT"         envDefault:"0"`
	PartialMode     string        `env:"PARTIAL_MODE"  envDefault:"stay"`
	ZoneLayout      string        `env:"ZONE_LAYOUT"   envDefault:"v1"`
	PollInterval    time.Duration `env:"POLL_INTERVAL" envDefault:"10s"`
	Address         string        `env:"LISTEN"        envDefault:":9009"`

	MQTTBroker   string `env:"MQTT_BROKER"`
	MQTTUsername string `env:"MQTT_USERNAME"`
	MQTTPassword string `env:"MQTT_PASSWORD"`
	MQTTPrefix   string `env:"MQTT_PREFIX" envDefault:"amt8000"`
}

type zoneKind uint8

const (
	kindMotion = iota + 1
	kindContact
)

func (z zoneKind) String() string {
	switch z {
	case kindMotion:
		return "motion"
	default:
		return "contact"
	}
}

type zoneConfig struct {
	number int
	name   string
	kind   zoneKind
}

func (c Config) zoneName(n int) string {
	names := c.ZoneNames
	if len(names) > n-1 {
		if n := names[n-1]; n != "" {
			return n
		}
	}
	return fmt.Sprintf("Zone %d", n)
}

type allZoneConfigs []zoneConfig

func (a allZoneConfigs) String() string {
	var zones []string
	for _, zone := range a {
		zones = append(
			zones,
			fmt.Sprintf("zone %d: %q (%s)", zone.number, zone.name, zone.kind.String()),
		)
	}
	return strings.Join(zones, "\n")
}

func (c Config) allZones() []zoneConfig {
	var zones []zoneConfig
	for _, z := range c.MotionZones {
		zones = append(zones, zoneConfig{
			number: z,
			name:   c.zoneName(z),
			kind:   kindMotion,
		})
	}
	for _, z := range c.ContactZones {
		zones = append(zones, zoneConfig{
			number: z,
			name:   c.zoneName(z),
			kind:   kindContact,
		})
	}
	slices.SortFunc(zones, func(a, b zoneConfig) int {
		if a.number > b.number {
			return 1
		}
		return -1
	})
	return zones
}

// getAlarmState maps a status report to a homekit current state. The report
// does not say which partitions make a partial arming, so PARTIAL_MODE
// decides whether partial shows as stay or night.
func (c Config) getAlarmState(status client.Status) int {
	if status.Siren {
		return characteristic.SecuritySystemCurrentStateAlarmTriggered
	}

	switch status.State {
	case client.StateDisarmed:
		return characteristic.SecuritySystemCurrentStateDisarmed
	case client.StatePartial:
		if c.PartialMode == "night" {
			return characteristic.SecuritySystemCurrentStateNightArm
		}
		return characteristic.SecuritySystemCurrentStateStayArm
	case client.StateArmed:
		return characteristic.SecuritySystemCurrentStateAwayArm
	default:
		return -1
	}
}

func (c Config) zoneLayout() (client.ZoneLayout, error) {
	return client.ParseZoneLayout(c.ZoneLayout)
}
