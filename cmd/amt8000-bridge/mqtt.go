package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	client "github.com/caarlos0/amt8000"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// mqttBridge mirrors the alarm into mqtt: a home assistant style alarm panel
// plus one binary sensor per configured zone, all announced over discovery.
// Commands come back in on <prefix>/set.
type mqttBridge struct {
	client  mqtt.Client
	cfg     Config
	execute Executor
}

func newMQTTBridge(cfg Config, execute Executor) *mqttBridge {
	b := &mqttBridge{
		cfg:     cfg,
		execute: execute,
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID("amt8000-bridge").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetWill(cfg.MQTTPrefix+"/bridge/state", "offline", 1, true).
		SetOnConnectHandler(func(_ mqtt.Client) {
			log.Info("connected to mqtt", "broker", cfg.MQTTBroker)
			b.publish(cfg.MQTTPrefix+"/bridge/state", "online")
			b.announce()
			b.subscribe()
		}).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.Warn("mqtt connection lost", "err", err)
		})
	if cfg.MQTTUsername != "" {
		opts.SetUsername(cfg.MQTTUsername)
		opts.SetPassword(cfg.MQTTPassword)
	}

	b.client = mqtt.NewClient(opts)
	// ConnectRetry keeps trying in the background until the broker shows up,
	// no point blocking startup on it.
	_ = b.client.Connect()
	return b
}

func (b *mqttBridge) Stop() {
	token := b.client.Publish(b.cfg.MQTTPrefix+"/bridge/state", 1, true, "offline")
	token.WaitTimeout(2 * time.Second)
	b.client.Disconnect(1000)
}

func (b *mqttBridge) publishStatus(status client.Status) {
	if state := haAlarmState(b.cfg, status); state != "" {
		b.publish(b.cfg.MQTTPrefix+"/alarm", state)
	}
	b.publish(b.cfg.MQTTPrefix+"/status", statusPayload(b.cfg, status))
	for _, zone := range b.cfg.allZones() {
		probs := status.Zones[zone.number]
		payload := "OFF"
		if probs.Has(client.ZoneOpen) || probs.Has(client.ZoneTriggered) {
			payload = "ON"
		}
		b.publish(fmt.Sprintf("%s/zone/%d", b.cfg.MQTTPrefix, zone.number), payload)
	}
}

func (b *mqttBridge) publish(topic, payload string) {
	token := b.client.Publish(topic, 1, true, payload)
	go func() {
		if !token.WaitTimeout(5*time.Second) || token.Error() != nil {
			log.Warn("could not publish", "topic", topic, "err", token.Error())
		}
	}()
}

func (b *mqttBridge) subscribe() {
	topic := b.cfg.MQTTPrefix + "/set"
	token := b.client.Subscribe(topic, 1, func(_ mqtt.Client, msg mqtt.Message) {
		b.handleCommand(string(msg.Payload()))
	})
	go func() {
		if !token.WaitTimeout(5*time.Second) || token.Error() != nil {
			log.Warn("could not subscribe", "topic", topic, "err", token.Error())
		}
	}()
}

func (b *mqttBridge) handleCommand(payload string) {
	log.Info("mqtt command", "payload", payload)
	var err error
	switch payload {
	case "DISARM":
		err = b.execute(func(cli *client.Client) error {
			return disarmPartition(cli, 0)
		})
	case "ARM_AWAY":
		err = b.arm(b.cfg.AwayPartitions)
	case "ARM_HOME":
		err = b.arm(b.cfg.StayPartitions)
	case "ARM_NIGHT":
		err = b.arm(b.cfg.NightPartitions)
	case "TRIGGER":
		err = b.execute(func(cli *client.Client) error {
			return triggerPanic(cli, client.PanicAudible)
		})
	default:
		log.Warn("unknown mqtt command", "payload", payload)
		return
	}
	if err != nil {
		log.Error("mqtt command failed", "payload", payload, "err", err)
	}
}

// same dance as the homekit handler, disarm everything first so switching
// between armed modes works.
func (b *mqttBridge) arm(partitions []int) error {
	if err := b.execute(func(cli *client.Client) error {
		return disarmPartition(cli, 0)
	}); err != nil {
		return err
	}
	for _, part := range partitions {
		if err := b.execute(func(cli *client.Client) error {
			return armPartition(cli, part)
		}); err != nil {
			return err
		}
	}
	return nil
}

func (b *mqttBridge) announce() {
	prefix := b.cfg.MQTTPrefix
	device := haDevice{
		Identifiers:  []string{"amt8000"},
		Manufacturer: manufacturer,
		Model:        "AMT-8000",
		Name:         "Alarm",
	}

	b.publish(
		"homeassistant/alarm_control_panel/amt8000/config",
		mustJSON(haDiscovery{
			Name:              "Alarm",
			UniqueID:          "amt8000_alarm",
			StateTopic:        prefix + "/alarm",
			CommandTopic:      prefix + "/set",
			AvailabilityTopic: prefix + "/bridge/state",
			Device:            device,
		}),
	)

	for _, zone := range b.cfg.allZones() {
		class := "door"
		if zone.kind == kindMotion {
			class = "motion"
		}
		b.publish(
			fmt.Sprintf("homeassistant/binary_sensor/amt8000_zone_%d/config", zone.number),
			mustJSON(haDiscovery{
				Name:              zone.name,
				UniqueID:          fmt.Sprintf("amt8000_zone_%d", zone.number),
				StateTopic:        fmt.Sprintf("%s/zone/%d", prefix, zone.number),
				AvailabilityTopic: prefix + "/bridge/state",
				DeviceClass:       class,
				PayloadOn:         "ON",
				PayloadOff:        "OFF",
				Device:            device,
			}),
		)
	}
}

type haDevice struct {
	Identifiers  []string `json:"identifiers"`
	Manufacturer string   `json:"manufacturer,omitempty"`
	Model        string   `json:"model,omitempty"`
	Name         string   `json:"name"`
}

type haDiscovery struct {
	Name              string   `json:"name"`
	UniqueID          string   `json:"unique_id"`
	StateTopic        string   `json:"state_topic"`
	CommandTopic      string   `json:"command_topic,omitempty"`
	AvailabilityTopic string   `json:"availability_topic"`
	DeviceClass       string   `json:"device_class,omitempty"`
	PayloadOn         string   `json:"payload_on,omitempty"`
	PayloadOff        string   `json:"payload_off,omitempty"`
	Device            haDevice `json:"device"`
}

type mqttZoneStatus struct {
	Name     string   `json:"name"`
	Open     bool     `json:"open"`
	Problems []string `json:"problems,omitempty"`
}

type mqttStatus struct {
	Model   string                    `json:"model"`
	Version string                    `json:"version"`
	State   string                    `json:"state"`
	Siren   bool                      `json:"siren"`
	Tamper  bool                      `json:"tamper"`
	Battery string                    `json:"battery"`
	Zones   map[string]mqttZoneStatus `json:"zones"`
}

// haAlarmState maps a status report to the states home assistant expects
// from an mqtt alarm panel. An unknown report maps to an empty string and
// does not get published.
func haAlarmState(cfg Config, status client.Status) string {
	switch {
	case status.Siren:
		return "triggered"
	case status.State == client.StateArmed:
		return "armed_away"
	case status.State == client.StatePartial:
		if cfg.PartialMode == "night" {
			return "armed_night"
		}
		return "armed_home"
	case status.State == client.StateDisarmed:
		return "disarmed"
	default:
		return ""
	}
}

func statusPayload(cfg Config, status client.Status) string {
	zones := map[string]mqttZoneStatus{}
	for number, probs := range status.Zones {
		var names []string
		for _, p := range probs.Problems() {
			names = append(names, p.String())
		}
		zones[strconv.Itoa(number)] = mqttZoneStatus{
			Name:     cfg.zoneName(number),
			Open:     probs.Has(client.ZoneOpen) || probs.Has(client.ZoneTriggered),
			Problems: names,
		}
	}
	return mustJSON(mqttStatus{
		Model:   status.Model,
		Version: status.Version.String(),
		State:   status.State.String(),
		Siren:   status.Siren,
		Tamper:  status.Tamper,
		Battery: status.Battery.String(),
		Zones:   zones,
	})
}

func mustJSON(v any) string {
	bts, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(bts)
}
