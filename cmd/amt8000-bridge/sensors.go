package main

import (
	"github.com/brutella/hap/accessory"
	"github.com/brutella/hap/characteristic"
	"github.com/brutella/hap/service"
	client "github.com/caarlos0/amt8000"
)

type AlarmSensors []*AlarmSensor

func (sensors AlarmSensors) Update(status client.Status) {
	for _, sensor := range sensors {
		sensor.Update(status.Zones[sensor.Zone])
	}
}

type AlarmSensor struct {
	*accessory.A
	Zone       int
	Kind       zoneKind
	Motion     *service.MotionSensor
	Contact    *service.ContactSensor
	LowBattery *characteristic.StatusLowBattery
	Tamper     *characteristic.StatusTampered
	Fault      *characteristic.StatusFault
	Active     *characteristic.StatusActive
}

func setupZones(cfg Config) AlarmSensors {
	var sensors AlarmSensors
	for i, zone := range cfg.allZones() {
		sensor := newAlarmSensor(accessory.Info{
			Name:         zone.name,
			Manufacturer: manufacturer,
		}, zone)
		sensor.Id = uint64(100 + i)
		sensors = append(sensors, sensor)
	}
	return sensors
}

func newAlarmSensor(info accessory.Info, zone zoneConfig) *AlarmSensor {
	a := AlarmSensor{
		Zone: zone.number,
		Kind: zone.kind,
	}
	a.A = accessory.New(info, accessory.TypeSensor)

	a.LowBattery = characteristic.NewStatusLowBattery()
	a.Tamper = characteristic.NewStatusTampered()
	a.Fault = characteristic.NewStatusFault()
	a.Active = characteristic.NewStatusActive()
	a.Active.SetValue(true)

	switch zone.kind {
	case kindContact:
		a.Contact = service.NewContactSensor()
		a.Contact.AddC(a.LowBattery.C)
		a.Contact.AddC(a.Tamper.C)
		a.Contact.AddC(a.Fault.C)
		a.Contact.AddC(a.Active.C)
		a.AddS(a.Contact.S)
	case kindMotion:
		a.Motion = service.NewMotionSensor()
		a.Motion.AddC(a.LowBattery.C)
		a.Motion.AddC(a.Tamper.C)
		a.Motion.AddC(a.Fault.C)
		a.Motion.AddC(a.Active.C)
		a.AddS(a.Motion.S)
	}

	return &a
}

func (sensor *AlarmSensor) Update(probs client.ZoneProblems) {
	// a triggered zone is an open one that set the alarm off, either way
	// homekit should show it as open.
	open := probs.Has(client.ZoneOpen) || probs.Has(client.ZoneTriggered)

	if v := boolAs[int](probs.Has(client.ZoneLowBattery)); sensor.LowBattery.Value() != v {
		_ = sensor.LowBattery.SetValue(v)
		log.Info("zone", "number", sensor.Zone, "low-battery", v == 1)
	}
	if v := boolAs[int](probs.Has(client.ZoneTamper)); sensor.Tamper.Value() != v {
		_ = sensor.Tamper.SetValue(v)
		log.Info("zone", "number", sensor.Zone, "tamper", v == 1)
	}
	if v := boolAs[int](probs.Has(client.ZoneCommFailure)); sensor.Fault.Value() != v {
		_ = sensor.Fault.SetValue(v)
		log.Info("zone", "number", sensor.Zone, "fault", v == 1)
	}
	if v := !probs.Has(client.ZoneBypassed); sensor.Active.Value() != v {
		sensor.Active.SetValue(v)
		log.Info("zone", "number", sensor.Zone, "bypassed", !v)
	}

	switch sensor.Kind {
	case kindContact:
		if v := boolAs[int](open); sensor.Contact.ContactSensorState.Value() != v {
			_ = sensor.Contact.ContactSensorState.SetValue(v)
			log.Info("zone", "number", sensor.Zone, "open", open)
		}
	case kindMotion:
		if sensor.Motion.MotionDetected.Value() != open {
			sensor.Motion.MotionDetected.SetValue(open)
			log.Info("zone", "number", sensor.Zone, "motion", open)
		}
	}

	name := sensor.Name()
	openZonesGauge.WithLabelValues(name).Set(boolAs[float64](open))
	triggeredZonesGauge.WithLabelValues(name).Set(boolAs[float64](probs.Has(client.ZoneTriggered)))
	bypassedZonesGauge.WithLabelValues(name).Set(boolAs[float64](probs.Has(client.ZoneBypassed)))
	tamperedZonesGauge.WithLabelValues(name).Set(boolAs[float64](probs.Has(client.ZoneTamper)))
	lowBatteryZonesGauge.WithLabelValues(name).Set(boolAs[float64](probs.Has(client.ZoneLowBattery)))
	faultyZonesGauge.WithLabelValues(name).Set(boolAs[float64](probs.Has(client.ZoneCommFailure)))
}
