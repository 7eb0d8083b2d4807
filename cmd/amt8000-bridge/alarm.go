package main

import (
	"fmt"
	"net/http"

	"github.com/brutella/hap"
	"github.com/brutella/hap/accessory"
	"github.com/brutella/hap/characteristic"
	"github.com/brutella/hap/service"
	client "github.com/caarlos0/amt8000"
)

type SecuritySystem struct {
	*accessory.A
	SecuritySystem *service.SecuritySystem
	LowBattery     *characteristic.StatusLowBattery
	BatteryLevel   *characteristic.BatteryLevel
	Tampered       *characteristic.StatusTampered

	cfg     Config
	execute Executor
}

func NewSecuritySystem(info accessory.Info, cfg Config, execute Executor) *SecuritySystem {
	a := &SecuritySystem{
		cfg:     cfg,
		execute: execute,
	}
	a.A = accessory.New(info, accessory.TypeSecuritySystem)

	a.SecuritySystem = service.NewSecuritySystem()
	a.AddS(a.SecuritySystem.S)

	a.Tampered = characteristic.NewStatusTampered()
	a.SecuritySystem.AddC(a.Tampered.C)

	a.LowBattery = characteristic.NewStatusLowBattery()
	a.SecuritySystem.AddC(a.LowBattery.C)

	a.BatteryLevel = characteristic.NewBatteryLevel()
	a.SecuritySystem.AddC(a.BatteryLevel.C)

	a.SecuritySystem.SecuritySystemTargetState.SetValueRequestFunc = a.updateHandler

	return a
}

func (a *SecuritySystem) Update(status client.Status) {
	armStateGauge.Set(float64(a.cfg.getAlarmState(status)))
	sirenGauge.Set(boolAs[float64](status.Siren))
	tamperGauge.Set(boolAs[float64](status.Tamper))
	batteryLevelGauge.Set(float64(status.Battery.Level()))

	if v := a.cfg.getAlarmState(status); v >= 0 &&
		a.SecuritySystem.SecuritySystemCurrentState.Value() != v {
		err := a.SecuritySystem.SecuritySystemCurrentState.SetValue(v)
		log.Info("set current state", "state", v, "err", err)
	}

	if v := boolAs[int](status.Tamper); a.Tampered.Value() != v {
		_ = a.Tampered.SetValue(v)
		log.Info("alarm status", "tamper", status.Tamper)
	}

	// shows both unknown and dead as a dead battery.
	if v := boolAs[int](status.Battery <= client.BatteryStatusDead); a.LowBattery.Value() != v {
		_ = a.LowBattery.SetValue(v)
		log.Info("alarm status", "battery", status.Battery.String())
	}

	if v := status.Battery.Level(); a.BatteryLevel.Value() != v {
		_ = a.BatteryLevel.SetValue(v)
		log.Info("alarm status", "battery-level", v)
	}
}

func (a *SecuritySystem) updateHandler(
	v interface{},
	_ *http.Request,
) (response interface{}, code int) {
	// If arming fails halfway through, some partitions may have armed while
	// others did not. Disarming everything again puts the central back into
	// a known state.
	disarm := func() {
		_ = a.SecuritySystem.SecuritySystemTargetState.SetValue(
			characteristic.SecuritySystemCurrentStateDisarmed,
		)
		if err := a.execute(func(cli *client.Client) error {
			return disarmPartition(cli, 0)
		}); err != nil {
			log.Error("could not disarm", "err", err)
		}
	}

	// Disarm the alarm before any state changes.
	// This allows to properly change between armed states.
	if err := a.execute(func(cli *client.Client) error {
		return disarmPartition(cli, 0)
	}); err != nil {
		log.Error("could not disarm", "err", err)
		return nil, hap.JsonStatusInvalidValueInRequest
	}

	var mode string
	var partitions []int
	switch v.(int) {
	case characteristic.SecuritySystemTargetStateStayArm:
		mode, partitions = "stay", a.cfg.StayPartitions
	case characteristic.SecuritySystemTargetStateAwayArm:
		mode, partitions = "away", a.cfg.AwayPartitions
	case characteristic.SecuritySystemTargetStateNightArm:
		mode, partitions = "night", a.cfg.NightPartitions
	case characteristic.SecuritySystemTargetStateDisarm:
		log.Info("disarm")
		return nil, hap.JsonStatusSuccess
	default:
		return nil, hap.JsonStatusResourceDoesNotExist
	}

	for _, part := range partitions {
		log.Info("arm "+mode, "partition", part)
		if err := a.execute(func(cli *client.Client) error {
			return armPartition(cli, part)
		}); err != nil {
			log.Error("could not arm", "mode", mode, "partition", part, "err", err)
			disarm()
			return nil, hap.JsonStatusResourceBusy
		}
	}
	return nil, hap.JsonStatusSuccess
}

func armPartition(cli *client.Client, partition int) error {
	ok, err := cli.Arm(partition)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("central refused to arm partition %d", partition)
	}
	return nil
}

func disarmPartition(cli *client.Client, partition int) error {
	ok, err := cli.Disarm(partition)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("central refused to disarm partition %d", partition)
	}
	return nil
}
