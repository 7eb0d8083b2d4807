package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/brutella/hap"
	"github.com/brutella/hap/accessory"
	"github.com/brutella/hap/characteristic"
	client "github.com/caarlos0/amt8000"
	"github.com/caarlos0/env/v11"
	"github.com/cenkalti/backoff/v4"
	logp "github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed index.html
var index []byte

var log = logp.NewWithOptions(os.Stderr, logp.Options{
	ReportTimestamp: true,
	TimeFormat:      time.Kitchen,
	Prefix:          "bridge",
})

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type Executor = func(func(cli *client.Client) error) error

const manufacturer = "Intelbras"

func main() {
	log.Info(
		"amt8000-bridge",
		"version", version,
		"commit", commit,
		"date", date,
		"info", strings.Join([]string{
			"HomeKit and MQTT bridge for Intelbras AMT8000 alarm systems",
			"© Carlos Alexandro Becker",
			"https://becker.software",
		}, "\n"),
	)

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatal(
			"could not parse env",
			"err",
			strings.TrimPrefix(strings.ReplaceAll(err.Error(), "; ", "\n"), "env: ")+"\n",
		)
	}

	log.Info(
		"loading accessories",
		"partitions",
		strings.Join([]string{
			fmt.Sprintf("stay: %v", cfg.StayPartitions),
			fmt.Sprintf("away: %v", cfg.AwayPartitions),
			fmt.Sprintf("night: %v", cfg.NightPartitions),
		}, "\n"),
		"zones", allZoneConfigs(cfg.allZones()).String(),
	)

	var clientLock sync.Mutex
	execute := func(fn func(cli *client.Client) error) error {
		t := time.Now()
		clientLock.Lock()
		defer clientLock.Unlock()
		log.Debugf("got client lock after %s", time.Since(t))

		bo := backoff.NewExponentialBackOff()
		bo.MaxInterval = time.Second * 5
		bo.MaxElapsedTime = time.Minute

		return backoff.RetryNotify(func() error {
			requestCounter.Inc()
			cli := client.New(cfg.Host, cfg.Port)
			if err := cli.Connect(); err != nil {
				return fmt.Errorf("could not connect to the central: %w", err)
			}
			defer func() {
				if err := cli.Close(); err != nil {
					log.Error("could not close the session", "err", err)
				}
			}()
			if err := cli.Auth(cfg.Password); err != nil {
				requestErrorCounter.Inc()
				// retrying won't turn a bad password into a good one.
				if errors.Is(err, client.ErrInvalidPassword) ||
					errors.Is(err, client.ErrPasswordFormat) {
					return backoff.Permanent(err)
				}
				return err
			}
			if err := fn(cli); err != nil {
				requestErrorCounter.Inc()
				return err
			}
			return nil
		}, bo, func(err error, _ time.Duration) {
			log.Error("command to central failed", "err", err)
		})
	}

	layout, err := cfg.zoneLayout()
	if err != nil {
		log.Fatal("could not parse zone layout", "err", err)
	}
	coordinator := client.NewCoordinator(
		client.New(cfg.Host, cfg.Port),
		cfg.Password,
		client.WithZoneLayout(layout),
	)
	poll := func() *client.Status {
		clientLock.Lock()
		defer clientLock.Unlock()
		return coordinator.Poll()
	}

	status := poll()
	if status == nil {
		log.Warn("central did not answer, starting with an empty status")
		status = &client.Status{}
	}
	macAddr, err := client.MacAddress(cfg.Host)
	if err != nil {
		log.Warn(
			"could not get the mac address, needs 'cap_net_raw+ep' capabilities",
			"err", err,
		)
	}
	log.Info(
		"got alarm system information",
		"manufacturer", manufacturer,
		"model", status.Model,
		"version", status.Version.String(),
		"mac", macAddr,
	)

	bridge := accessory.NewBridge(accessory.Info{
		Name:         "Alarm Bridge",
		Manufacturer: manufacturer,
		Firmware:     version,
	})

	alarm := NewSecuritySystem(accessory.Info{
		Name:         "Alarm",
		SerialNumber: macAddr,
		Manufacturer: manufacturer,
		Model:        status.Model,
		Firmware:     status.Version.String(),
	}, cfg, execute)
	alarm.Id = 2

	if state := cfg.getAlarmState(*status); state >= 0 &&
		state <= characteristic.SecuritySystemTargetStateDisarm {
		err := alarm.SecuritySystem.SecuritySystemTargetState.SetValue(state)
		log.Info("set target state", "state", state, "err", err)
	}

	panicBtn := setupPanicButton(execute)
	panicBtn.Id = 3

	sensors := setupZones(cfg)

	var mq *mqttBridge
	if cfg.MQTTBroker != "" {
		mq = newMQTTBridge(cfg, execute)
	}

	alarm.Update(*status)
	sensors.Update(*status)

	go func() {
		tick := time.NewTicker(cfg.PollInterval)
		defer tick.Stop()
		for range tick.C {
			status := poll()
			pollFailuresGauge.Set(float64(coordinator.ConsecutiveFailures()))
			if status == nil {
				continue
			}

			alarm.Update(*status)
			panicBtn.Switch.On.SetValue(status.Siren)
			sensors.Update(*status)
			if mq != nil {
				mq.publishStatus(*status)
			}
		}
	}()

	fs := hap.NewFsStore("./db")

	server, err := hap.NewServer(fs, bridge.A, securityAccessories(sensors, alarm, panicBtn)...)
	if err != nil {
		log.Fatal("fail to create server", "error", err)
	}
	server.Addr = cfg.Address
	server.ServeMux().Handle("/metrics", promhttp.Handler())
	server.ServeMux().Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := [5]string{
			"Armed: Stay",
			"Armed: Away",
			"Armed: Night",
			"Disarmed",
			"Alarm Triggered",
		}[alarm.SecuritySystem.SecuritySystemCurrentState.Value()]

		var hSensors []PageItem
		for _, sensor := range sensors {
			z := PageItem{
				Number:     sensor.Zone,
				Name:       sensor.Name(),
				Tamper:     sensor.Tamper.Value() == 1,
				LowBattery: sensor.LowBattery.Value() == 1,
				Bypassed:   !sensor.Active.Value(),
			}
			if sensor.Motion != nil {
				z.Open = sensor.Motion.MotionDetected.Value()
			} else if sensor.Contact != nil {
				z.Open = sensor.Contact.ContactSensorState.Value() == 1
			}
			hSensors = append(hSensors, z)
		}

		tpl := template.Must(template.New("index").Parse(string(index)))
		_ = tpl.Execute(w, struct {
			State string
			Zones []PageItem
		}{
			State: state,
			Zones: hSensors,
		})
	}))

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	signal.Notify(c, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-c
		log.Info("stopping server")
		signal.Stop(c)
		cancel()
	}()

	log.Info("starting server", "addr", server.Addr)
	if err := server.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("failed to close server", "err", err)
	}
	if mq != nil {
		mq.Stop()
	}
}

func securityAccessories(
	sensors AlarmSensors,
	alarm *SecuritySystem,
	panicBtn *accessory.Switch,
) []*accessory.A {
	result := []*accessory.A{
		panicBtn.A,
		alarm.A,
	}
	for _, sensor := range sensors {
		result = append(result, sensor.A)
	}
	return result
}

func boolAs[T int | float64](b bool) T {
	if b {
		return 1
	}
	return 0
}

type PageItem struct {
	Number     int
	Name       string
	Open       bool
	Tamper     bool
	Bypassed   bool
	LowBattery bool
}
