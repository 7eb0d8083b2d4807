package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	armStateGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace:   "amt8000",
		Subsystem:   "alarm",
		Name:        "state",
		Help:        "",
		ConstLabels: map[string]string{},
	})

	sirenGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace:   "amt8000",
		Subsystem:   "alarm",
		Name:        "siren",
		Help:        "",
		ConstLabels: map[string]string{},
	})

	tamperGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace:   "amt8000",
		Subsystem:   "alarm",
		Name:        "tamper",
		Help:        "",
		ConstLabels: map[string]string{},
	})

	batteryLevelGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace:   "amt8000",
		Subsystem:   "alarm",
		Name:        "battery_level",
		Help:        "",
		ConstLabels: map[string]string{},
	})

	pollFailuresGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace:   "amt8000",
		Subsystem:   "poll",
		Name:        "consecutive_failures",
		Help:        "",
		ConstLabels: map[string]string{},
	})

	openZonesGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   "amt8000",
		Subsystem:   "zones",
		Name:        "open",
		Help:        "",
		ConstLabels: map[string]string{},
	}, []string{"name"})

	triggeredZonesGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   "amt8000",
		Subsystem:   "zones",
		Name:        "triggered",
		Help:        "",
		ConstLabels: map[string]string{},
	}, []string{"name"})

	bypassedZonesGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   "amt8000",
		Subsystem:   "zones",
		Name:        "bypassed",
		Help:        "",
		ConstLabels: map[string]string{},
	}, []string{"name"})

	tamperedZonesGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   "amt8000",
		Subsystem:   "zones",
		Name:        "tampered",
		Help:        "",
		ConstLabels: map[string]string{},
	}, []string{"name"})

	lowBatteryZonesGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   "amt8000",
		Subsystem:   "zones",
		Name:        "low_battery",
		Help:        "",
		ConstLabels: map[string]string{},
	}, []string{"name"})

	faultyZonesGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   "amt8000",
		Subsystem:   "zones",
		Name:        "comm_failure",
		Help:        "",
		ConstLabels: map[string]string{},
	}, []string{"name"})

	requestCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace:   "amt8000",
		Subsystem:   "client",
		Name:        "requests_total",
		Help:        "",
		ConstLabels: map[string]string{},
	})

	requestErrorCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace:   "amt8000",
		Subsystem:   "client",
		Name:        "request_errors_total",
		Help:        "",
		ConstLabels: map[string]string{},
	})
)
