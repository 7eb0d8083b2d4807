package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	client "github.com/caarlos0/amt8000"
	"github.com/spf13/cobra"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the central and print the status whenever it changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		layout, err := client.ParseZoneLayout(layoutName)
		if err != nil {
			return err
		}

		coordinator := client.NewCoordinator(
			client.New(host, port, client.WithTimeout(timeout)),
			password,
			client.WithZoneLayout(layout),
		)

		ctx, cancel := signal.NotifyContext(
			context.Background(),
			os.Interrupt,
			syscall.SIGTERM,
		)
		defer cancel()

		tick := time.NewTicker(watchInterval)
		defer tick.Stop()

		var last string
		for {
			if status := coordinator.Poll(); status != nil {
				line := statusKey(*status)
				if line != last {
					last = line
					printChange(*status)
				}
			}
			select {
			case <-ctx.Done():
				return nil
			case <-tick.C:
			}
		}
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 3*time.Second, "Poll interval")
}

func printChange(status client.Status) {
	if asJSON {
		_ = json.NewEncoder(os.Stdout).Encode(statusToJSON(status))
		return
	}
	log.Info(
		"status",
		"state", status.State.String(),
		"siren", status.Siren,
		"tamper", status.Tamper,
		"battery", status.Battery.String(),
		"zones", zoneSummary(status.Zones),
	)
}

// statusKey flattens the bits of the report worth watching, so two reports
// compare equal when nothing interesting changed.
func statusKey(status client.Status) string {
	return status.State.String() +
		"|" + yesNo(status.Siren) +
		"|" + yesNo(status.Tamper) +
		"|" + status.Battery.String() +
		"|" + zoneSummary(status.Zones)
}
