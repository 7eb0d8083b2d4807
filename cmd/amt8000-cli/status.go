package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	client "github.com/caarlos0/amt8000"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current status of the central",
	RunE: func(cmd *cobra.Command, args []string) error {
		layout, err := client.ParseZoneLayout(layoutName)
		if err != nil {
			return err
		}

		var status client.Status
		if err := withClient(func(cli *client.Client) error {
			raw, err := cli.RawStatus()
			if err != nil {
				return err
			}
			status, err = client.DecodeStatus(raw, layout)
			return err
		}); err != nil {
			return err
		}

		if asJSON {
			return json.NewEncoder(os.Stdout).Encode(statusToJSON(status))
		}
		printStatus(status)
		return nil
	},
}

type zoneJSON struct {
	Problems []string `json:"problems"`
	Severest string   `json:"severest"`
}

type statusJSON struct {
	Model       string              `json:"model"`
	Version     string              `json:"version"`
	State       string              `json:"state"`
	Siren       bool                `json:"siren"`
	ZonesFiring bool                `json:"zones_firing"`
	ZonesClosed bool                `json:"zones_closed"`
	Tamper      bool                `json:"tamper"`
	Battery     string              `json:"battery"`
	Zones       map[string]zoneJSON `json:"zones"`
}

func statusToJSON(status client.Status) statusJSON {
	zones := map[string]zoneJSON{}
	for number, probs := range status.Zones {
		var names []string
		for _, p := range probs.Problems() {
			names = append(names, p.String())
		}
		zones[strconv.Itoa(number)] = zoneJSON{
			Problems: names,
			Severest: probs.Severest().String(),
		}
	}
	return statusJSON{
		Model:       status.Model,
		Version:     status.Version.String(),
		State:       status.State.String(),
		Siren:       status.Siren,
		ZonesFiring: status.ZonesFiring,
		ZonesClosed: status.ZonesClosed,
		Tamper:      status.Tamper,
		Battery:     status.Battery.String(),
		Zones:       zones,
	}
}

func printStatus(status client.Status) {
	fmt.Printf("model:    %s\n", status.Model)
	fmt.Printf("version:  %s\n", status.Version.String())
	fmt.Printf("state:    %s\n", status.State.String())
	fmt.Printf("siren:    %s\n", yesNo(status.Siren))
	fmt.Printf("tamper:   %s\n", yesNo(status.Tamper))
	fmt.Printf("battery:  %s\n", status.Battery.String())
	if len(status.Zones) == 0 {
		fmt.Println("zones:    all quiet")
		return
	}
	fmt.Println("zones:")
	for _, number := range sortedZones(status.Zones) {
		fmt.Printf("  %3d: %s\n", number, status.Zones[number].String())
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func sortedZones(zones map[int]client.ZoneProblems) []int {
	numbers := make([]int, 0, len(zones))
	for n := range zones {
		numbers = append(numbers, n)
	}
	slices.Sort(numbers)
	return numbers
}

// zoneSummary packs the zone map into a single line, e.g.
// "1:open 3:triggered,open".
func zoneSummary(zones map[int]client.ZoneProblems) string {
	if len(zones) == 0 {
		return "none"
	}
	var parts []string
	for _, number := range sortedZones(zones) {
		parts = append(parts, fmt.Sprintf("%d:%s", number, zones[number].String()))
	}
	return strings.Join(parts, " ")
}
