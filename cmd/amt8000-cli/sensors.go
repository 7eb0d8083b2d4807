package main

import (
	"encoding/json"
	"fmt"
	"os"

	client "github.com/caarlos0/amt8000"
	"github.com/spf13/cobra"
)

var sensorsCmd = &cobra.Command{
	Use:   "sensors",
	Short: "List the zones with a sensor paired to them",
	RunE: func(cmd *cobra.Command, args []string) error {
		var zones []int
		if err := withClient(func(cli *client.Client) (err error) {
			zones, err = cli.PairedSensors()
			return
		}); err != nil {
			return err
		}
		if asJSON {
			if zones == nil {
				zones = []int{}
			}
			return json.NewEncoder(os.Stdout).Encode(map[string][]int{"paired": zones})
		}
		if len(zones) == 0 {
			fmt.Println("no sensors paired")
			return nil
		}
		for _, zone := range zones {
			fmt.Printf("zone %d\n", zone)
		}
		return nil
	},
}
