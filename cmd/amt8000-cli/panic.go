package main

import (
	"encoding/json"
	"fmt"
	"os"

	client "github.com/caarlos0/amt8000"
	"github.com/spf13/cobra"
)

var panicKind string

var panicCmd = &cobra.Command{
	Use:   "panic",
	Short: "Trigger a panic",
	Long: `Trigger a panic on the central.

A silent panic only reports the event to the monitoring company, an
audible one also fires the sirens. Fire is, well, for fires.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var kind byte
		switch panicKind {
		case "silent":
			kind = client.PanicSilent
		case "audible":
			kind = client.PanicAudible
		case "fire":
			kind = client.PanicFire
		default:
			return fmt.Errorf("unknown panic kind: %s", panicKind)
		}

		var ok bool
		if err := withClient(func(cli *client.Client) (err error) {
			ok, err = cli.Panic(kind)
			return
		}); err != nil {
			return err
		}
		if asJSON {
			return json.NewEncoder(os.Stdout).Encode(map[string]bool{"triggered": ok})
		}
		if !ok {
			fmt.Println("not_triggered")
			return nil
		}
		fmt.Println("triggered")
		return nil
	},
}

func init() {
	panicCmd.Flags().StringVar(&panicKind, "kind", "audible", "Panic kind (silent, audible or fire)")
}
