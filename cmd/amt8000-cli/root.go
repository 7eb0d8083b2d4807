package main

import (
	"fmt"
	"os"
	"time"

	client "github.com/caarlos0/amt8000"
	logp "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var log = logp.NewWithOptions(os.Stderr, logp.Options{
	ReportTimestamp: true,
	TimeFormat:      time.Kitchen,
	Prefix:          "amtcli",
})

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	host       string
	port       string
	password   string
	timeout    time.Duration
	layoutName string
	asJSON     bool
)

var rootCmd = &cobra.Command{
	Use:   "amt8000-cli",
	Short: "Talk to Intelbras AMT-8000 alarm centrals",
	Long: `amt8000-cli speaks the same TCP protocol the AMT Mobile app uses, so
anything the app can do to the central this can too: check the status,
arm and disarm partitions, fire panics and list the paired sensors.

Examples:
  # status of the central
  amt8000-cli status -H 192.168.1.111 --password 123456

  # arm partition 1, then disarm everything
  amt8000-cli arm --partition 1 -H 192.168.1.111 --password 123456
  amt8000-cli disarm -H 192.168.1.111 --password 123456

  # keep printing the status as it changes
  amt8000-cli watch -H 192.168.1.111 --password 123456`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&host, "host", "H", "", "Central IP address")
	rootCmd.PersistentFlags().StringVarP(&port, "port", "p", "9009", "Central TCP port")
	rootCmd.PersistentFlags().StringVar(&password, "password", "", "Central password (6 digits)")
	rootCmd.PersistentFlags().DurationVarP(&timeout, "timeout", "t", client.DefaultTimeout, "Socket timeout")
	rootCmd.PersistentFlags().StringVar(&layoutName, "zone-layout", "v1", "Zone block layout (v1 or v2)")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Output JSON instead of text")

	_ = rootCmd.MarkPersistentFlagRequired("host")
	_ = rootCmd.MarkPersistentFlagRequired("password")

	rootCmd.AddCommand(
		statusCmd,
		armCmd,
		disarmCmd,
		panicCmd,
		sensorsCmd,
		watchCmd,
		versionCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("amt8000-cli version %s (commit %s, built %s)\n", version, commit, date)
	},
}

// withClient dials the central, authenticates, runs fn, and closes the
// session no matter what.
func withClient(fn func(cli *client.Client) error) error {
	cli := client.New(host, port, client.WithTimeout(timeout))
	if err := cli.Connect(); err != nil {
		return fmt.Errorf("could not connect to the central: %w", err)
	}
	defer func() {
		if err := cli.Close(); err != nil {
			log.Warn("could not close the session", "err", err)
		}
	}()
	if err := cli.Auth(password); err != nil {
		return err
	}
	return fn(cli)
}
