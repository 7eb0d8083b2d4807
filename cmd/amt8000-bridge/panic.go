package main

import (
	"errors"
	"net/http"

	"github.com/brutella/hap"
	"github.com/brutella/hap/accessory"
	client "github.com/caarlos0/amt8000"
)

// The panic button shows up in homekit as a regular switch. Turning it on
// fires an audible panic, turning it off disarms the central, which also
// shuts the siren up.
func setupPanicButton(execute Executor) *accessory.Switch {
	a := accessory.NewSwitch(accessory.Info{
		Name:         "Audible Panic",
		Manufacturer: manufacturer,
	})
	a.Switch.On.SetValueRequestFunc = func(
		value interface{},
		_ *http.Request,
	) (response interface{}, code int) {
		on := value.(bool)
		if err := execute(func(cli *client.Client) error {
			if on {
				log.Warn("triggering an audible panic!")
				return triggerPanic(cli, client.PanicAudible)
			}
			return disarmPartition(cli, 0)
		}); err != nil {
			log.Error("could not toggle panic", "on", on, "err", err)
			return nil, hap.JsonStatusResourceBusy
		}
		return nil, hap.JsonStatusSuccess
	}
	return a
}

func triggerPanic(cli *client.Client, kind byte) error {
	ok, err := cli.Panic(kind)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("central did not acknowledge the panic")
	}
	return nil
}
