package platform

import (
	pkgerrors "github.com/pkg/errors"
)

// Darwin reads the battery on macOS and iOS. On Apple Silicon Macs
// running macOS 11 or later the charge comes straight from the SMC;
// everything else goes through IOKit.
type Darwin struct {
	*Generic
	// ios rejects levels read while the charge state is unknown. macOS
	// reports unknown while holding a charge limit and is not gated.
	ios          bool
	smcSupported func() bool
	readSMC      func() (int, error)
}

var _ Platform = &Darwin{}

func (d *Darwin) Name() string {
	return "darwin"
}

func (d *Darwin) BatteryLevel() (int, error) {
	return Evaluate([]Capability{
		{
			Name:      "ios",
			Supported: func() bool { return d.ios },
			Read:      d.readIOS,
		},
		{
			Name:      "smc",
			Supported: d.smcSupported,
			Read:      d.readSMC,
		},
		{
			Name: "iokit",
			Read: d.Generic.BatteryLevel,
		},
	})
}

// readIOS reads level and state from the same battery snapshot. An
// unknown state makes the level unavailable.
func (d *Darwin) readIOS() (int, error) {
	bat, err := d.first()
	if err != nil {
		return 0, err
	}
	if chargeStateOf(bat) == StateUnknown {
		return 0, pkgerrors.Wrap(ErrUnavailable, "battery state is unknown")
	}
	return Percent(bat.Current, bat.Full)
}
