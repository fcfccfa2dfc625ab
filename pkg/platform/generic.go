package platform

import (
	"runtime"

	"github.com/distatus/battery"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/battinfo/pkg/utils/osver"
)

var osNames = map[string]string{
	"darwin":    "macOS",
	"ios":       "iOS",
	"linux":     "Linux",
	"android":   "Android",
	"windows":   "Windows",
	"freebsd":   "FreeBSD",
	"openbsd":   "OpenBSD",
	"netbsd":    "NetBSD",
	"dragonfly": "DragonFly",
	"solaris":   "Solaris",
}

// Generic reads the battery through github.com/distatus/battery, which
// covers most desktop operating systems.
type Generic struct {
	getAll  func() ([]*battery.Battery, error)
	osName  string
	release func() string
}

var _ Platform = &Generic{}

// NewGeneric returns a Generic platform for the running OS.
func NewGeneric() *Generic {
	name, ok := osNames[runtime.GOOS]
	if !ok {
		name = runtime.GOOS
	}
	return &Generic{
		getAll:  battery.GetAll,
		osName:  name,
		release: osver.Release,
	}
}

func (g *Generic) Name() string {
	return "generic"
}

func (g *Generic) PlatformVersion() string {
	return versionString(g.osName, g.release())
}

// first returns the first battery reported. Partial errors are tolerated;
// missing fields show up as zero values and are rejected by the callers.
func (g *Generic) first() (*battery.Battery, error) {
	batteries, err := g.getAll()
	if err != nil {
		logrus.Debugf("battery.GetAll returned error: %v", err)
	}
	for _, b := range batteries {
		if b != nil {
			return b, nil
		}
	}
	if err != nil {
		return nil, pkgerrors.Wrapf(ErrUnavailable, "failed to get batteries: %v", err)
	}
	return nil, pkgerrors.Wrap(ErrUnavailable, "no batteries found")
}

// BatteryLevel computes the percentage from the current and last full
// capacity.
func (g *Generic) BatteryLevel() (int, error) {
	bat, err := g.first()
	if err != nil {
		return 0, err
	}
	return Percent(bat.Current, bat.Full)
}

func (g *Generic) IsCharging() bool {
	return g.ChargeState() == StateCharging
}

func (g *Generic) ChargeState() ChargeState {
	bat, err := g.first()
	if err != nil {
		return StateUnknown
	}
	return chargeStateOf(bat)
}

func chargeStateOf(bat *battery.Battery) ChargeState {
	switch bat.State.Raw {
	case battery.Charging:
		return StateCharging
	case battery.Full:
		return StateFull
	case battery.Discharging, battery.Empty, battery.Idle:
		return StateUnplugged
	default:
		return StateUnknown
	}
}

func (g *Generic) Temperature() (int, error) {
	return 0, pkgerrors.Wrap(ErrUnavailable, "temperature is not reported on this platform")
}
