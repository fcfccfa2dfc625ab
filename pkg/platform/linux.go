package platform

import (
	"github.com/charlie0129/battinfo/pkg/utils/osver"
)

// Linux reads the battery from the power_supply class in sysfs.
type Linux struct {
	sysfs   Sysfs
	release func() string
}

var _ Platform = &Linux{}

// NewLinux returns a Linux platform reading from s.
func NewLinux(s Sysfs) *Linux {
	return &Linux{
		sysfs:   s,
		release: osver.Release,
	}
}

func (l *Linux) Name() string {
	return "linux"
}

func (l *Linux) PlatformVersion() string {
	return versionString("Linux", l.release())
}

// BatteryLevel prefers the capacity attribute and falls back to
// charge_now/charge_full, then energy_now/energy_full, for drivers that
// only export raw readings.
func (l *Linux) BatteryLevel() (int, error) {
	dir, err := l.sysfs.battery()
	if err != nil {
		return 0, err
	}

	s := l.sysfs
	return Evaluate([]Capability{
		{
			Name:      "capacity",
			Supported: func() bool { return s.has(dir, "capacity") },
			Read:      s.capacity(dir),
		},
		{
			Name:      "charge",
			Supported: func() bool { return s.has(dir, "charge_now") && s.has(dir, "charge_full") },
			Read:      s.ratio(dir, "charge_now", "charge_full"),
		},
		{
			Name: "energy",
			Read: s.ratio(dir, "energy_now", "energy_full"),
		},
	})
}

func (l *Linux) IsCharging() bool {
	return l.ChargeState() == StateCharging
}

func (l *Linux) ChargeState() ChargeState {
	dir, err := l.sysfs.battery()
	if err != nil {
		return StateUnknown
	}
	return l.sysfs.chargeState(dir)
}

func (l *Linux) Temperature() (int, error) {
	dir, err := l.sysfs.battery()
	if err != nil {
		return 0, err
	}
	return l.sysfs.readInt(dir, "temp")
}
