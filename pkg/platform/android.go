package platform

import (
	"os/exec"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Android API levels that gate accessors.
const (
	// SDKLollipop introduced BATTERY_PROPERTY_CAPACITY.
	SDKLollipop = 21
	// SDKMarshmallow introduced BatteryManager.isCharging.
	SDKMarshmallow = 23
)

// PropertyReader reads Android system properties.
type PropertyReader interface {
	Get(name string) (string, error)
}

// GetpropReader reads properties with the getprop tool.
type GetpropReader struct{}

func (GetpropReader) Get(name string) (string, error) {
	out, err := exec.Command("getprop", name).Output()
	if err != nil {
		return "", pkgerrors.Wrapf(err, "getprop %s", name)
	}
	return strings.TrimSpace(string(out)), nil
}

// Android reads the battery from sysfs and gates accessors on the SDK
// level reported by the system properties.
type Android struct {
	sysfs Sysfs
	props PropertyReader
}

var _ Platform = &Android{}

// NewAndroid returns an Android platform.
func NewAndroid(s Sysfs, props PropertyReader) *Android {
	return &Android{
		sysfs: s,
		props: props,
	}
}

func (a *Android) Name() string {
	return "android"
}

func (a *Android) PlatformVersion() string {
	release, err := a.props.Get("ro.build.version.release")
	if err != nil {
		logrus.Debugf("failed to read android release: %v", err)
		release = ""
	}
	return versionString("Android", release)
}

// sdk returns the API level, or 0 if it cannot be read, which selects the
// legacy paths.
func (a *Android) sdk() int {
	v, err := a.props.Get("ro.build.version.sdk")
	if err != nil {
		logrus.Debugf("failed to read android sdk level: %v", err)
		return 0
	}
	sdk, err := strconv.Atoi(v)
	if err != nil {
		logrus.Debugf("malformed android sdk level %q", v)
		return 0
	}
	return sdk
}

// BatteryLevel reads the capacity directly on Lollipop and later. Older
// releases compute it from the raw level and scale.
func (a *Android) BatteryLevel() (int, error) {
	dir, err := a.sysfs.battery()
	if err != nil {
		return 0, err
	}

	sdk := a.sdk()
	return Evaluate([]Capability{
		{
			Name:      "capacity",
			Supported: func() bool { return sdk >= SDKLollipop },
			Read:      a.sysfs.capacity(dir),
		},
		{
			Name: "level/scale",
			Read: a.sysfs.ratio(dir, "charge_now", "charge_full"),
		},
	})
}

// IsCharging is always false before Marshmallow.
func (a *Android) IsCharging() bool {
	if a.sdk() < SDKMarshmallow {
		return false
	}
	return a.ChargeState() == StateCharging
}

func (a *Android) ChargeState() ChargeState {
	dir, err := a.sysfs.battery()
	if err != nil {
		return StateUnknown
	}
	return a.sysfs.chargeState(dir)
}

func (a *Android) Temperature() (int, error) {
	if a.sdk() < SDKLollipop {
		return 0, pkgerrors.Wrap(ErrUnavailable, "temperature requires api level 21")
	}
	dir, err := a.sysfs.battery()
	if err != nil {
		return 0, err
	}
	return a.sysfs.readInt(dir, "temp")
}
