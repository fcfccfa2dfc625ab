// Package platform reads battery state from the operating system.
//
// Every target OS gets one Platform implementation. Reads are live: nothing
// is cached between calls, so a Platform is safe for concurrent use.
package platform

import (
	"errors"
	"runtime"

	pkgerrors "github.com/pkg/errors"
)

// ErrUnavailable is returned when a battery metric cannot be read on this
// device or OS configuration. Accessors wrap it with context; check with
// errors.Is.
var ErrUnavailable = errors.New("unavailable")

// ChargeState is the coarse charging state of the battery.
type ChargeState int

const (
	// StateUnknown means the platform could not tell.
	StateUnknown ChargeState = iota
	// StateUnplugged means the device is running on battery.
	StateUnplugged
	// StateCharging means the battery is being charged.
	StateCharging
	// StateFull means external power is connected and the battery is full.
	StateFull
)

func (s ChargeState) String() string {
	switch s {
	case StateUnplugged:
		return "unplugged"
	case StateCharging:
		return "charging"
	case StateFull:
		return "full"
	default:
		return "unknown"
	}
}

// Platform is the set of battery accessors a target OS provides.
type Platform interface {
	// Name is a short identifier of the implementation, e.g. "linux".
	Name() string
	// PlatformVersion returns the OS name and release, e.g. "Android 14".
	// It never fails; unknown releases are reported as "unknown".
	PlatformVersion() string
	// BatteryLevel returns the remaining charge in percent, always within
	// [0,100]. Any other reading is reported as ErrUnavailable.
	BatteryLevel() (int, error)
	// IsCharging reports whether the battery is currently charging.
	IsCharging() bool
	// ChargeState returns the charging state of the battery.
	ChargeState() ChargeState
	// Temperature returns the battery temperature in tenths of a degree
	// Celsius.
	Temperature() (int, error)
}

// Options configure New.
type Options struct {
	// Name selects the implementation. Empty or "auto" picks the one
	// matching the running OS.
	Name string
	// SysfsRoot is where sysfs is mounted, used by linux and android.
	SysfsRoot string
}

// Names lists the implementations New accepts.
var Names = []string{"auto", "linux", "android", "darwin", "generic"}

// New returns the Platform selected by opts.
func New(opts Options) (Platform, error) {
	name := opts.Name
	if name == "" || name == "auto" {
		name = detect()
	}

	root := opts.SysfsRoot
	if root == "" {
		root = DefaultSysfsRoot
	}

	switch name {
	case "linux":
		return NewLinux(newSysfs(root)), nil
	case "android":
		return NewAndroid(newSysfs(root), GetpropReader{}), nil
	case "darwin":
		return newDarwin()
	case "generic":
		return NewGeneric(), nil
	default:
		return nil, pkgerrors.Errorf("unknown platform %q, must be one of %v", name, Names)
	}
}

func detect() string {
	switch runtime.GOOS {
	case "linux", "android", "darwin":
		return runtime.GOOS
	case "ios":
		return "darwin"
	default:
		return "generic"
	}
}
