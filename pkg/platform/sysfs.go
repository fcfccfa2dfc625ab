package platform

import (
	"path"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// DefaultSysfsRoot is where sysfs is normally mounted.
const DefaultSysfsRoot = "/sys"

const powerSupplyDir = "/class/power_supply"

// Sysfs reads the power_supply class of a sysfs tree.
type Sysfs struct {
	fs afero.Fs
}

// NewSysfs returns a Sysfs reading from fs, whose root is the sysfs mount
// point.
func NewSysfs(fs afero.Fs) Sysfs {
	return Sysfs{fs: fs}
}

func newSysfs(root string) Sysfs {
	return NewSysfs(afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), root)))
}

// battery returns the directory of the first power supply whose type is
// Battery. Entries are usually symlinks, so they are not filtered on
// IsDir.
func (s Sysfs) battery() (string, error) {
	entries, err := afero.ReadDir(s.fs, powerSupplyDir)
	if err != nil {
		return "", pkgerrors.Wrapf(ErrUnavailable, "failed to list %s: %v", powerSupplyDir, err)
	}

	for _, e := range entries {
		dir := path.Join(powerSupplyDir, e.Name())
		typ, err := s.readString(dir, "type")
		if err != nil {
			continue
		}
		if typ == "Battery" {
			logrus.WithField("dir", dir).Trace("found battery")
			return dir, nil
		}
	}

	return "", pkgerrors.Wrap(ErrUnavailable, "no battery found")
}

func (s Sysfs) has(dir, name string) bool {
	ok, err := afero.Exists(s.fs, path.Join(dir, name))
	return err == nil && ok
}

func (s Sysfs) readString(dir, name string) (string, error) {
	p := path.Join(dir, name)
	b, err := afero.ReadFile(s.fs, p)
	if err != nil {
		return "", pkgerrors.Wrapf(ErrUnavailable, "failed to read %s: %v", p, err)
	}
	return strings.TrimSpace(string(b)), nil
}

func (s Sysfs) readInt(dir, name string) (int, error) {
	v, err := s.readString(dir, name)
	if err != nil {
		return 0, err
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, pkgerrors.Wrapf(ErrUnavailable, "malformed %s/%s %q", dir, name, v)
	}
	return i, nil
}

// capacity reads the kernel-computed percentage.
func (s Sysfs) capacity(dir string) func() (int, error) {
	return func() (int, error) {
		v, err := s.readInt(dir, "capacity")
		if err != nil {
			return 0, err
		}
		return CheckPercent(v)
	}
}

// ratio computes the percentage from a current and a maximum reading.
func (s Sysfs) ratio(dir, level, scale string) func() (int, error) {
	return func() (int, error) {
		l, err := s.readInt(dir, level)
		if err != nil {
			return 0, err
		}
		sc, err := s.readInt(dir, scale)
		if err != nil {
			return 0, err
		}
		return Percent(float64(l), float64(sc))
	}
}

func (s Sysfs) chargeState(dir string) ChargeState {
	status, err := s.readString(dir, "status")
	if err != nil {
		logrus.Debugf("failed to read battery status: %v", err)
		return StateUnknown
	}
	return parseStatus(status)
}

// parseStatus maps POWER_SUPPLY_STATUS values.
func parseStatus(status string) ChargeState {
	switch status {
	case "Charging":
		return StateCharging
	case "Full":
		return StateFull
	case "Discharging", "Not charging":
		return StateUnplugged
	default:
		return StateUnknown
	}
}

func versionString(osName, release string) string {
	if release == "" {
		release = "unknown"
	}
	return osName + " " + release
}
