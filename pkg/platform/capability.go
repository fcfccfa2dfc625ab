package platform

import (
	"math"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Capability is one way of answering a query. Supported decides whether
// the running system offers it; Read performs the query.
type Capability struct {
	Name      string
	Supported func() bool
	Read      func() (int, error)
}

// Evaluate walks caps in order and answers with the first supported one.
// Its result is final: a failing read does not fall through to the next
// capability.
func Evaluate(caps []Capability) (int, error) {
	for _, c := range caps {
		if c.Supported != nil && !c.Supported() {
			logrus.WithField("capability", c.Name).Trace("capability not supported")
			continue
		}

		v, err := c.Read()
		logrus.WithFields(logrus.Fields{
			"capability": c.Name,
			"value":      v,
			"err":        err,
		}).Trace("capability read")
		if err != nil {
			return 0, pkgerrors.Wrapf(err, "%s", c.Name)
		}
		return v, nil
	}

	return 0, pkgerrors.Wrap(ErrUnavailable, "no supported capability")
}

// Percent computes round(level / scale * 100) from two raw readings.
// A negative level, a non-positive scale or a result outside [0,100]
// is ErrUnavailable.
func Percent(level, scale float64) (int, error) {
	if math.IsNaN(level) || math.IsNaN(scale) || level < 0 || scale <= 0 {
		return 0, pkgerrors.Wrapf(ErrUnavailable, "invalid raw reading level=%v scale=%v", level, scale)
	}

	return CheckPercent(int(math.Round(level / scale * 100)))
}

// CheckPercent returns v unchanged if it is a valid percentage.
func CheckPercent(v int) (int, error) {
	if v < 0 || v > 100 {
		return 0, pkgerrors.Wrapf(ErrUnavailable, "percentage %d out of range", v)
	}
	return v, nil
}
