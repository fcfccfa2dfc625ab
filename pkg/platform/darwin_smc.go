//go:build darwin && arm64

package platform

import (
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/battinfo/pkg/smc"
)

// readSMCCharge opens a connection for the single read, so no SMC handle
// outlives the call.
func readSMCCharge() (int, error) {
	conn := smc.New()
	if err := conn.Open(); err != nil {
		return 0, pkgerrors.Wrapf(ErrUnavailable, "failed to open smc: %v", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logrus.Warnf("failed to close smc connection: %v", err)
		}
	}()

	charge, err := conn.GetBatteryCharge()
	if err != nil {
		return 0, pkgerrors.Wrapf(ErrUnavailable, "failed to read battery charge from smc: %v", err)
	}
	return CheckPercent(charge)
}
