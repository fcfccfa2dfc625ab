//go:build darwin && !arm64

package platform

import (
	pkgerrors "github.com/pkg/errors"
)

func readSMCCharge() (int, error) {
	return 0, pkgerrors.Wrap(ErrUnavailable, "smc charge key is only known on arm64")
}
