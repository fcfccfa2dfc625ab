//go:build !darwin

package platform

import (
	pkgerrors "github.com/pkg/errors"
)

func newDarwin() (Platform, error) {
	return nil, pkgerrors.New("the darwin platform is only available on macOS and iOS")
}
