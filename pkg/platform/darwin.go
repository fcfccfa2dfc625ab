//go:build darwin

package platform

import (
	"runtime"

	"github.com/charlie0129/battinfo/pkg/utils/osver"
)

func newDarwin() (Platform, error) {
	return &Darwin{
		Generic:      NewGeneric(),
		ios:          runtime.GOOS == "ios",
		smcSupported: smcSupported,
		readSMC:      readSMCCharge,
	}, nil
}

func smcSupported() bool {
	return runtime.GOOS == "darwin" && runtime.GOARCH == "arm64" && osver.IsAtLeast(11, 0, 0)
}
