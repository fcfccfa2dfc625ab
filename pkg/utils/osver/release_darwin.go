package osver

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// release reads the product version, e.g. "14.5", which is what users
// see as the macOS or iOS version. The kernel release would be the
// Darwin version instead.
func release() string {
	v, err := unix.Sysctl("kern.osproductversion")
	if err != nil {
		logrus.Debugf("failed to read kern.osproductversion: %v", err)
		return ""
	}
	return v
}
