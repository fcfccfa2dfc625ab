//go:build unix && !darwin

package osver

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

func release() string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		logrus.Debugf("uname failed: %v", err)
		return ""
	}
	return unix.ByteSliceToString(uts.Release[:])
}
