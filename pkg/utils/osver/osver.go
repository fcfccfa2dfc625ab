package osver

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

var (
	cachedVersion Version
	cachedRelease string
	initOnce      sync.Once
)

// Version represents an OS release version with major, minor, and patch components.
type Version struct {
	Major int
	Minor int
	Patch int
}

// String returns the string representation of a Version.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Get returns the version of the running OS.
// The version is retrieved once and cached for subsequent calls.
// A zero Version is returned if it cannot be determined.
func Get() Version {
	initOnce.Do(load)
	return cachedVersion
}

// Release returns the raw release string reported by the OS,
// e.g. "14.5" on macOS or "6.8.0-45-generic" on Linux.
func Release() string {
	initOnce.Do(load)
	return cachedRelease
}

func load() {
	cachedRelease = release()
	v, err := Parse(cachedRelease)
	if err == nil {
		cachedVersion = v
	}
}

// Parse converts a release string into a Version. It reads up to three
// leading numeric components and ignores any suffix, so kernel-style
// "6.8.0-45-generic" gives 6.8.0 and "14" gives 14.0.0.
func Parse(version string) (Version, error) {
	var nums []int
	for _, part := range strings.SplitN(strings.TrimSpace(version), ".", 3) {
		end := 0
		for end < len(part) && part[end] >= '0' && part[end] <= '9' {
			end++
		}
		if end == 0 {
			break
		}
		n, err := strconv.Atoi(part[:end])
		if err != nil {
			break
		}
		nums = append(nums, n)
		if end != len(part) {
			break
		}
	}

	if len(nums) == 0 {
		return Version{}, fmt.Errorf("invalid version format: %q", version)
	}
	for len(nums) < 3 {
		nums = append(nums, 0)
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// Compare compares two versions and returns:
// -1 if v < other
// 0 if v == other
// 1 if v > other
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		if v.Major < other.Major {
			return -1
		}
		return 1
	}

	if v.Minor != other.Minor {
		if v.Minor < other.Minor {
			return -1
		}
		return 1
	}

	if v.Patch != other.Patch {
		if v.Patch < other.Patch {
			return -1
		}
		return 1
	}

	return 0
}

// AtLeast returns true if this version is greater than or equal to the specified version.
func (v Version) AtLeast(other Version) bool {
	return v.Compare(other) >= 0
}

// IsAtLeast checks if the current system version is at least the specified version.
func IsAtLeast(major, minor, patch int) bool {
	current := Get()
	required := Version{Major: major, Minor: minor, Patch: patch}
	return current.AtLeast(required)
}
