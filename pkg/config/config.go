package config

import "github.com/sirupsen/logrus"

type Config interface {
	ChannelName() string
	AllowNonRootAccess() bool
	Platform() string
	SysfsRoot() string

	SetChannelName(string)
	SetAllowNonRootAccess(bool)
	SetPlatform(string)
	SetSysfsRoot(string)

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
	// LogrusFields returns the effective values for logging.
	LogrusFields() logrus.Fields
}
