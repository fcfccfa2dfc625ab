//go:build darwin

package smc

// SMC keys for arm64 (Apple Silicon)
const (
	// BatteryChargeKey holds the charge percentage as a single byte.
	BatteryChargeKey = "BUIC"
)
