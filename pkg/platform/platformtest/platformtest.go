// Package platformtest provides a scriptable platform.Platform for tests.
package platformtest

import (
	"sync/atomic"

	"github.com/charlie0129/battinfo/pkg/platform"
)

// Fake answers every accessor from its fields. It counts level reads so
// tests can check that nothing is retried or cached.
type Fake struct {
	Version  string
	Level    int
	LevelErr error
	Charging bool
	State    platform.ChargeState
	Temp     int
	TempErr  error
	// Panic makes BatteryLevel panic with this value when non-nil.
	Panic any

	levelReads atomic.Int64
}

var _ platform.Platform = &Fake{}

func (f *Fake) Name() string {
	return "fake"
}

func (f *Fake) PlatformVersion() string {
	return f.Version
}

func (f *Fake) BatteryLevel() (int, error) {
	f.levelReads.Add(1)
	if f.Panic != nil {
		panic(f.Panic)
	}
	return f.Level, f.LevelErr
}

func (f *Fake) IsCharging() bool {
	return f.Charging
}

func (f *Fake) ChargeState() platform.ChargeState {
	return f.State
}

func (f *Fake) Temperature() (int, error) {
	return f.Temp, f.TempErr
}

// LevelReads returns how many times BatteryLevel was called.
func (f *Fake) LevelReads() int64 {
	return f.levelReads.Load()
}
