package core

import "time"

// RuntimeConfig contains process-wide settings handed to the engine at startup.
// Seed and Now make every random draw and every date decision reproducible in tests.
type RuntimeConfig struct {
	ScreenW int              // Screen width in characters
	ScreenH int              // Screen height in characters
	Seed    int64            // RNG seed, 0 means derive from current time
	Now     func() time.Time // Clock override, nil means time.Now
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0, // 0 means use current time
	}
}

// Clock returns the configured clock.
func (c RuntimeConfig) Clock() Clock {
	if c.Now != nil {
		return ClockFunc(c.Now)
	}
	return SystemClock{}
}

// Rand returns a randomness source honoring the configured seed.
func (c RuntimeConfig) Rand() Rand {
	return NewRand(c.Seed)
}
