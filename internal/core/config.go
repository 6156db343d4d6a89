package core

// RuntimeConfig contains configuration passed to puzzles at initialization.
// Puzzles use this for deterministic generation and to find their tunables.
type RuntimeConfig struct {
	ScreenW    int    // Screen width in characters
	ScreenH    int    // Screen height in characters
	TickRate   int    // Simulation ticks per second (default 60)
	Seed       int64  // RNG seed for deterministic generation
	ConfigPath string // Optional custom puzzle config YAML
	Difficulty string // Difficulty preset name, empty for file values
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// StepClock is the elapsed-time oracle driven by the host frame pump.
// Time only moves when Advance is called and never while paused.
type StepClock struct {
	elapsed float64
	paused  bool
}

// NewStepClock creates a clock at zero.
func NewStepClock() *StepClock {
	return &StepClock{}
}

// Advance adds dt to the elapsed time unless the clock is paused.
// Negative steps are ignored so the clock stays monotonic.
func (c *StepClock) Advance(dt float64) {
	if c.paused || dt <= 0 {
		return
	}
	c.elapsed += dt
}

// Elapsed returns the accumulated time.
func (c *StepClock) Elapsed() float64 {
	return c.elapsed
}

// SetPaused freezes or resumes the clock.
func (c *StepClock) SetPaused(paused bool) {
	c.paused = paused
}

// Paused reports whether the clock is frozen.
func (c *StepClock) Paused() bool {
	return c.paused
}
