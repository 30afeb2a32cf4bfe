// Package clock paces the machine against wall time.
//
// The host loop runs at whatever rate the display allows. On every pass it asks
// the clock how many timer ticks and instruction steps are owed for the time
// which passed since the previous pass.
package clock

import "time"

// Default rates.
const (
	TimerFrequency   = 60
	DefaultFrequency = 500
)

// MaxCatchUp is the largest interval a single Advance accounts for.
// Time lost beyond this, while the host was stalled or paused, is dropped.
const MaxCatchUp = 250 * time.Millisecond

// Budget is the work owed for an interval.
type Budget struct {
	Ticks int // 60 Hz timer decrements.
	Steps int // Instructions to execute.
}

// Clock tracks owed work. Counts are derived from the total elapsed time
// since the base, so no fractional time is lost between calls.
type Clock struct {
	timerHz int64
	cpuHz   int64
	base    time.Time // Reference point for the counters.
	last    time.Time // Time of the previous Advance.
	ticks   int64     // Ticks handed out since base.
	steps   int64     // Steps handed out since base.
	running bool
}

// New creates a clock for the given timer and instruction rates.
// Rates below 1 are treated as 1.
func New(timerHz, cpuHz int) *Clock {
	return &Clock{
		timerHz: int64(max(timerHz, 1)),
		cpuHz:   int64(max(cpuHz, 1)),
	}
}

// Start resets the clock so that nothing is owed at now.
func (c *Clock) Start(now time.Time) {
	c.base = now
	c.last = now
	c.ticks = 0
	c.steps = 0
	c.running = true
}

// Stop makes the next Advance restart the clock.
func (c *Clock) Stop() {
	c.running = false
}

// Running returns true if the clock has been started.
func (c *Clock) Running() bool {
	return c.running
}

// Frequency returns the instruction rate in Hz.
func (c *Clock) Frequency() int {
	return int(c.cpuHz)
}

// SetFrequency changes the instruction rate. Work owed at the old rate
// is discarded.
func (c *Clock) SetFrequency(hz int) {
	c.cpuHz = int64(max(hz, 1))
	if c.running {
		c.Start(c.last)
	}
}

// Advance returns the work owed between the previous call and now.
// A stopped clock is started and owes nothing. Time running backwards
// owes nothing either.
func (c *Clock) Advance(now time.Time) Budget {
	if !c.running {
		c.Start(now)
		return Budget{}
	}

	delta := now.Sub(c.last)
	if delta <= 0 {
		return Budget{}
	}

	if delta > MaxCatchUp {
		c.base = c.base.Add(delta - MaxCatchUp)
	}

	c.last = now
	elapsed := now.Sub(c.base)

	ticks := owed(elapsed, c.timerHz)
	steps := owed(elapsed, c.cpuHz)

	b := Budget{
		Ticks: int(ticks - c.ticks),
		Steps: int(steps - c.steps),
	}

	c.ticks = ticks
	c.steps = steps

	if elapsed > time.Hour {
		c.rebase()
	}

	return b
}

// rebase moves the base forward by whole seconds to keep the counters small.
func (c *Clock) rebase() {
	secs := int64(c.last.Sub(c.base) / time.Second)
	c.base = c.base.Add(time.Duration(secs) * time.Second)
	c.ticks -= secs * c.timerHz
	c.steps -= secs * c.cpuHz
}

// owed returns the number of whole periods at hz which fit in d.
func owed(d time.Duration, hz int64) int64 {
	return int64(d) * hz / int64(time.Second)
}
