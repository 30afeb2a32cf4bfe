package main

import (
	"time"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices/fffe/clock"
	"github.com/hexaflex/chip8/vm"
)

// Controller controls the execution of a machine.
type Controller struct {
	machine     *vm.Machine
	clock       *clock.Clock
	start       time.Time
	stepCount   uint64
	running     bool
	haltOnError bool
}

// NewController creates a new controller running at the given instruction rate.
func NewController(frequency int, haltOnError bool) *Controller {
	return &Controller{
		clock:       clock.New(clock.TimerFrequency, frequency),
		haltOnError: haltOnError,
	}
}

// Load replaces the current machine with one running the given program.
// Running state is left as it was.
func (c *Controller) Load(program []byte, rng vm.RandomSource, trace vm.TraceFunc) error {
	m, err := vm.New(program, rng, trace)
	if err != nil {
		return err
	}

	c.machine = m
	c.setRunning(c.running)
	return nil
}

// Machine returns the current machine. It is nil until a program was loaded.
func (c *Controller) Machine() *vm.Machine {
	return c.machine
}

// Running returns true if the machine is currently running.
func (c *Controller) Running() bool {
	return c.running
}

// Frequency returns the measured instruction rate in herz.
func (c *Controller) Frequency() float64 {
	if !c.running {
		return 0
	}

	secs := time.Since(c.start).Seconds()
	if secs <= 0 {
		return 0
	}

	return float64(c.stepCount) / secs
}

// ToggleRun starts or stops program execution.
func (c *Controller) ToggleRun() {
	c.setRunning(!c.running)
}

// Start begins execution of the program.
func (c *Controller) Start() {
	c.setRunning(true)
}

// Stop pauses execution of the program.
func (c *Controller) Stop() {
	c.setRunning(false)
}

// Update runs the timer ticks and instructions owed for the time passed
// since the previous call. It does nothing while paused.
//
// With halt-on-error, the first failure pauses execution. Otherwise the failing
// instruction is skipped and the remaining budget is spent.
func (c *Controller) Update(now time.Time) error {
	if !c.running || c.machine == nil {
		return nil
	}

	b := c.clock.Advance(now)

	for i := 0; i < b.Ticks; i++ {
		c.machine.Tick()
	}

	var errs []error

	for i := 0; i < b.Steps && c.running; i++ {
		if err := c.Step(); err != nil {
			errs = append(errs, err)
		}
	}

	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return errors.Wrapf(errs[0], "%d failed instructions, first", len(errs))
	}
}

// Step performs a single execution step.
func (c *Controller) Step() error {
	if c.machine == nil {
		return nil
	}

	c.stepCount++

	err := c.machine.Step()
	if err == nil {
		return nil
	}

	if c.haltOnError {
		c.setRunning(false)
	} else {
		c.machine.Skip()
	}

	return err
}

// setRunning determines if the machine is running or is paused.
func (c *Controller) setRunning(v bool) {
	c.running = v
	c.start = time.Now()
	c.stepCount = 0
	c.clock.Stop()
}
