// Package vm implements the CHIP-8 virtual machine.
//
// A Machine is driven entirely from the outside: the host calls Step at
// its chosen instruction rate, Tick at 60 Hz and SetKeypad once per frame.
// Nothing in this package blocks, sleeps or starts goroutines.
package vm

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/arch"
)

// RandomSource supplies the entropy for the RND instruction.
// *math/rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// TraceFunc represents a callback handler for debug trace output.
// It is called for every decoded instruction, before it executes.
type TraceFunc func(pc uint16, instr arch.Instruction)

// Machine holds the complete VM state.
type Machine struct {
	memory  Memory       // System memory.
	regs    Registers    // Register file and call stack.
	display Framebuffer  // Display contents.
	keypad  Keypad       // Most recent input snapshot.
	delay   uint8        // Delay timer.
	sound   uint8        // Sound timer.
	rng     RandomSource // Random number generator.
	trace   TraceFunc    // Handler for debug trace output.
}

// New creates a machine with the given program loaded at ProgramStart.
// rng and trace are optional. Returns ErrImageTooLarge if the program does
// not fit in memory.
func New(program []byte, rng RandomSource, trace TraceFunc) (*Machine, error) {
	if len(program) > MaxProgramSize {
		return nil, errors.Wrapf(ErrImageTooLarge, "%d bytes, limit is %d", len(program), MaxProgramSize)
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if trace == nil {
		trace = func(uint16, arch.Instruction) { /* nop */ }
	}

	m := &Machine{
		rng:   rng,
		trace: trace,
	}

	copy(m.memory[FontAddress:], font[:])
	copy(m.memory[ProgramStart:], program)
	m.regs.PC = ProgramStart
	return m, nil
}

// Step performs a single fetch-decode-execute cycle.
//
// If it fails, the returned *Error describes the fault and the machine is
// left exactly as it was: the program counter still addresses the failing
// instruction. Use Skip to move past it.
func (m *Machine) Step() error {
	pc := m.regs.PC

	opcode, err := m.memory.U16(int(pc))
	if err != nil {
		return &Error{PC: pc, Err: err}
	}

	instr, err := arch.Decode(opcode)
	if err != nil {
		return &Error{PC: pc, Opcode: opcode, Err: err}
	}

	m.trace(pc, instr)

	m.regs.PC = pc + 2
	if err := m.execute(&instr); err != nil {
		m.regs.PC = pc
		return &Error{PC: pc, Opcode: opcode, Err: err}
	}

	return nil
}

// Skip advances the program counter past the current instruction
// without executing it.
func (m *Machine) Skip() {
	m.regs.PC += 2
}

// Tick decrements both timers by one, unless they are already zero.
func (m *Machine) Tick() {
	if m.delay > 0 {
		m.delay--
	}
	if m.sound > 0 {
		m.sound--
	}
}

// IsPlayingSound returns true while the sound timer is running.
func (m *Machine) IsPlayingSound() bool {
	return m.sound > 0
}

// SetKeypad replaces the keypad state.
func (m *Machine) SetKeypad(k Keypad) {
	m.keypad = k
}

// Display returns a copy of the display contents.
func (m *Machine) Display() Framebuffer {
	return m.display
}

// Registers returns a copy of the register file.
func (m *Machine) Registers() Registers {
	return m.regs
}

// Memory returns a copy of system memory.
func (m *Machine) Memory() Memory {
	return m.memory
}

// PC returns the program counter.
func (m *Machine) PC() uint16 { return m.regs.PC }

// Index returns the index register.
func (m *Machine) Index() uint16 { return m.regs.I }

// V returns the value of register n. n is taken modulo 16.
func (m *Machine) V(n int) uint8 { return m.regs.V[n&0xf] }

// DelayTimer returns the delay timer value.
func (m *Machine) DelayTimer() uint8 { return m.delay }

// SoundTimer returns the sound timer value.
func (m *Machine) SoundTimer() uint8 { return m.sound }
