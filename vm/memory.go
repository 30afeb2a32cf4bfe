package vm

import "github.com/pkg/errors"

// Memory layout.
const (
	MemorySize     = 0xfff                     // Size of addressable memory.
	ProgramStart   = 0x200                     // Load address of the program image.
	MaxProgramSize = MemorySize - ProgramStart // Largest program image which fits.
)

// Memory defines the system's memory bank.
// All accessors validate the requested range before touching it.
type Memory [MemorySize]byte

// check returns an error if n bytes at addr do not fit in memory.
func (m *Memory) check(addr, n int) error {
	if addr < 0 || n < 0 || addr+n > MemorySize {
		return errors.Wrapf(ErrOutOfRange, "%d byte(s) at %04x", n, addr)
	}
	return nil
}

// U8 returns the 8-bit value at the given address.
func (m *Memory) U8(addr int) (byte, error) {
	if err := m.check(addr, 1); err != nil {
		return 0, err
	}
	return m[addr], nil
}

// U16 returns the big-endian 16-bit value at the given address.
func (m *Memory) U16(addr int) (uint16, error) {
	if err := m.check(addr, 2); err != nil {
		return 0, err
	}
	return uint16(m[addr])<<8 | uint16(m[addr+1]), nil
}

// Write writes len(p) bytes from p into memory, starting at the given address.
// Nothing is written if the range does not fit.
func (m *Memory) Write(addr int, p []byte) error {
	if err := m.check(addr, len(p)); err != nil {
		return err
	}
	copy(m[addr:], p)
	return nil
}

// Read reads len(p) bytes from memory into p, starting at the given address.
func (m *Memory) Read(addr int, p []byte) error {
	if err := m.check(addr, len(p)); err != nil {
		return err
	}
	copy(p, m[addr:])
	return nil
}

// slice returns the n bytes at addr without copying.
func (m *Memory) slice(addr, n int) ([]byte, error) {
	if err := m.check(addr, n); err != nil {
		return nil, err
	}
	return m[addr : addr+n], nil
}
