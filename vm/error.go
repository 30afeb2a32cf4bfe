package vm

import (
	"fmt"

	"github.com/pkg/errors"
)

// Known fault causes. A failed Step returns an *Error whose cause is one of
// these, or arch.ErrUnknownOpcode for undecodable instructions.
var (
	ErrImageTooLarge  = errors.New("program image too large")
	ErrStackOverflow  = errors.New("call stack overflow")
	ErrStackUnderflow = errors.New("call stack underflow")
	ErrOutOfRange     = errors.New("memory access out of range")
	ErrKeyOutOfRange  = errors.New("key index out of range")
)

// Error defines a runtime error for a single step.
type Error struct {
	PC     uint16 // Address of the failing instruction.
	Opcode uint16 // Raw opcode, if it could be fetched.
	Err    error  // Underlying fault.
}

func (e *Error) Error() string {
	return fmt.Sprintf("%04x: %v", e.PC, e.Err)
}

// Cause returns the underlying fault.
func (e *Error) Cause() error  { return e.Err }
func (e *Error) Unwrap() error { return e.Err }
