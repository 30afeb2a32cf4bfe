package vm

import "github.com/hexaflex/chip8/arch"

// StackSize is the capacity of the call stack.
const StackSize = 16

// Registers defines the register file.
//
// The stack pointer starts at 0 and is incremented before each push, so
// slot 0 is never written and at most StackSize-1 calls can be nested.
type Registers struct {
	V     [arch.RegisterCount]uint8 // General purpose registers V0-VF.
	I     uint16                    // Index register.
	PC    uint16                    // Program counter.
	SP    uint8                     // Stack pointer.
	Stack [StackSize]uint16         // Return addresses.
}

// push stores addr on the call stack.
func (r *Registers) push(addr uint16) error {
	if int(r.SP) >= StackSize-1 {
		return ErrStackOverflow
	}
	r.SP++
	r.Stack[r.SP] = addr
	return nil
}

// pop removes the top return address from the call stack.
func (r *Registers) pop() (uint16, error) {
	if r.SP == 0 {
		return 0, ErrStackUnderflow
	}
	addr := r.Stack[r.SP]
	r.SP--
	return addr, nil
}

// setFlag sets VF to 1 or 0.
func (r *Registers) setFlag(v bool) {
	if v {
		r.V[arch.FlagRegister] = 1
	} else {
		r.V[arch.FlagRegister] = 0
	}
}
