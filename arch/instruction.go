package arch

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrUnknownOpcode is the cause of every decode failure.
var ErrUnknownOpcode = errors.New("unknown opcode")

// DecodeError reports an opcode which does not match any known instruction.
type DecodeError struct {
	Opcode uint16 // Raw opcode value.
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unknown opcode %04x", e.Opcode)
}

// Cause returns ErrUnknownOpcode.
func (e *DecodeError) Cause() error  { return ErrUnknownOpcode }
func (e *DecodeError) Unwrap() error { return ErrUnknownOpcode }

// Instruction defines decoded instruction data.
// Only the fields relevant to Op carry meaning; the rest are still
// extracted from Opcode so tracing can print them uniformly.
type Instruction struct {
	Op     Op     // Instruction variant.
	Opcode uint16 // Raw opcode.
	X      int    // First register selector.
	Y      int    // Second register selector.
	N      uint8  // Sprite height.
	KK     uint8  // Immediate byte.
	NNN    uint16 // Address.
}

// Decode maps the given opcode to its instruction.
// It is defined for all 65536 opcodes: anything not matching a known
// pattern yields a *DecodeError.
func Decode(opcode uint16) (Instruction, error) {
	instr := Instruction{
		Opcode: opcode,
		X:      X(opcode),
		Y:      Y(opcode),
		N:      N(opcode),
		KK:     KK(opcode),
		NNN:    NNN(opcode),
	}

	instr.Op = decodeOp(opcode)
	if instr.Op == Invalid {
		return instr, &DecodeError{Opcode: opcode}
	}

	return instr, nil
}

// decodeOp dispatches on the high nibble, then on the low nibble or low
// byte for the 0, 8, E and F families.
func decodeOp(opcode uint16) Op {
	switch family(opcode) {
	case 0x0:
		switch opcode {
		case 0x00e0:
			return Clear
		case 0x00ee:
			return Return
		}
	case 0x1:
		return Jump
	case 0x2:
		return Call
	case 0x3:
		return SkipEqualByte
	case 0x4:
		return SkipNotEqualByte
	case 0x5:
		if N(opcode) == 0 {
			return SkipEqualRegister
		}
	case 0x6:
		return LoadByte
	case 0x7:
		return AddByte
	case 0x8:
		switch N(opcode) {
		case 0x0:
			return LoadRegister
		case 0x1:
			return Or
		case 0x2:
			return And
		case 0x3:
			return Xor
		case 0x4:
			return AddRegister
		case 0x5:
			return Sub
		case 0x6:
			return ShiftRight
		case 0x7:
			return SubFrom
		case 0xe:
			return ShiftLeft
		}
	case 0x9:
		if N(opcode) == 0 {
			return SkipNotEqualRegister
		}
	case 0xa:
		return SetIndex
	case 0xb:
		return JumpOffset
	case 0xc:
		return Random
	case 0xd:
		return DisplaySprite
	case 0xe:
		switch KK(opcode) {
		case 0x9e:
			return SkipIfKeyPressed
		case 0xa1:
			return SkipIfNotKeyPressed
		}
	case 0xf:
		switch KK(opcode) {
		case 0x07:
			return LoadDelayTimer
		case 0x0a:
			return WaitKeyPress
		case 0x15:
			return SetDelayTimer
		case 0x18:
			return SetSoundTimer
		case 0x1e:
			return AddIndex
		case 0x29:
			return LoadFontIndex
		case 0x33:
			return BinaryCodedDecimal
		case 0x55:
			return StoreRegisters
		case 0x65:
			return ReadRegisters
		}
	}

	return Invalid
}

// String returns the instruction in assembler notation.
func (i Instruction) String() string {
	name, ok := Name(i.Op)
	if !ok {
		return fmt.Sprintf("DW 0x%04X", i.Opcode)
	}

	vx := RegisterName(i.X)
	vy := RegisterName(i.Y)

	switch i.Op {
	case Clear, Return:
		return name
	case Jump, Call:
		return fmt.Sprintf("%s 0x%03X", name, i.NNN)
	case JumpOffset:
		return fmt.Sprintf("%s V0, 0x%03X", name, i.NNN)
	case SetIndex:
		return fmt.Sprintf("%s I, 0x%03X", name, i.NNN)
	case SkipEqualByte, SkipNotEqualByte, LoadByte, AddByte, Random:
		return fmt.Sprintf("%s %s, 0x%02X", name, vx, i.KK)
	case DisplaySprite:
		return fmt.Sprintf("%s %s, %s, %d", name, vx, vy, i.N)
	case SkipIfKeyPressed, SkipIfNotKeyPressed:
		return fmt.Sprintf("%s %s", name, vx)
	case LoadDelayTimer:
		return fmt.Sprintf("%s %s, DT", name, vx)
	case WaitKeyPress:
		return fmt.Sprintf("%s %s, K", name, vx)
	case SetDelayTimer:
		return fmt.Sprintf("%s DT, %s", name, vx)
	case SetSoundTimer:
		return fmt.Sprintf("%s ST, %s", name, vx)
	case AddIndex:
		return fmt.Sprintf("%s I, %s", name, vx)
	case LoadFontIndex:
		return fmt.Sprintf("%s F, %s", name, vx)
	case BinaryCodedDecimal:
		return fmt.Sprintf("%s B, %s", name, vx)
	case StoreRegisters:
		return fmt.Sprintf("%s [I], %s", name, vx)
	case ReadRegisters:
		return fmt.Sprintf("%s %s, [I]", name, vx)
	}

	// Remaining two-register forms.
	return fmt.Sprintf("%s %s, %s", name, vx, vy)
}
