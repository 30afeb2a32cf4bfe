// Package arch defines the CHIP-8 instruction set along with
// some related helper functions.
package arch

// Op identifies a single instruction variant.
type Op int

// Known instructions. The comments list the opcode pattern for each.
const (
	Invalid Op = iota

	Clear  // 00E0
	Return // 00EE
	Jump   // 1nnn
	Call   // 2nnn

	SkipEqualByte        // 3xkk
	SkipNotEqualByte     // 4xkk
	SkipEqualRegister    // 5xy0
	LoadByte             // 6xkk
	AddByte              // 7xkk
	LoadRegister         // 8xy0
	Or                   // 8xy1
	And                  // 8xy2
	Xor                  // 8xy3
	AddRegister          // 8xy4
	Sub                  // 8xy5
	ShiftRight           // 8xy6
	SubFrom              // 8xy7
	ShiftLeft            // 8xyE
	SkipNotEqualRegister // 9xy0

	SetIndex      // Annn
	JumpOffset    // Bnnn
	Random        // Cxkk
	DisplaySprite // Dxyn

	SkipIfKeyPressed    // Ex9E
	SkipIfNotKeyPressed // ExA1

	LoadDelayTimer     // Fx07
	WaitKeyPress       // Fx0A
	SetDelayTimer      // Fx15
	SetSoundTimer      // Fx18
	AddIndex           // Fx1E
	LoadFontIndex      // Fx29
	BinaryCodedDecimal // Fx33
	StoreRegisters     // Fx55
	ReadRegisters      // Fx65

	opCount
)

// Name returns the assembler mnemonic for the given instruction.
// Returns false if the instruction is not recognized.
func Name(op Op) (string, bool) {
	switch op {
	case Clear:
		return "CLS", true
	case Return:
		return "RET", true
	case Jump, JumpOffset:
		return "JP", true
	case Call:
		return "CALL", true

	case SkipEqualByte, SkipEqualRegister:
		return "SE", true
	case SkipNotEqualByte, SkipNotEqualRegister:
		return "SNE", true
	case AddByte, AddRegister, AddIndex:
		return "ADD", true
	case Or:
		return "OR", true
	case And:
		return "AND", true
	case Xor:
		return "XOR", true
	case Sub:
		return "SUB", true
	case SubFrom:
		return "SUBN", true
	case ShiftRight:
		return "SHR", true
	case ShiftLeft:
		return "SHL", true

	case Random:
		return "RND", true
	case DisplaySprite:
		return "DRW", true
	case SkipIfKeyPressed:
		return "SKP", true
	case SkipIfNotKeyPressed:
		return "SKNP", true

	case LoadByte, LoadRegister, SetIndex, LoadDelayTimer, WaitKeyPress, SetDelayTimer,
		SetSoundTimer, LoadFontIndex, BinaryCodedDecimal, StoreRegisters, ReadRegisters:
		return "LD", true
	}

	return "", false
}

// IsSkip returns true if the instruction conditionally skips the next one.
func IsSkip(op Op) bool {
	switch op {
	case SkipEqualByte, SkipNotEqualByte, SkipEqualRegister, SkipNotEqualRegister,
		SkipIfKeyPressed, SkipIfNotKeyPressed:
		return true
	}
	return false
}

// IsBranch returns true if the instruction replaces the program counter outright.
func IsBranch(op Op) bool {
	switch op {
	case Jump, JumpOffset, Call, Return:
		return true
	}
	return false
}
