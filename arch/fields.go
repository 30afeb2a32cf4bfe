package arch

// Bit-field extraction for a 16-bit opcode:
//
//	nnn: lowest 12 bits
//	n:   lowest 4 bits
//	x:   bits 8-11
//	y:   bits 4-7
//	kk:  lowest 8 bits

// NNN returns the address field of opcode.
func NNN(opcode uint16) uint16 { return opcode & 0xfff }

// N returns the low nibble of opcode.
func N(opcode uint16) uint8 { return uint8(opcode & 0xf) }

// X returns the first register selector of opcode.
func X(opcode uint16) int { return int(opcode>>8) & 0xf }

// Y returns the second register selector of opcode.
func Y(opcode uint16) int { return int(opcode>>4) & 0xf }

// KK returns the immediate byte of opcode.
func KK(opcode uint16) uint8 { return uint8(opcode) }

// family returns the high nibble of opcode.
func family(opcode uint16) int { return int(opcode >> 12) }
