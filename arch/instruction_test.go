package arch

import (
	"testing"

	"github.com/pkg/errors"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		opcode uint16
		op     Op
		text   string
	}{
		{0x00e0, Clear, "CLS"},
		{0x00ee, Return, "RET"},
		{0x1234, Jump, "JP 0x234"},
		{0x2abc, Call, "CALL 0xABC"},
		{0x3a12, SkipEqualByte, "SE VA, 0x12"},
		{0x4b34, SkipNotEqualByte, "SNE VB, 0x34"},
		{0x5120, SkipEqualRegister, "SE V1, V2"},
		{0x6c2a, LoadByte, "LD VC, 0x2A"},
		{0x7dff, AddByte, "ADD VD, 0xFF"},
		{0x8120, LoadRegister, "LD V1, V2"},
		{0x8121, Or, "OR V1, V2"},
		{0x8122, And, "AND V1, V2"},
		{0x8123, Xor, "XOR V1, V2"},
		{0x8124, AddRegister, "ADD V1, V2"},
		{0x8125, Sub, "SUB V1, V2"},
		{0x8126, ShiftRight, "SHR V1, V2"},
		{0x8127, SubFrom, "SUBN V1, V2"},
		{0x812e, ShiftLeft, "SHL V1, V2"},
		{0x9ef0, SkipNotEqualRegister, "SNE VE, VF"},
		{0xa123, SetIndex, "LD I, 0x123"},
		{0xb300, JumpOffset, "JP V0, 0x300"},
		{0xc30f, Random, "RND V3, 0x0F"},
		{0xd015, DisplaySprite, "DRW V0, V1, 5"},
		{0xe59e, SkipIfKeyPressed, "SKP V5"},
		{0xe5a1, SkipIfNotKeyPressed, "SKNP V5"},
		{0xf107, LoadDelayTimer, "LD V1, DT"},
		{0xf20a, WaitKeyPress, "LD V2, K"},
		{0xf315, SetDelayTimer, "LD DT, V3"},
		{0xf418, SetSoundTimer, "LD ST, V4"},
		{0xf51e, AddIndex, "ADD I, V5"},
		{0xf629, LoadFontIndex, "LD F, V6"},
		{0xf733, BinaryCodedDecimal, "LD B, V7"},
		{0xf855, StoreRegisters, "LD [I], V8"},
		{0xf965, ReadRegisters, "LD V9, [I]"},
	}

	for _, tt := range tests {
		instr, err := Decode(tt.opcode)
		if err != nil {
			t.Fatalf("%04x: unexpected error: %v", tt.opcode, err)
		}

		if instr.Op != tt.op {
			t.Fatalf("%04x: op mismatch:\nwant: %d\nhave: %d", tt.opcode, tt.op, instr.Op)
		}

		if have := instr.String(); have != tt.text {
			t.Fatalf("%04x: text mismatch:\nwant: %q\nhave: %q", tt.opcode, tt.text, have)
		}
	}
}

func TestDecodeFields(t *testing.T) {
	instr, err := Decode(0xd7a9)
	if err != nil {
		t.Fatal(err)
	}

	if instr.X != 0x7 || instr.Y != 0xa || instr.N != 0x9 || instr.KK != 0xa9 || instr.NNN != 0x7a9 {
		t.Fatalf("field mismatch: %+v", instr)
	}
}

func TestDecodeInvalid(t *testing.T) {
	for _, opcode := range []uint16{
		0x0000, 0x0123, 0x00e1, 0x00ef,
		0x5121, 0x512f, 0x9121, 0x912f,
		0x8008, 0x800d, 0x800f,
		0xe19f, 0xe1a2, 0xe100,
		0xf100, 0xf108, 0xf166, 0xf1ff,
	} {
		instr, err := Decode(opcode)
		if err == nil {
			t.Fatalf("%04x: expected decode failure; have %v", opcode, instr)
		}

		de, ok := err.(*DecodeError)
		if !ok {
			t.Fatalf("%04x: expected *DecodeError; have %T", opcode, err)
		}

		if de.Opcode != opcode {
			t.Fatalf("opcode mismatch:\nwant: %04x\nhave: %04x", opcode, de.Opcode)
		}

		if errors.Cause(err) != ErrUnknownOpcode {
			t.Fatalf("%04x: unexpected cause %v", opcode, errors.Cause(err))
		}

		if have := instr.String(); have[:2] != "DW" {
			t.Fatalf("%04x: expected data word rendering; have %q", opcode, have)
		}
	}
}

// TestDecodeTotal ensures every opcode either decodes to a named instruction
// or fails, and that valid ones round-trip through their raw value.
func TestDecodeTotal(t *testing.T) {
	var valid int

	for v := 0; v <= 0xffff; v++ {
		opcode := uint16(v)
		instr, err := Decode(opcode)

		if err != nil {
			if instr.Op != Invalid {
				t.Fatalf("%04x: failed decode carries op %d", opcode, instr.Op)
			}
			continue
		}

		if _, ok := Name(instr.Op); !ok {
			t.Fatalf("%04x: op %d has no name", opcode, instr.Op)
		}

		if instr.Opcode != opcode {
			t.Fatalf("%04x: raw opcode not preserved", opcode)
		}

		valid++
	}

	// 00E0/00EE, ten unconditional families, 5xy0/9xy0, nine 8xy_ forms,
	// two Ex__ forms and nine Fx__ forms.
	const want = 2 + 10*0x1000 + 2*0x100 + 9*0x100 + 2*0x10 + 9*0x10
	if valid != want {
		t.Fatalf("valid opcode count mismatch:\nwant: %d\nhave: %d", want, valid)
	}
}

func TestNames(t *testing.T) {
	for op := Clear; op < opCount; op++ {
		if _, ok := Name(op); !ok {
			t.Fatalf("op %d has no name", op)
		}
	}

	if _, ok := Name(Invalid); ok {
		t.Fatalf("invalid op must not have a name")
	}
}

func TestRegisterName(t *testing.T) {
	if have := RegisterName(FlagRegister); have != "VF" {
		t.Fatalf("want: VF\nhave: %s", have)
	}

	if have := RegisterName(RegisterCount); have != "" {
		t.Fatalf("want empty name; have %q", have)
	}
}
