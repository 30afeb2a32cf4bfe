package vm

import "testing"

func TestDrawSprite(t *testing.T) {
	//   CLS
	//   LD  I, 0x300
	//   DRW V0, V1, 1

	m := newMachine(t, 0x00e0, 0xa300, 0xd011)
	m.memory[0x300] = 0xff
	m.regs.V[0xf] = 1

	step(t, m)
	step(t, m)
	step(t, m)

	fb := m.Display()
	if n := lit(&fb); n != 8 {
		t.Fatalf("want 8 lit pixels; have %d", n)
	}

	for x := 0; x < 8; x++ {
		if fb.At(x, 0) != PixelOn {
			t.Fatalf("pixel (%d, 0) is off", x)
		}
	}

	if m.V(0xf) != 0 {
		t.Fatalf("unexpected collision")
	}
}

func TestDrawSpriteTwiceErases(t *testing.T) {
	m := newMachine(t, 0xa300, 0xd011, 0xd011)
	m.memory[0x300] = 0xff

	step(t, m)
	step(t, m)
	step(t, m)

	fb := m.Display()
	if n := lit(&fb); n != 0 {
		t.Fatalf("want 0 lit pixels; have %d", n)
	}

	if m.V(0xf) != 1 {
		t.Fatalf("expected collision")
	}
}

func TestDrawSpriteCollisionIsErasure(t *testing.T) {
	// Two overlapping sprites where the second only turns pixels on.
	m := newMachine(t, 0xa300, 0xd011, 0xa301, 0xd011)
	m.memory[0x300] = 0xf0
	m.memory[0x301] = 0x0f

	for i := 0; i < 4; i++ {
		step(t, m)
	}

	fb := m.Display()
	if n := lit(&fb); n != 8 {
		t.Fatalf("want 8 lit pixels; have %d", n)
	}

	if m.V(0xf) != 0 {
		t.Fatalf("turning pixels on must not report a collision")
	}
}

func TestDrawSpriteWraps(t *testing.T) {
	m := newMachine(t, 0xa300, 0xd012)
	m.memory[0x300] = 0xff
	m.memory[0x301] = 0x81
	m.regs.V[0] = 60
	m.regs.V[1] = 31

	step(t, m)
	step(t, m)

	fb := m.Display()
	for _, x := range []int{60, 61, 62, 63, 0, 1, 2, 3} {
		if fb.At(x, 31) != PixelOn {
			t.Fatalf("pixel (%d, 31) is off", x)
		}
	}

	// Second row wraps to y=0; only its outer bits are set.
	if fb.At(60, 0) != PixelOn || fb.At(3, 0) != PixelOn || fb.At(61, 0) != PixelOff {
		t.Fatalf("second sprite row did not wrap to the top")
	}

	if n := lit(&fb); n != 10 {
		t.Fatalf("want 10 lit pixels; have %d", n)
	}
}

func TestDrawSpriteLargeCoordinates(t *testing.T) {
	// Coordinates beyond the display wrap modulo its size.
	m := newMachine(t, 0xa300, 0xd011)
	m.memory[0x300] = 0x80
	m.regs.V[0] = 64 + 5
	m.regs.V[1] = 32*3 + 7

	step(t, m)
	step(t, m)

	fb := m.Display()
	if fb.At(5, 7) != PixelOn {
		t.Fatalf("pixel (5, 7) is off")
	}
}

func TestDrawFontGlyph(t *testing.T) {
	//   LD  V2, 0x08
	//   LD  F, V2
	//   DRW V0, V1, 5

	m := newMachine(t, 0x6208, 0xf229, 0xd015)
	step(t, m)
	step(t, m)
	step(t, m)

	fb := m.Display()
	want := []string{
		"####",
		"#..#",
		"####",
		"#..#",
		"####",
	}

	for y, row := range want {
		for x, c := range row {
			if (c == '#') != (fb.At(x, y) == PixelOn) {
				t.Fatalf("glyph mismatch at (%d, %d)", x, y)
			}
		}
	}
}

func TestDrawSpriteOutOfRange(t *testing.T) {
	m := newMachine(t, 0xaffa, 0xd01f) // 15 rows from 0xffa
	step(t, m)
	m.regs.V[0xf] = 0x42

	assertFault(t, m.Step(), ErrOutOfRange)

	fb := m.Display()
	if n := lit(&fb); n != 0 {
		t.Fatalf("failed draw modified the display")
	}

	if m.V(0xf) != 0x42 {
		t.Fatalf("failed draw modified VF")
	}
}

func TestDisplayIsCopy(t *testing.T) {
	m := newMachine(t)
	fb := m.Display()
	fb[0] = PixelOn

	if have := m.Display(); have[0] != PixelOff {
		t.Fatalf("display snapshot aliases machine state")
	}
}

func TestClear(t *testing.T) {
	var fb Framebuffer
	fb.draw(10, 10, []byte{0xff, 0xff})
	fb.Clear()

	if n := lit(&fb); n != 0 {
		t.Fatalf("want 0 lit pixels; have %d", n)
	}
}

func lit(fb *Framebuffer) int {
	var n int
	for _, p := range fb {
		if p == PixelOn {
			n++
		}
	}
	return n
}
