package main

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"
)

func TestSlice(t *testing.T) {
	// 10x20 image: a diagonal in the first strip and a lit column at x=9.
	img := image.NewGray(image.Rect(0, 0, 10, 20))
	for y := 0; y < 8; y++ {
		img.SetGray(y, y, color.Gray{Y: 0xff})
	}
	for y := 0; y < 20; y++ {
		img.SetGray(9, y, color.Gray{Y: 0xff})
	}

	sprites := slice(img, MaxSpriteHeight)
	if len(sprites) != 4 {
		t.Fatalf("want 4 sprites; have %d", len(sprites))
	}

	want := []struct{ x, y, rows int }{{0, 0, 15}, {0, 15, 5}, {8, 0, 15}, {8, 15, 5}}
	for i, w := range want {
		s := sprites[i]
		if s.X != w.x || s.Y != w.y || len(s.Rows) != w.rows {
			t.Fatalf("sprite %d:\nwant: %d,%d %d rows\nhave: %d,%d %d rows", i, w.x, w.y, w.rows, s.X, s.Y, len(s.Rows))
		}
	}

	for y := 0; y < 8; y++ {
		if have, want := sprites[0].Rows[y], byte(0x80>>y); have != want {
			t.Fatalf("row %d:\nwant: %08b\nhave: %08b", y, want, have)
		}
	}

	for y, row := range sprites[3].Rows {
		if row != 0x40 {
			t.Fatalf("padded strip row %d:\nwant: %08b\nhave: %08b", y, 0x40, row)
		}
	}
}

func TestLit(t *testing.T) {
	for _, tc := range []struct {
		c    color.Color
		want bool
	}{
		{color.White, true},
		{color.Black, false},
		{color.Gray{Y: 0x7f}, false},
		{color.Gray{Y: 0x80}, true},
		{color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0}, false},
	} {
		if have := lit(tc.c); have != tc.want {
			t.Fatalf("lit(%v): want %v; have %v", tc.c, tc.want, have)
		}
	}
}

func TestWriteHex(t *testing.T) {
	var sb bytes.Buffer
	err := writeHex(&sb, []Sprite{{X: 0, Y: 0, Rows: []byte{0xf0, 0x90}}})
	if err != nil {
		t.Fatal(err)
	}

	have := sb.String()
	for _, line := range []string{"; 1 sprites", "; sprite 0 at 0,0, 2 rows", "0xF0 ; ####....", "0x90 ; #..#...."} {
		if !strings.Contains(have, line+"\n") {
			t.Fatalf("missing %q in:\n%s", line, have)
		}
	}
}

func TestWriteBinary(t *testing.T) {
	var sb bytes.Buffer
	writeBinary(&sb, []Sprite{{Rows: []byte{1, 2}}, {Rows: []byte{3}}})

	if have := sb.Bytes(); !bytes.Equal(have, []byte{1, 2, 3}) {
		t.Fatalf("want [1 2 3]; have %v", have)
	}
}
