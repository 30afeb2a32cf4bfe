package main

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/hexaflex/chip8/vm"
)

// MaxSpriteHeight is the largest row count a DRW instruction accepts.
const MaxSpriteHeight = 15

// Sprite is one block of sprite rows, cut from the source image.
type Sprite struct {
	X, Y int    // Position in the source image, in pixels.
	Rows []byte // One byte per row; the most significant bit is the leftmost pixel.
}

func main() {
	config := parseArgs()

	img, err := loadImage(config.Input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	out, close := makeWriter(config)
	defer close()

	sprites := slice(img, config.Height)

	if config.Format == FormatBin {
		err = writeBinary(out, sprites)
	} else {
		err = writeHex(out, sprites)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// slice cuts img into 8 pixel wide strips, left to right, and each strip
// into sprites of at most height rows, top to bottom. A partial strip at the
// right edge is padded with unlit pixels.
func slice(img image.Image, height int) []Sprite {
	r := img.Bounds()
	var out []Sprite

	for sx := r.Min.X; sx < r.Max.X; sx += vm.SpriteWidth {
		for sy := r.Min.Y; sy < r.Max.Y; sy += height {
			s := Sprite{X: sx - r.Min.X, Y: sy - r.Min.Y}

			for py := sy; py < sy+height && py < r.Max.Y; py++ {
				var row byte

				for bit := 0; bit < vm.SpriteWidth; bit++ {
					px := sx + bit
					if px < r.Max.X && lit(img.At(px, py)) {
						row |= 0x80 >> bit
					}
				}

				s.Rows = append(s.Rows, row)
			}

			out = append(out, s)
		}
	}

	return out
}

// lit returns true if c reads as a set pixel: opaque and brighter than mid grey.
func lit(c color.Color) bool {
	_, _, _, a := c.RGBA()
	if a < 0x8000 {
		return false
	}

	g := color.Gray16Model.Convert(c).(color.Gray16)
	return g.Y >= 0x8000
}

// pixelArt renders a binary row as pixels.
var pixelArt = strings.NewReplacer("0", ".", "1", "#")

// writeHex writes the sprites as a commented listing of hex bytes.
func writeHex(w io.Writer, sprites []Sprite) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "; %d sprites\n", len(sprites))

	for i, s := range sprites {
		fmt.Fprintf(&sb, "\n; sprite %d at %d,%d, %d rows\n", i, s.X, s.Y, len(s.Rows))

		for _, row := range s.Rows {
			fmt.Fprintf(&sb, "0x%02X ; %s\n", row, pixelArt.Replace(fmt.Sprintf("%08b", row)))
		}
	}

	_, err := io.WriteString(w, sb.String())
	return errors.Wrapf(err, "write listing")
}

// writeBinary writes the sprite rows back to back.
func writeBinary(w io.Writer, sprites []Sprite) error {
	for _, s := range sprites {
		if _, err := w.Write(s.Rows); err != nil {
			return errors.Wrapf(err, "write sprite at %d,%d", s.X, s.Y)
		}
	}
	return nil
}

// loadImage loads an image from the given file.
func loadImage(file string) (image.Image, error) {
	fd, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer fd.Close()

	img, _, err := image.Decode(fd)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", file)
	}

	if r := img.Bounds(); r.Empty() {
		return nil, errors.Errorf("%s: image is empty", file)
	}

	return img, nil
}

// makeWriter creates an output writer and a cleanup function for it.
func makeWriter(c *Config) (io.Writer, func()) {
	if c.Output == "" {
		return os.Stdout, func() {}
	}

	dir, _ := filepath.Split(c.Output)
	if dir != "" {
		if err := os.MkdirAll(dir, 0744); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	fd, err := os.Create(c.Output)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	return fd, func() { fd.Close() }
}
