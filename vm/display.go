package vm

// Display properties.
const (
	DisplayWidth  = 64 // Display width in pixels.
	DisplayHeight = 32 // Display height in pixels.
	SpriteWidth   = 8  // Sprite width in pixels; one byte per row.
)

// Pixel defines the state of a single display cell.
type Pixel byte

// Known pixel states. PixelOn is a full intensity byte so a framebuffer
// can be uploaded as a single channel texture as-is.
const (
	PixelOff Pixel = 0x00
	PixelOn  Pixel = 0xff
)

// Framebuffer holds the display contents in row-major order.
type Framebuffer [DisplayWidth * DisplayHeight]Pixel

// At returns the pixel at the given coordinates. Coordinates wrap around.
func (fb *Framebuffer) At(x, y int) Pixel {
	return fb[fbIndex(x, y)]
}

// Clear turns all pixels off.
func (fb *Framebuffer) Clear() {
	*fb = Framebuffer{}
}

// draw XORs the sprite rows onto the display with its top left corner at
// (x, y), wrapping around both edges. It returns true if any pixel was
// turned from on to off.
func (fb *Framebuffer) draw(x, y int, rows []byte) bool {
	var collision bool

	for row, bits := range rows {
		for col := 0; col < SpriteWidth; col++ {
			if bits&(0x80>>uint(col)) == 0 {
				continue
			}

			i := fbIndex(x+col, y+row)
			if fb[i] == PixelOn {
				fb[i] = PixelOff
				collision = true
			} else {
				fb[i] = PixelOn
			}
		}
	}

	return collision
}

func fbIndex(x, y int) int {
	x %= DisplayWidth
	if x < 0 {
		x += DisplayWidth
	}
	y %= DisplayHeight
	if y < 0 {
		y += DisplayHeight
	}
	return y*DisplayWidth + x
}
