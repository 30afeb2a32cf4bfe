// Package screen implements the monochrome display as an OpenGL textured quad.
package screen

import (
	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/vm"
)

// Default colors, as 0xRRGGBB.
const (
	DefaultForeground = 0xffffff
	DefaultBackground = 0x000000
)

// Device defines all internal doodads for the display.
type Device struct {
	frame       vm.Framebuffer // Last frame taken from the machine.
	foreground  [4]float32     // Color of lit pixels.
	background  [4]float32     // Color of unlit pixels.
	shader      uint32
	vao         uint32
	vbo         uint32
	texture     uint32
	colorsDirty bool
	frameDirty  bool
	initialized bool
}

var _ devices.Device = &Device{}

// New creates a new device with the given colors.
func New(foreground, background int) *Device {
	var d Device
	d.SetColors(foreground, background)
	return &d
}

// ID returns the device identifier.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Builtin, 0x0002)
}

// SetColors sets the colors for lit and unlit pixels, as 0xRRGGBB.
func (d *Device) SetColors(foreground, background int) {
	rgb(foreground, d.foreground[:])
	rgb(background, d.background[:])
	d.colorsDirty = true
}

// Startup initializes device resources.
// It requires a current OpenGL context.
func (d *Device) Startup() error {
	var err error

	d.shader, err = compileProgram(vertex, fragment)
	if err != nil {
		return errors.Wrapf(err, "failed to compile shaders")
	}

	gl.UseProgram(d.shader)

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	vertAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertPos")))
	texCoordAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertTexCoord")))

	gl.EnableVertexAttribArray(vertAttrib)
	gl.VertexAttribPointer(vertAttrib, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(0))

	gl.EnableVertexAttribArray(texCoordAttrib)
	gl.VertexAttribPointer(texCoordAttrib, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))

	d.texture = makeTexture()

	d.colorsDirty = true
	d.frameDirty = true
	d.initialized = true
	d.upload()
	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	if !d.initialized {
		return nil
	}

	d.initialized = false
	gl.DeleteTextures(1, &d.texture)
	gl.DeleteBuffers(1, &d.vbo)
	gl.DeleteVertexArrays(1, &d.vao)
	gl.DeleteProgram(d.shader)
	return nil
}

// Sync takes the current frame from the machine and uploads it if it changed.
func (d *Device) Sync(m devices.Machine) {
	frame := m.Display()
	if frame != d.frame {
		d.frame = frame
		d.frameDirty = true
	}

	d.upload()
}

// Draw renders the display contents.
func (d *Device) Draw() {
	if !d.initialized {
		return
	}

	gl.UseProgram(d.shader)
	gl.BindVertexArray(d.vao)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.texture)

	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

// upload pushes dirty state to the GPU.
func (d *Device) upload() {
	if !d.initialized {
		return
	}

	if d.colorsDirty {
		gl.UseProgram(d.shader)
		gl.Uniform4fv(gl.GetUniformLocation(d.shader, glStr("foreground")), 1, &d.foreground[0])
		gl.Uniform4fv(gl.GetUniformLocation(d.shader, glStr("background")), 1, &d.background[0])
		d.colorsDirty = false
	}

	if d.frameDirty {
		uploadTexture(d.texture, gl.RED, vm.DisplayWidth, vm.DisplayHeight, gl.RED, gl.UNSIGNED_BYTE, pixels(&d.frame))
		d.frameDirty = false
	}
}

// pixels returns the frame as raw bytes, one per pixel.
func pixels(fb *vm.Framebuffer) []byte {
	p := make([]byte, len(fb))
	for i, v := range fb {
		p[i] = byte(v)
	}
	return p
}

// rgb sets p to the RGBA representation of the 0xRRGGBB color in n.
func rgb(n int, p []float32) {
	p[0] = float32((n>>16)&0xff) / 255
	p[1] = float32((n>>8)&0xff) / 255
	p[2] = float32(n&0xff) / 255
	p[3] = 1
}

var quadVertices = []float32{
	//  X, Y, Z, U, V
	-1.0, -1.0, 0.0, 0.0, 1.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	1.0, 1.0, 0.0, 1.0, 0.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
}
