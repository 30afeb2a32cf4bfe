// Package keypad implements the 16-key hexadecimal keypad on top of the
// host keyboard, with an optional gamepad.
//
// Keypad layout and the keyboard keys it maps from:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D      Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
package keypad

import (
	"log"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/vm"
)

// Layout maps keyboard keys to keypad keys.
var Layout = map[glfw.Key]int{
	glfw.Key1: 0x1, glfw.Key2: 0x2, glfw.Key3: 0x3, glfw.Key4: 0xc,
	glfw.KeyQ: 0x4, glfw.KeyW: 0x5, glfw.KeyE: 0x6, glfw.KeyR: 0xd,
	glfw.KeyA: 0x7, glfw.KeyS: 0x8, glfw.KeyD: 0x9, glfw.KeyF: 0xe,
	glfw.KeyZ: 0xa, glfw.KeyX: 0x0, glfw.KeyC: 0xb, glfw.KeyV: 0xf,
}

// GamepadLayout maps gamepad buttons to keypad keys. Most games steer with
// 2/4/6/8 and act with 5.
var GamepadLayout = map[glfw.GamepadButton]int{
	glfw.ButtonDpadUp:    0x2,
	glfw.ButtonDpadLeft:  0x4,
	glfw.ButtonDpadRight: 0x6,
	glfw.ButtonDpadDown:  0x8,
	glfw.ButtonA:         0x5,
	glfw.ButtonB:         0x0,
	glfw.ButtonX:         0xa,
	glfw.ButtonY:         0xb,
}

// KeyReader reports the state of a keyboard key.
// *glfw.Window implements it.
type KeyReader interface {
	GetKey(key glfw.Key) glfw.Action
}

// Device defines all internal doodads for the keypad.
type Device struct {
	keyboard KeyReader
	joy      glfw.Joystick
	state    vm.Keypad
	gamepad  bool
}

var _ devices.Device = &Device{}

// New creates a new device reading from the given keyboard.
func New(keyboard KeyReader) *Device {
	return &Device{keyboard: keyboard}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Builtin, 0x0003)
}

// Startup initializes device resources.
// It detects any connected gamepad.
func (d *Device) Startup() error {
	glfw.SetJoystickCallback(d.configure)

	for joy := glfw.Joystick1; joy <= glfw.JoystickLast; joy++ {
		if joy.Present() && joy.IsGamepad() {
			d.configure(joy, glfw.Connected)
			break
		}
	}

	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	glfw.SetJoystickCallback(nil)
	d.gamepad = false
	return nil
}

// Sync hands the current key state to the machine.
func (d *Device) Sync(m devices.Machine) {
	d.Update()
	m.SetKeypad(d.state)
}

// Update polls keyboard and gamepad state.
func (d *Device) Update() {
	var state vm.Keypad

	for key, n := range Layout {
		if d.keyboard.GetKey(key) != glfw.Release {
			state[n] = true
		}
	}

	if d.gamepad {
		if gs := d.joy.GetGamepadState(); gs != nil {
			for btn, n := range GamepadLayout {
				if gs.Buttons[btn] == glfw.Press {
					state[n] = true
				}
			}
		}
	}

	d.state = state
}

// State returns the most recently polled key state.
func (d *Device) State() vm.Keypad {
	return d.state
}

// configure is called whenever a joystick is connected or disconnected from the system.
func (d *Device) configure(joy glfw.Joystick, event glfw.PeripheralEvent) {
	d.gamepad = event == glfw.Connected && joy.IsGamepad()
	d.joy = joy

	if d.gamepad {
		log.Println(d.ID(), "gamepad connected")
	} else {
		log.Println(d.ID(), "gamepad disconnected")
	}
}
