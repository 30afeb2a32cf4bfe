// Package devices defines the host peripherals which connect a machine to
// the outside world: screen, keypad and speaker.
package devices

import (
	"log"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/vm"
)

// Machine is the part of a running machine a peripheral can see.
// *vm.Machine implements it.
type Machine interface {
	// Display returns a copy of the display contents.
	Display() vm.Framebuffer

	// IsPlayingSound returns true while the sound timer is running.
	IsPlayingSound() bool

	// SetKeypad replaces the keypad state.
	SetKeypad(vm.Keypad)
}

var _ Machine = &vm.Machine{}

// Device represents a host peripheral.
type Device interface {
	// ID yields the manufacturer and serial number for the device.
	ID() ID

	// Startup initializes internal resources.
	Startup() error

	// Shutdown cleans up internal resources.
	Shutdown() error

	// Sync exchanges state with the machine. It is called once per host
	// frame, on the thread which owns the machine.
	Sync(Machine)
}

// Map contains a list of registered peripherals.
type Map []Device

// Connect adds the given device to the device map.
// Returns false if the device type is already present in the set.
func (dm *Map) Connect(dev Device) bool {
	if (*dm).Find(dev.ID()) > -1 {
		return false
	}

	*dm = append(*dm, dev)
	return true
}

// Sync synchronizes every device with m, in connection order.
func (dm Map) Sync(m Machine) {
	for _, dev := range dm {
		dev.Sync(m)
	}
}

// Startup initializes internal resources.
func (dm Map) Startup() error {
	var errorset ErrorSet

	for _, dev := range dm {
		log.Println(dev.ID(), "startup")
		if err := dev.Startup(); err != nil {
			errorset.Append(errors.Wrapf(err, "%s", dev.ID()))
		}
	}

	return errorset.Err()
}

// Shutdown cleans up internal resources, in reverse connection order.
func (dm Map) Shutdown() error {
	var errorset ErrorSet

	for i := len(dm) - 1; i >= 0; i-- {
		dev := dm[i]
		log.Println(dev.ID(), "shutdown")
		if err := dev.Shutdown(); err != nil {
			errorset.Append(errors.Wrapf(err, "%s", dev.ID()))
		}
	}

	return errorset.Err()
}

// Find returns the index for the device with the given id.
// Returns -1 if it can't be found.
func (dm Map) Find(id ID) int {
	for i, dev := range dm {
		if dev.ID() == id {
			return i
		}
	}
	return -1
}
