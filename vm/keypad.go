package vm

// KeyCount is the number of keys on the keypad.
const KeyCount = 16

// Keypad holds the pressed state for keys 0-F.
type Keypad [KeyCount]bool

// First returns the lowest pressed key.
// Returns false if no key is pressed.
func (k *Keypad) First() (int, bool) {
	for i, pressed := range k {
		if pressed {
			return i, true
		}
	}
	return 0, false
}

// Pressed returns true if the given key is held down.
// Keys outside the keypad are never pressed.
func (k *Keypad) Pressed(key int) bool {
	return key >= 0 && key < KeyCount && k[key]
}
