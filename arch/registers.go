package arch

import "fmt"

// Register file properties.
const (
	RegisterCount = 16  // Number of general purpose registers.
	FlagRegister  = 0xf // VF doubles as carry, borrow, shift and collision flag.
)

// RegisterName returns the name associated with the given register index.
// Returns "" if the index is not recognized.
func RegisterName(n int) string {
	if n < 0 || n >= RegisterCount {
		return ""
	}
	return fmt.Sprintf("V%X", n)
}
