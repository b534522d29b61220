//go:build linux

package gpio

import "fmt"

// New opens a Writer for the named backend.
func New(backend, chip string, pin int, activeLow bool) (Writer, error) {
	switch backend {
	case BackendCdev:
		return NewCdevWriter(chip, pin, activeLow)
	case BackendMemmap:
		return NewMemmapWriter(pin, activeLow)
	default:
		return nil, fmt.Errorf("unknown gpio backend %q (want %q or %q)", backend, BackendCdev, BackendMemmap)
	}
}
