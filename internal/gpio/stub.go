//go:build !linux

package gpio

import "errors"

// New returns an error on non-Linux platforms.
func New(backend, chip string, pin int, activeLow bool) (Writer, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}
