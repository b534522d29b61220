//go:build linux

package gpio

import (
	"fmt"

	rpigpio "github.com/warthog618/gpio"
)

// MemmapWriter drives an output pin through memory-mapped BCM283x registers.
// Fallback for kernels too old to expose the GPIO character device.
type MemmapWriter struct {
	pin       *rpigpio.Pin
	activeLow bool
}

// NewMemmapWriter maps the GPIO registers and configures the pin as an
// output, initially low.
func NewMemmapWriter(pin int, activeLow bool) (*MemmapWriter, error) {
	if err := rpigpio.Open(); err != nil {
		return nil, fmt.Errorf("map gpio registers: %w", err)
	}

	p := rpigpio.NewPin(pin)
	p.Output()

	w := &MemmapWriter{pin: p, activeLow: activeLow}
	if err := w.Set(false); err != nil {
		rpigpio.Close()
		return nil, err
	}
	return w, nil
}

// Set drives the pin, applying active-low inversion.
func (w *MemmapWriter) Set(on bool) error {
	if on != w.activeLow {
		w.pin.High()
	} else {
		w.pin.Low()
	}
	return nil
}

// Close reverts the pin to input and unmaps the registers.
func (w *MemmapWriter) Close() error {
	w.pin.Input()
	if err := rpigpio.Close(); err != nil {
		return fmt.Errorf("unmap gpio registers: %w", err)
	}
	return nil
}
