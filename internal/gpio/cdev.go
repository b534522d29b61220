//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// CdevWriter drives an output line through the Linux GPIO character device.
type CdevWriter struct {
	chip      *gpiocdev.Chip
	line      *gpiocdev.Line
	activeLow bool
}

// NewCdevWriter requests the given pin as an output, initially low.
func NewCdevWriter(chipName string, pin int, activeLow bool) (*CdevWriter, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	initial := 0
	if activeLow {
		initial = 1
	}
	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(initial))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request LED pin %d: %w", pin, err)
	}

	return &CdevWriter{
		chip:      chip,
		line:      line,
		activeLow: activeLow,
	}, nil
}

// Set drives the line. Inversion for active-low wiring happens here so the
// caller only ever thinks in logical on/off.
func (w *CdevWriter) Set(on bool) error {
	v := 0
	if on != w.activeLow {
		v = 1
	}
	if err := w.line.SetValue(v); err != nil {
		return fmt.Errorf("set LED pin: %w", err)
	}
	return nil
}

// Close reverts the pin to input (matching Pi boot defaults) before closing,
// so the LED ends dark and the pin is in a clean state for reboot.
func (w *CdevWriter) Close() error {
	var errs []error

	if w.line != nil {
		if err := w.line.Reconfigure(gpiocdev.AsInput); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure LED pin: %w", err))
		}
		if err := w.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close LED pin: %w", err))
		}
	}
	if w.chip != nil {
		if err := w.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
