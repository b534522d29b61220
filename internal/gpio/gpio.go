// Package gpio drives a single GPIO output line with hardware abstraction.
// The cdev implementation uses the Linux GPIO character device; the memmap
// implementation uses memory-mapped registers for old kernels without it.
// The fake implementation allows testing without hardware.
package gpio

import "log"

// Writer sets a GPIO output state.
type Writer interface {
	// Set drives the line high (true) or low (false).
	// Active-low inversion, if configured, is applied by the implementation.
	Set(on bool) error

	// Close reverts the line to a safe state and releases GPIO resources.
	Close() error
}

// Backend names accepted by New.
const (
	BackendCdev   = "cdev"   // Linux GPIO character device (kernel 4.8+)
	BackendMemmap = "memmap" // memory-mapped BCM283x registers
)

// Defaults (BCM numbering).
const (
	DefaultPin  = 17 // status LED
	DefaultChip = "gpiochip0"
)

// LoggingSink adapts a Writer to the controller's infallible sink contract.
// Write errors are logged and swallowed; the controller has no error channel
// and the next poll retries the line anyway.
type LoggingSink struct {
	W Writer
}

// Set drives the writer, logging any error.
func (s LoggingSink) Set(active bool) {
	if err := s.W.Set(active); err != nil {
		log.Printf("gpio write error: %v", err)
	}
}
