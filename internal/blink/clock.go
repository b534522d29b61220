package blink

import "time"

// Millis converts wall-clock time to the wrapping uint32 millisecond counter
// the controller expects. The uint32 truncation supplies the wraparound: the
// counter rolls over to zero after ~49.7 days of uptime, which Update's
// elapsed-time arithmetic handles explicitly.
func Millis(start, now time.Time) uint32 {
	return uint32(now.Sub(start).Milliseconds())
}
