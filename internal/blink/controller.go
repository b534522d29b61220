package blink

import "math"

// Sink receives the LED phase on every update. Implementations must not
// block; the call is assumed to always succeed (writing a digital output or
// updating an in-memory flag).
type Sink interface {
	Set(active bool)
}

// Controller toggles a single binary output on a fixed on/off duty cycle.
// It never reads a clock itself: the caller passes the current time to
// Update as a wrapping uint32 millisecond counter (e.g. milliseconds since
// boot, which wraps after ~49.7 days). All state transitions happen inside
// Update; the sink is re-asserted on every call so its observed state always
// matches the controller's phase even under infrequent polling.
//
// Not safe for concurrent use — one controller drives one sink on one
// logical thread.
type Controller struct {
	sink       Sink
	onMs       uint32
	offMs      uint32
	lastToggle uint32
	on         bool
}

// New creates a controller bound to the given sink. The LED starts in the
// off phase with the toggle timer at zero. The sink is not touched until the
// first Update or Reset call. Zero durations are permitted: with both zero,
// every Update flips the phase.
func New(sink Sink, onMs, offMs uint32) *Controller {
	return &Controller{
		sink:  sink,
		onMs:  onMs,
		offMs: offMs,
	}
}

// Update advances the controller to the given time and drives the sink.
//
// At most one phase flip happens per call, even if several full periods have
// elapsed since the previous call. The controller catches up by exactly one
// phase per call; it does not replay skipped cycles. This is a deliberate
// policy for polled operation — do not "fix" it into a catch-up loop.
func (c *Controller) Update(nowMs uint32) {
	// Elapsed time since the last toggle, accounting for counter wraparound.
	var elapsed uint32
	if nowMs >= c.lastToggle {
		elapsed = nowMs - c.lastToggle
	} else {
		// Counter wrapped past its maximum.
		elapsed = (math.MaxUint32 - c.lastToggle) + nowMs + 1
	}

	target := c.offMs
	if c.on {
		target = c.onMs
	}

	if elapsed >= target {
		c.on = !c.on
		c.lastToggle = nowMs
	}

	// Always re-assert, even when no transition occurred.
	c.sink.Set(c.on)
}

// Reset forces the controller back to the initial off phase and immediately
// drives the sink low, without waiting for the next Update.
func (c *Controller) Reset() {
	c.on = false
	c.lastToggle = 0
	c.sink.Set(false)
}

// OnDuration returns the configured on phase length in milliseconds.
func (c *Controller) OnDuration() uint32 { return c.onMs }

// OffDuration returns the configured off phase length in milliseconds.
func (c *Controller) OffDuration() uint32 { return c.offMs }

// IsOn reports the current phase.
func (c *Controller) IsOn() bool { return c.on }

// LastToggleTime returns the Update timestamp at which the current phase
// began, or zero if no transition has happened yet.
func (c *Controller) LastToggleTime() uint32 { return c.lastToggle }
