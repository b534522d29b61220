// Package blink contains the pure duty-cycle timing logic for a single LED.
// This package has NO external dependencies (no GPIO, MQTT, OS, or time.Sleep).
// Time is always injected by the caller as a millisecond counter.
package blink

import "time"

// State represents the logical state of the LED.
type State string

const (
	StateOn  State = "ON"
	StateOff State = "OFF"
)

// EventType represents a phase transition event.
type EventType string

const (
	EventLEDOn  EventType = "LED_ON"
	EventLEDOff EventType = "LED_OFF"
)

// Event represents a phase transition to be published.
type Event struct {
	Timestamp time.Time
	Type      EventType
	State     State
	// MillisAt is the controller timestamp at which the transition fired.
	MillisAt uint32
}

// ToggleCounts tracks the number of transitions in each direction since startup.
type ToggleCounts struct {
	On  int
	Off int
}

// StateFor converts a boolean phase to its State label.
func StateFor(on bool) State {
	if on {
		return StateOn
	}
	return StateOff
}

// EventFor returns the event type for a transition into the given phase.
func EventFor(on bool) EventType {
	if on {
		return EventLEDOn
	}
	return EventLEDOff
}
