// Package status provides a thread-safe status tracker for the led-blinker daemon.
// It is read by HTTP handlers and rendered into MQTT lifecycle event payloads.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/led-blinker/internal/blink"
)

// NetworkInfo contains network state reported by pi-helper.
type NetworkInfo struct {
	Type       string
	IP         string
	Status     string
	Gateway    string
	WifiStatus string
	SSID       string
}

// Config contains daemon configuration for display.
type Config struct {
	OnMs        uint32
	OffMs       uint32
	PollMs      int64
	HeartbeatMs int64
	Pin         int
	Backend     string
	Broker      string
	HTTPAddr    string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	LED           blink.State
	LastToggleMs  uint32
	Counts        blink.ToggleCounts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Network       *NetworkInfo
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			LED:       blink.StateOff,
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets the LED phase, last toggle time, and toggle counts.
// Called from runLoop on every tick.
func (t *Tracker) Update(led blink.State, lastToggleMs uint32, counts blink.ToggleCounts) {
	t.mu.Lock()
	t.snap.LED = led
	t.snap.LastToggleMs = lastToggleMs
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetNetwork sets the network info.
func (t *Tracker) SetNetwork(info *NetworkInfo) {
	t.mu.Lock()
	t.snap.Network = info
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
