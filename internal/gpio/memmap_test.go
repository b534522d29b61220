//go:build linux

package gpio

import (
	"testing"

	rpigpio "github.com/warthog618/gpio"
)

// BCM pin numbers flow through as plain ints. Pinning the constructor
// signature here catches an upstream change (or an accidental conversion on
// our side) at compile time, since exercising the writer needs real hardware.
var _ func(int) *rpigpio.Pin = rpigpio.NewPin

// All writers satisfy the Writer interface.
var (
	_ Writer = (*MemmapWriter)(nil)
	_ Writer = (*CdevWriter)(nil)
	_ Writer = (*FakeWriter)(nil)
)

func TestNewUnknownBackend(t *testing.T) {
	if _, err := New("bogus", DefaultChip, DefaultPin, false); err == nil {
		t.Error("expected error for unknown backend")
	}
}
