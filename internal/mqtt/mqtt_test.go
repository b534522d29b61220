package mqtt

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sweeney/led-blinker/internal/blink"
)

func TestFormatPayload(t *testing.T) {
	event := blink.Event{
		Timestamp: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		Type:      blink.EventLEDOn,
		State:     blink.StateOn,
		MillisAt:  500,
	}

	data, err := FormatPayload(event)
	if err != nil {
		t.Fatalf("FormatPayload: %v", err)
	}

	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if p.LED.Timestamp != "2026-01-01T12:00:00Z" {
		t.Errorf("timestamp: got %q", p.LED.Timestamp)
	}
	if p.LED.Event != "LED_ON" {
		t.Errorf("event: got %q, want LED_ON", p.LED.Event)
	}
	if p.LED.State != "ON" {
		t.Errorf("state: got %q, want ON", p.LED.State)
	}
	if p.LED.MillisAt != 500 {
		t.Errorf("millis_at: got %d, want 500", p.LED.MillisAt)
	}
}

func TestFormatSystemPayload(t *testing.T) {
	event := SystemEvent{
		Timestamp: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		Event:     "SHUTDOWN",
		Reason:    "SIGTERM",
	}

	data, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("FormatSystemPayload: %v", err)
	}

	var p SystemPayload
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if p.System.Event != "SHUTDOWN" {
		t.Errorf("event: got %q, want SHUTDOWN", p.System.Event)
	}
	if p.System.Reason != "SIGTERM" {
		t.Errorf("reason: got %q, want SIGTERM", p.System.Reason)
	}
	if p.System.Timestamp != "2026-01-01T12:00:00Z" {
		t.Errorf("timestamp: got %q", p.System.Timestamp)
	}
}

func TestFormatSystemPayloadOmitsEmptyReason(t *testing.T) {
	event := SystemEvent{
		Timestamp: time.Now(),
		Event:     "HEARTBEAT",
	}

	data, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("FormatSystemPayload: %v", err)
	}

	var raw map[string]map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := raw["system"]["reason"]; ok {
		t.Error("empty reason should be omitted from JSON")
	}
}

func TestFormatSystemPayloadRawPassthrough(t *testing.T) {
	raw := []byte(`{"system":{"event":"STARTUP","custom":true}}`)
	event := SystemEvent{RawPayload: raw}

	data, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("FormatSystemPayload: %v", err)
	}
	if string(data) != string(raw) {
		t.Errorf("raw payload not passed through: got %s", data)
	}
}

func TestFakePublisherRecordsEvents(t *testing.T) {
	f := NewFakePublisher()

	event := blink.Event{
		Timestamp: time.Now(),
		Type:      blink.EventLEDOff,
		State:     blink.StateOff,
		MillisAt:  1500,
	}
	if err := f.Publish(event); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if len(f.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(f.Events))
	}
	if f.Events[0].Type != blink.EventLEDOff {
		t.Errorf("event type: got %s", f.Events[0].Type)
	}
	if len(f.Payloads) != 1 {
		t.Errorf("expected 1 payload, got %d", len(f.Payloads))
	}
}

func TestFakePublisherErrors(t *testing.T) {
	f := NewFakePublisher()
	f.PublishError = errors.New("boom")

	if err := f.Publish(blink.Event{}); err == nil {
		t.Error("expected publish error")
	}
	if len(f.Events) != 0 {
		t.Error("failed publish must not record")
	}

	f.Reset()
	if f.PublishError != nil {
		t.Error("Reset should clear PublishError")
	}
}

func TestFakePublisherSystemEvents(t *testing.T) {
	f := NewFakePublisher()

	if err := f.PublishSystem(SystemEvent{Event: "STARTUP", Retained: true}); err != nil {
		t.Fatalf("PublishSystem: %v", err)
	}
	if len(f.SystemEvents) != 1 {
		t.Fatalf("expected 1 system event, got %d", len(f.SystemEvents))
	}
	if f.SystemEvents[0].Event != "STARTUP" {
		t.Errorf("event: got %q", f.SystemEvents[0].Event)
	}
	if !f.SystemEvents[0].Retained {
		t.Error("retained flag lost")
	}
}
