package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.LED.OnMs != 1000 {
		t.Errorf("OnMs: got %d, want 1000", cfg.LED.OnMs)
	}
	if cfg.LED.OffMs != 500 {
		t.Errorf("OffMs: got %d, want 500", cfg.LED.OffMs)
	}
	if cfg.LED.Pin != 17 {
		t.Errorf("Pin: got %d, want 17", cfg.LED.Pin)
	}
	if cfg.LED.Backend != "cdev" {
		t.Errorf("Backend: got %q, want cdev", cfg.LED.Backend)
	}
	if cfg.PollMs != 50 {
		t.Errorf("PollMs: got %d, want 50", cfg.PollMs)
	}
	if cfg.HeartbeatMs != 900000 {
		t.Errorf("HeartbeatMs: got %d, want 900000", cfg.HeartbeatMs)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "led-blinker.yaml")
	data := `
led:
  on_ms: 3000
  off_ms: 200
  pin: 21
  backend: memmap
  active_low: true
mqtt:
  broker: tcp://10.0.0.5:1883
poll_ms: 100
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.LED.OnMs != 3000 {
		t.Errorf("OnMs: got %d, want 3000", cfg.LED.OnMs)
	}
	if cfg.LED.OffMs != 200 {
		t.Errorf("OffMs: got %d, want 200", cfg.LED.OffMs)
	}
	if cfg.LED.Pin != 21 {
		t.Errorf("Pin: got %d, want 21", cfg.LED.Pin)
	}
	if cfg.LED.Backend != "memmap" {
		t.Errorf("Backend: got %q, want memmap", cfg.LED.Backend)
	}
	if !cfg.LED.ActiveLow {
		t.Error("ActiveLow: got false, want true")
	}
	if cfg.MQTT.Broker != "tcp://10.0.0.5:1883" {
		t.Errorf("Broker: got %q", cfg.MQTT.Broker)
	}
	if cfg.PollMs != 100 {
		t.Errorf("PollMs: got %d, want 100", cfg.PollMs)
	}

	// Fields absent from the file keep defaults.
	if cfg.HTTP.Addr != ":80" {
		t.Errorf("HTTP.Addr: got %q, want :80", cfg.HTTP.Addr)
	}
	if cfg.HeartbeatMs != 900000 {
		t.Errorf("HeartbeatMs: got %d, want default 900000", cfg.HeartbeatMs)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("led: [not a map"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
