// Package config loads daemon configuration from an optional YAML file.
// Flags parsed in main take precedence over file values.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/sweeney/led-blinker/internal/gpio"
)

// Config is the main configuration structure for led-blinker.
type Config struct {
	// LED timing and wiring
	LED LEDConfig `yaml:"led"`

	// MQTT connection settings
	MQTT MQTTConfig `yaml:"mqtt"`

	// HTTP status server settings
	HTTP HTTPConfig `yaml:"http"`

	// PollMs is the update loop interval in milliseconds.
	PollMs int64 `yaml:"poll_ms"`

	// HeartbeatMs is the heartbeat interval in milliseconds (0 disables).
	HeartbeatMs int64 `yaml:"heartbeat_ms"`
}

// LEDConfig holds duty cycle and pin wiring settings.
type LEDConfig struct {
	OnMs      uint32 `yaml:"on_ms"`
	OffMs     uint32 `yaml:"off_ms"`
	Pin       int    `yaml:"pin"`
	Chip      string `yaml:"chip"`
	Backend   string `yaml:"backend"`
	ActiveLow bool   `yaml:"active_low"`
}

// MQTTConfig holds MQTT broker connection settings.
type MQTTConfig struct {
	Broker string `yaml:"broker"`
}

// HTTPConfig holds status server settings.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the configuration used when no file and no flags are given.
func Default() Config {
	return Config{
		LED: LEDConfig{
			OnMs:    1000,
			OffMs:   500,
			Pin:     gpio.DefaultPin,
			Chip:    gpio.DefaultChip,
			Backend: gpio.BackendCdev,
		},
		MQTT:        MQTTConfig{Broker: "tcp://192.168.1.200:1883"},
		HTTP:        HTTPConfig{Addr: ":80"},
		PollMs:      50,
		HeartbeatMs: (15 * 60) * 1000,
	}
}

// Load reads the YAML file at path over the defaults. Fields absent from the
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
