package web

import (
	"encoding/json"
	"time"

	"github.com/sweeney/led-blinker/internal/status"
)

// StatusJSON is the JSON representation of the daemon status.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	LED           string       `json:"led"`
	LastToggleMs  uint32       `json:"last_toggle_ms"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	StartTime     string       `json:"start_time"`
	Timestamp     string       `json:"timestamp"`
	MQTT          MQTTStatus   `json:"mqtt"`
	Counts        CountsJSON   `json:"toggle_counts"`
	Network       *NetworkJSON `json:"network,omitempty"`
	Config        ConfigJSON   `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of toggle counts.
type CountsJSON struct {
	On  int `json:"on"`
	Off int `json:"off"`
}

// NetworkJSON is the JSON representation of network info.
type NetworkJSON struct {
	Type       string `json:"type"`
	IP         string `json:"ip"`
	Status     string `json:"status"`
	Gateway    string `json:"gateway"`
	WifiStatus string `json:"wifi_status"`
	SSID       string `json:"ssid"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	OnMs        uint32 `json:"on_ms"`
	OffMs       uint32 `json:"off_ms"`
	PollMs      int64  `json:"poll_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	Pin         int    `json:"pin"`
	Backend     string `json:"backend"`
	Broker      string `json:"broker"`
	HTTPAddr    string `json:"http_addr"`
}

func formatJSON(snap status.Snapshot) []byte {
	sj := StatusJSON{
		Status: StatusInner{
			LED:           string(snap.LED),
			LastToggleMs:  snap.LastToggleMs,
			UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
			StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
			Timestamp:     snap.Now.UTC().Format(time.RFC3339),
			MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
			Counts: CountsJSON{
				On:  snap.Counts.On,
				Off: snap.Counts.Off,
			},
			Config: ConfigJSON{
				OnMs:        snap.Config.OnMs,
				OffMs:       snap.Config.OffMs,
				PollMs:      snap.Config.PollMs,
				HeartbeatMs: snap.Config.HeartbeatMs,
				Pin:         snap.Config.Pin,
				Backend:     snap.Config.Backend,
				Broker:      snap.Config.Broker,
				HTTPAddr:    snap.Config.HTTPAddr,
			},
		},
	}

	if snap.Network != nil {
		sj.Status.Network = &NetworkJSON{
			Type:       snap.Network.Type,
			IP:         snap.Network.IP,
			Status:     snap.Network.Status,
			Gateway:    snap.Network.Gateway,
			WifiStatus: snap.Network.WifiStatus,
			SSID:       snap.Network.SSID,
		}
	}

	data, _ := json.MarshalIndent(sj, "", "  ")
	return data
}
