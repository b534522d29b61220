// Command led-blinker drives an LED on a fixed on/off duty cycle and
// publishes phase transitions to MQTT.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/led-blinker/internal/blink"
	"github.com/sweeney/led-blinker/internal/config"
	"github.com/sweeney/led-blinker/internal/gpio"
	"github.com/sweeney/led-blinker/internal/mqtt"
	"github.com/sweeney/led-blinker/internal/status"
	"github.com/sweeney/led-blinker/internal/web"
)

func main() {
	defaults := config.Default()

	configPath := flag.String("config", "", "YAML config file (explicit flags override file values)")
	on := flag.Duration("on", time.Duration(defaults.LED.OnMs)*time.Millisecond, "LED on duration")
	off := flag.Duration("off", time.Duration(defaults.LED.OffMs)*time.Millisecond, "LED off duration")
	poll := flag.Duration("poll", time.Duration(defaults.PollMs)*time.Millisecond, "update loop interval")
	pin := flag.Int("pin", defaults.LED.Pin, "BCM pin number for the LED")
	chip := flag.String("chip", defaults.LED.Chip, "GPIO character device chip (cdev backend)")
	backend := flag.String("backend", defaults.LED.Backend, "GPIO backend: cdev or memmap")
	activeLow := flag.Bool("active-low", defaults.LED.ActiveLow, "LED is wired active-low")
	broker := flag.String("broker", defaults.MQTT.Broker, "MQTT broker address")
	heartbeat := flag.Duration("heartbeat", time.Duration(defaults.HeartbeatMs)*time.Millisecond, "heartbeat interval (0 to disable)")
	httpAddr := flag.String("http", defaults.HTTP.Addr, "HTTP status address (empty to disable)")
	flash := flag.Bool("flash", false, "pulse the LED once to verify wiring, then exit")

	flag.Parse()

	cfg := defaults
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("fatal: %v", err)
		}
		cfg = loaded
	}

	// Explicitly set flags win over file values.
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["on"] {
		cfg.LED.OnMs = uint32(on.Milliseconds())
	}
	if set["off"] {
		cfg.LED.OffMs = uint32(off.Milliseconds())
	}
	if set["poll"] {
		cfg.PollMs = poll.Milliseconds()
	}
	if set["pin"] {
		cfg.LED.Pin = *pin
	}
	if set["chip"] {
		cfg.LED.Chip = *chip
	}
	if set["backend"] {
		cfg.LED.Backend = *backend
	}
	if set["active-low"] {
		cfg.LED.ActiveLow = *activeLow
	}
	if set["broker"] {
		cfg.MQTT.Broker = *broker
	}
	if set["heartbeat"] {
		cfg.HeartbeatMs = heartbeat.Milliseconds()
	}
	if set["http"] {
		cfg.HTTP.Addr = *httpAddr
	}

	if err := run(cfg, *flash); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(cfg config.Config, flash bool) error {
	// Initialize GPIO
	writer, err := gpio.New(cfg.LED.Backend, cfg.LED.Chip, cfg.LED.Pin, cfg.LED.ActiveLow)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer writer.Close()

	// Wiring check mode
	if flash {
		return flashLED(writer)
	}

	controller := blink.New(gpio.LoggingSink{W: writer}, cfg.LED.OnMs, cfg.LED.OffMs)

	// Initialize MQTT
	publisher, err := mqtt.NewRealPublisher(cfg.MQTT.Broker)
	if err != nil {
		return fmt.Errorf("init mqtt: %w", err)
	}
	defer publisher.Close()

	// Initialize status tracker (before STARTUP so snapshot is available)
	startTime := time.Now()
	tracker := status.NewTracker(startTime, status.Config{
		OnMs:        cfg.LED.OnMs,
		OffMs:       cfg.LED.OffMs,
		PollMs:      cfg.PollMs,
		HeartbeatMs: cfg.HeartbeatMs,
		Pin:         cfg.LED.Pin,
		Backend:     cfg.LED.Backend,
		Broker:      cfg.MQTT.Broker,
		HTTPAddr:    cfg.HTTP.Addr,
	})
	if net := readNetworkInfo(); net != nil {
		tracker.SetNetwork(net)
	}

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	// Start HTTP status server
	if cfg.HTTP.Addr != "" {
		srv := web.New(cfg.HTTP.Addr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.HTTP.Addr)
	}

	log.Printf("started: on=%dms off=%dms poll=%dms pin=%d backend=%s broker=%s",
		cfg.LED.OnMs, cfg.LED.OffMs, cfg.PollMs, cfg.LED.Pin, cfg.LED.Backend, cfg.MQTT.Broker)

	ticker := time.NewTicker(time.Duration(cfg.PollMs) * time.Millisecond)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	heartbeat := time.Duration(cfg.HeartbeatMs) * time.Millisecond
	return runLoop(controller, publisher, publisher, tracker, heartbeat, startTime, time.Now, ticker.C, sigCh)
}

func runLoop(controller *blink.Controller, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, heartbeat time.Duration, startTime time.Time, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	var counts blink.ToggleCounts
	lastHeartbeat := startTime

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				snap := tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			// Leave the LED dark on exit.
			controller.Reset()
			return nil

		case <-tick:
			t := now()
			wasOn := controller.IsOn()
			controller.Update(blink.Millis(startTime, t))

			if isOn := controller.IsOn(); isOn != wasOn {
				if isOn {
					counts.On++
				} else {
					counts.Off++
				}
				event := blink.Event{
					Timestamp: t,
					Type:      blink.EventFor(isOn),
					State:     blink.StateFor(isOn),
					MillisAt:  controller.LastToggleTime(),
				}
				log.Printf("event: %s (at %dms)", event.Type, event.MillisAt)
				if err := publisher.Publish(event); err != nil {
					log.Printf("publish error: %v", err)
					// Don't crash on publish failure
				}
			}

			// Update status tracker for HTTP consumers
			if tracker != nil {
				tracker.Update(blink.StateFor(controller.IsOn()), controller.LastToggleTime(), counts)
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}

			// Check for heartbeat
			if heartbeat > 0 && t.Sub(lastHeartbeat) >= heartbeat {
				lastHeartbeat = t
				log.Printf("heartbeat: uptime=%v on=%d off=%d", t.Sub(startTime), counts.On, counts.Off)

				hbEvent := mqtt.SystemEvent{
					Timestamp: t,
					Event:     "HEARTBEAT",
				}
				if tracker != nil {
					// Refresh network info for heartbeat
					if net := readNetworkInfo(); net != nil {
						tracker.SetNetwork(net)
					}
					snap := tracker.Snapshot()
					hbEvent.RawPayload = status.FormatStatusEvent(snap, "HEARTBEAT", "")
				}
				if err := publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}
		}
	}
}

// flashLED pulses the LED once so the wiring can be checked by eye.
func flashLED(writer gpio.Writer) error {
	if err := writer.Set(true); err != nil {
		return fmt.Errorf("flash on: %w", err)
	}
	fmt.Println("LED: ON")
	time.Sleep(500 * time.Millisecond)
	if err := writer.Set(false); err != nil {
		return fmt.Errorf("flash off: %w", err)
	}
	fmt.Println("LED: OFF")
	return nil
}

// pi-helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

func readNetworkInfo() *status.NetworkInfo {
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}
