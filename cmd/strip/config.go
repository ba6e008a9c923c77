package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
)

// idleConfig is the strip's resting state before any producer connects.
type idleConfig struct {
	Effect     string `json:"effect"`
	Color      string `json:"color"` // "#RRGGBB"
	Brightness int    `json:"brightness"`
}

// Config mirrors the hardware + identity knobs a single strip needs.
// LoadConfig fills defaults for any field missing from config.json, the
// same forgiving partial-overlay behavior the teacher's own LoadConfig
// has for its smaller Config.
type Config struct {
	LedPin     int    `json:"ledPin"`
	LedCount   int    `json:"ledCount"`
	Brightness int    `json:"brightness"` // 0..255, global cap
	RelayURL   string `json:"relayUrl"`
	DeviceID   string `json:"deviceId"`
	Idle       idleConfig `json:"idle"`
}

func defaultConfig() Config {
	return Config{
		LedPin:     18,
		LedCount:   300,
		Brightness: 255,
		RelayURL:   "ws://127.0.0.1:8080/ws",
		Idle:       idleConfig{Effect: "static", Color: "#000033", Brightness: 64},
	}
}

// LoadConfig reads config.json in the working directory, if present, and
// overlays any set fields onto the hardware defaults. A missing file is
// not an error: the strip runs on defaults and logs why.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	f, err := os.Open(path)
	if err != nil {
		log.Println("config.json not found; using hardware defaults.")
		return cfg, nil
	}
	defer f.Close()

	var tmp Config
	if err := json.NewDecoder(f).Decode(&tmp); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if tmp.LedPin != 0 {
		cfg.LedPin = tmp.LedPin
	}
	if tmp.LedCount != 0 {
		cfg.LedCount = tmp.LedCount
	}
	if tmp.Brightness != 0 {
		cfg.Brightness = tmp.Brightness
	}
	if tmp.RelayURL != "" {
		cfg.RelayURL = tmp.RelayURL
	}
	cfg.DeviceID = strings.TrimSpace(tmp.DeviceID)
	if tmp.Idle.Effect != "" {
		cfg.Idle = tmp.Idle
	}
	return cfg, nil
}

// loadIdent reads the strip's device identity, used to HMAC-sign the
// relay websocket handshake the same way the teacher's client signs its.
type ident struct {
	DeviceID     string `json:"deviceId"`
	DeviceSecret string `json:"deviceSecret"`
}

func loadIdent(path string) (ident, error) {
	var id ident
	b, err := os.ReadFile(path)
	if err != nil {
		return id, err
	}
	if err := json.Unmarshal(b, &id); err != nil {
		return id, err
	}
	if strings.TrimSpace(id.DeviceID) == "" || strings.TrimSpace(id.DeviceSecret) == "" {
		return id, fmt.Errorf("%s missing deviceId or deviceSecret", path)
	}
	return id, nil
}
