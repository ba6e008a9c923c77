package main

import (
	"encoding/json"
	"errors"
	"os"

	"ledengine/pkg/wire"
)

// Prefs is a device's persisted idle state plus a set of named event
// triggers, each a full wire.Message. The relay stores and serves these
// over HTTP; it does not send them down a device's connection itself.
type Prefs struct {
	Idle   wire.Message            `json:"idle"`
	Events map[string]wire.Message `json:"events"`
}

func defaultPrefs() Prefs {
	return Prefs{
		Idle: wire.Message{Effect: "velvet", ColorHex: "#0000ff"},
		Events: map[string]wire.Message{
			"deal_won":        {Effect: "flow", Flow: "comet", ColorHex: "#00ff00"},
			"account_created": {Effect: "rainbow"},
			"celebrate":       {Effect: "flow", Flow: "aurora", ColorHex: "#ff7f00"},
		},
	}
}

func readPrefs(dataDir, id string) (Prefs, error) {
	var p Prefs
	b, err := os.ReadFile(prefsPath(dataDir, id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultPrefs(), nil
		}
		return p, err
	}
	if err := json.Unmarshal(b, &p); err != nil {
		return p, err
	}
	return p, nil
}

func writePrefs(dataDir, id string, p Prefs) error {
	path := prefsPath(dataDir, id)
	tmp := path + ".tmp"
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, b, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
