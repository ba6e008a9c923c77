//go:build !(linux && arm)

package main

import (
	"log"

	"ledengine/pkg/color"
)

// logDriver stands in for hardware on any platform that isn't a Pi's
// linux/arm target — lets the render loop, websocket client, and
// scheduler all run and be developed on a workstation.
type logDriver struct {
	count int
}

func newHardwareDriver(cfg Config) (OutputDriver, error) {
	log.Printf("no ws281x hardware on this platform; discarding frames for %d pixels instead", cfg.LedCount)
	return &logDriver{count: cfg.LedCount}, nil
}

func (d *logDriver) SetPixels(frame []color.Rgb) error { return nil }
func (d *logDriver) Render() error                     { return nil }
func (d *logDriver) Close()                            {}
