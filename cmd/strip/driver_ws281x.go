//go:build linux && arm

package main

import (
	"fmt"

	ws2811 "github.com/rpi-ws281x/rpi-ws281x-go"

	"ledengine/pkg/color"
)

// ws281xDriver wraps a single ws2811 channel. It does no locking of its
// own: SetPixels, Render and Close are not serialized against each other.
// main's render loop calls SetPixels/Render from one goroutine and Close
// only on exit.
type ws281xDriver struct {
	dev *ws2811.WS2811
}

func newWS281xDriver(pin, count, brightness int) (*ws281xDriver, error) {
	opt := ws2811.DefaultOptions
	opt.Channels[0].GpioPin = pin
	opt.Channels[0].Brightness = brightness
	opt.Channels[0].LedCount = count

	dev, err := ws2811.MakeWS2811(&opt)
	if err != nil {
		return nil, fmt.Errorf("makeWS2811 failed: %w", err)
	}
	if err := dev.Init(); err != nil {
		return nil, fmt.Errorf("ws2811 init failed: %w", err)
	}
	return &ws281xDriver{dev: dev}, nil
}

func (d *ws281xDriver) SetPixels(frame []color.Rgb) error {
	leds := d.dev.Leds(0)
	n := len(frame)
	if len(leds) < n {
		n = len(leds)
	}
	for i := 0; i < n; i++ {
		px := frame[i]
		leds[i] = uint32(px.R)<<16 | uint32(px.G)<<8 | uint32(px.B)
	}
	return nil
}

func (d *ws281xDriver) Render() error {
	return d.dev.Render()
}

func (d *ws281xDriver) Close() {
	leds := d.dev.Leds(0)
	for i := range leds {
		leds[i] = 0
	}
	_ = d.dev.Render()
	d.dev.Fini()
}

func newHardwareDriver(cfg Config) (OutputDriver, error) {
	return newWS281xDriver(cfg.LedPin, cfg.LedCount, cfg.Brightness)
}
