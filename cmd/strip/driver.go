package main

import "ledengine/pkg/color"

// OutputDriver pushes one rendered frame to the physical strip. The
// renderer itself never touches hardware; main's render loop hands each
// frame to whichever driver the build tags selected.
type OutputDriver interface {
	SetPixels(frame []color.Rgb) error
	Render() error
	Close()
}
