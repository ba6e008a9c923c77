// Package engine ties the math kit, color primitives, transitions,
// bounds, intent channel, operation stack, effect family, and filter
// chain into the Renderer: the component that turns caller-supplied time
// plus queued intents into a frame.
package engine

import (
	"ledengine/pkg/bounds"
	"ledengine/pkg/color"
	"ledengine/pkg/effect"
	"ledengine/pkg/filter"
	"ledengine/pkg/intent"
)

// Instant is a caller-supplied monotonic millisecond timestamp. The
// engine never reads a clock itself; every render call receives now
// explicitly.
type Instant = uint32

// Duration is a span of milliseconds.
type Duration = uint32

// Timings holds the durations used for each kind of transition the
// processor starts on the renderer's behalf. Configured once at
// construction; not remotely alterable by intents (per spec.md §6).
type Timings struct {
	FadeOut     Duration
	FadeIn      Duration
	ColorChange Duration
	Brightness  Duration
}

// Config seeds a Renderer's initial state.
type Config struct {
	Effect     effect.ID
	Bounds     bounds.Rendering
	Timings    Timings
	Filters    filter.Config
	Brightness uint8
	Color      color.Rgb
}

// toFilterConfig converts the engine-facing filter.Config into the
// wire-shaped intent.FilterConfig side-effect payload producers send; it
// is the inverse of fromFilterConfig.
func toFilterConfig(c filter.Config) intent.FilterConfig {
	return intent.FilterConfig{
		MinBrightness:   c.Brightness.MinBrightness,
		Scale:           c.Brightness.Scale,
		ColorCorrection: c.ColorCorrection,
		HasAdjustCurve:  c.Brightness.HasAdjustCurve,
		AdjustCurve:     c.Brightness.AdjustCurve,
	}
}

func fromFilterConfig(c intent.FilterConfig) filter.Config {
	return filter.Config{
		ColorCorrection: c.ColorCorrection,
		Brightness: filter.BrightnessConfig{
			MinBrightness:  c.MinBrightness,
			Scale:          c.Scale,
			HasAdjustCurve: c.HasAdjustCurve,
			AdjustCurve:    c.AdjustCurve,
		},
	}
}
