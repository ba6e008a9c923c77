// Package filter implements the post-processing chain applied to an
// effect's raw pixel output: color correction, brightness shaping, then
// gamma. Order is fixed, matching the parent spec.
package filter

import (
	"ledengine/pkg/color"
	"ledengine/pkg/mathkit"
)

// BrightnessConfig holds the brightness stage's tunables.
type BrightnessConfig struct {
	// MinBrightness is the floor applied while powered; ignored entirely
	// while powered == false (everything is zero then).
	MinBrightness uint8
	// Scale is the post-gain multiplier applied on top of the sampled
	// brightness transition value.
	Scale uint8
	// AdjustCurve, if HasAdjustCurve, runs before the scale8 brightness
	// multiply — an optional perceptual LUT on top of the linear ramp.
	HasAdjustCurve bool
	AdjustCurve    [256]uint8
}

// DefaultBrightnessConfig matches the spec's "no-op" baseline: full scale,
// no floor, no adjust curve.
func DefaultBrightnessConfig() BrightnessConfig {
	return BrightnessConfig{MinBrightness: 0, Scale: 255}
}

// Config bundles the whole chain's configuration: the white-point used
// for color correction plus the brightness stage's tunables. Gamma has no
// configuration — it is a fixed LUT.
type Config struct {
	ColorCorrection color.Rgb
	Brightness      BrightnessConfig
}

// DefaultConfig is full white-point (no color shift) plus
// DefaultBrightnessConfig.
func DefaultConfig() Config {
	return Config{ColorCorrection: color.White, Brightness: DefaultBrightnessConfig()}
}

// Apply runs the fixed three-stage chain over buf in place.
//
//  1. Color correction — only if preciseColors, multiply by the
//     configured white point.
//  2. Brightness — effective brightness from sampledBrightness, the
//     configured Scale, and MinBrightness (unless powered == false, in
//     which case everything is forced to zero regardless of the other
//     two).
//  3. Gamma — fixed 2.2 LUT, always applied.
func Apply(buf []color.Rgb, cfg Config, preciseColors bool, sampledBrightness uint8, powered bool) {
	if !powered {
		for i := range buf {
			buf[i] = color.Black
		}
		return
	}

	if preciseColors {
		for i := range buf {
			buf[i] = colorCorrect(buf[i], cfg.ColorCorrection)
		}
	}

	effective := mathkit.Scale8(sampledBrightness, cfg.Brightness.Scale)
	if effective < cfg.Brightness.MinBrightness {
		effective = cfg.Brightness.MinBrightness
	}

	for i := range buf {
		px := buf[i]
		if cfg.Brightness.HasAdjustCurve {
			px = color.Rgb{
				R: cfg.Brightness.AdjustCurve[px.R],
				G: cfg.Brightness.AdjustCurve[px.G],
				B: cfg.Brightness.AdjustCurve[px.B],
			}
		}
		px = px.Scale(effective)
		buf[i] = px.Gamma()
	}
}

// colorCorrect scales each channel of px by whitePoint[ch]/255 via Scale8.
func colorCorrect(px, whitePoint color.Rgb) color.Rgb {
	return color.Rgb{
		R: mathkit.Scale8(px.R, whitePoint.R),
		G: mathkit.Scale8(px.G, whitePoint.G),
		B: mathkit.Scale8(px.B, whitePoint.B),
	}
}
