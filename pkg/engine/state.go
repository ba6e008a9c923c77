package engine

import (
	"ledengine/pkg/color"
	"ledengine/pkg/effect"
	"ledengine/pkg/transition"
)

// colorTransition and brightnessTransition instantiate the generic
// transition.ValueTransition for the two things the renderer animates.
type colorTransition = transition.ValueTransition[color.Rgb]
type brightnessTransition = transition.ValueTransition[color.U8]

// state is the renderer's owned light state: the active effect, its
// target color/brightness, any in-flight transitions, and power. The
// transitions are embedded by value with an "active" flag rather than
// carried as pointers, so starting or clearing one never allocates.
type state struct {
	active effect.Slot

	targetColor   color.Rgb
	colorTr       colorTransition
	colorTrActive bool

	targetBrightness   uint8
	brightnessTr       brightnessTransition
	brightnessTrActive bool

	powered bool
}

func newState(cfg Config) state {
	return state{
		active:           effect.New(cfg.Effect),
		targetColor:      cfg.Color,
		targetBrightness: cfg.Brightness,
		powered:          cfg.Brightness > 0,
	}
}

// sampleColor returns the currently running color transition's value, or
// the resting target color once no transition is active.
func (s *state) sampleColor(now Instant) color.Rgb {
	if !s.colorTrActive {
		return s.targetColor
	}
	v := s.colorTr.Sample(transition.Instant(now))
	if s.colorTr.IsDone(transition.Instant(now)) {
		s.colorTrActive = false
	}
	return v
}

// sampleBrightness returns the currently running brightness value,
// collapsing the transition once it completes.
func (s *state) sampleBrightness(now Instant) uint8 {
	if !s.brightnessTrActive {
		return s.targetBrightness
	}
	v := s.brightnessTr.Sample(transition.Instant(now))
	if s.brightnessTr.IsDone(transition.Instant(now)) {
		s.brightnessTrActive = false
	}
	return uint8(v)
}

func (s *state) startColorTransition(from, to color.Rgb, now Instant, dur Duration) {
	if from == to {
		return // idempotent: no-op when target equals current
	}
	s.colorTr = colorTransition{From: from, To: to, Start: transition.Instant(now), Duration: transition.Duration(dur)}
	s.colorTrActive = true
	s.targetColor = to
}

func (s *state) startBrightnessTransition(from, to uint8, now Instant, dur Duration) {
	if from == to {
		return
	}
	s.brightnessTr = brightnessTransition{From: color.U8(from), To: color.U8(to), Start: transition.Instant(now), Duration: transition.Duration(dur)}
	s.brightnessTrActive = true
	s.targetBrightness = to
}
