// Package effect implements the engine's closed family of pixel
// generators behind a single tagged value, effect.Slot. Dispatch is a
// switch over Slot.kind rather than an interface, so swapping or invoking
// an effect never costs a virtual call — the static-dispatch contract the
// parent spec requires for MCUs without a branch predictor.
package effect

import (
	"ledengine/pkg/color"
	"ledengine/pkg/intent"
	"ledengine/pkg/mathkit"
)

// ID re-exports the engine-wide effect identifier so call sites outside
// this package don't need to import pkg/intent just to name an effect.
type ID = intent.EffectID

// Kind re-exports the effect family discriminant.
type Kind = intent.EffectKind

// FlowVariant re-exports the Flow effect's palette/motion selector.
type FlowVariant = intent.FlowVariant

const (
	Rainbow      = intent.EffectRainbow
	StaticColor  = intent.EffectStaticColor
	VelvetAnalog = intent.EffectVelvetAnalog
	Flow         = intent.EffectFlow
)

const (
	FlowAurora   = intent.FlowAurora
	FlowLavaLamp = intent.FlowLavaLamp
	FlowComet    = intent.FlowComet
)

// Slot holds exactly one concrete effect's state inline. Every ID maps to
// a constructible Slot and Slot.ID() is the inverse, per the spec's
// invariant.
type Slot struct {
	id ID

	rainbow rainbowState
	velvet  velvetState
	flow    flowState
}

// New constructs the default (freshly-started) Slot for id. Switching
// effects always goes through New rather than mutating a live Slot in
// place, so a newly selected effect never inherits stale phase state.
func New(id ID) Slot {
	s := Slot{id: id}
	switch id.Kind {
	case Rainbow:
		s.rainbow = newRainbowState()
	case VelvetAnalog:
		s.velvet = newVelvetState()
	case Flow:
		s.flow = newFlowState(id.Flow)
	}
	return s
}

// ID returns the identifier this Slot was constructed from.
func (s *Slot) ID() ID {
	return s.id
}

// PreciseColors reports this effect's capability flag: when true, the
// color-correction filter is allowed to touch its output; when false, the
// effect is trusted to already be producing exact pixel values and
// color-correction is bypassed.
func (s *Slot) PreciseColors() bool {
	switch s.id.Kind {
	case StaticColor, VelvetAnalog:
		return true
	default: // Rainbow, Flow
		return false
	}
}

// Tick advances the effect's internal phase by one frame.
func (s *Slot) Tick(now uint32) {
	switch s.id.Kind {
	case Rainbow:
		s.rainbow.tick(now)
	case VelvetAnalog:
		s.velvet.tick(now)
	case Flow:
		s.flow.tick(now)
	}
}

// SetColor hints the effect towards a target color. Effects that ignore
// color (Rainbow, Flow) simply no-op.
func (s *Slot) SetColor(c color.Rgb) {
	switch s.id.Kind {
	case VelvetAnalog:
		s.velvet.setColor(c)
	}
}

// Render writes exactly len(buf) pixels.
func (s *Slot) Render(buf []color.Rgb, target color.Rgb, now uint32) {
	switch s.id.Kind {
	case Rainbow:
		s.rainbow.render(buf, now)
	case StaticColor:
		renderStatic(buf, target)
	case VelvetAnalog:
		s.velvet.render(buf, target, now)
	case Flow:
		s.flow.render(buf, now)
	}
}

// --- StaticColor: solid fill, PRECISE_COLORS = true ---

func renderStatic(buf []color.Rgb, target color.Rgb) {
	for i := range buf {
		buf[i] = target
	}
}

// --- Rainbow: hue sweep, PRECISE_COLORS = false ---

type rainbowState struct {
	phase uint8
}

func newRainbowState() rainbowState {
	return rainbowState{}
}

// rainbowSpeedShift and rainbowStride mirror the spec's "hue = (now_ms*speed)>>k;
// pixel i hue offset by i*stride" description.
const (
	rainbowSpeedShift = 4 // (now_ms >> rainbowSpeedShift) steps the phase
	rainbowStride     = 3
)

func (r *rainbowState) tick(now uint32) {
	r.phase = uint8(now >> rainbowSpeedShift)
}

func (r *rainbowState) render(buf []color.Rgb, now uint32) {
	for i := range buf {
		hue := r.phase + uint8(i)*rainbowStride
		buf[i] = color.Hsv{H: hue, S: 255, V: 255}.ToRgb()
	}
}

// --- VelvetAnalog: slow drift + breathing envelope around target color,
// PRECISE_COLORS = true. Grounded in the teacher's RunBreathingEffect: a
// sine-squared duty cycle with a 10% floor so the strip never reads as
// fully off, reworked onto mathkit.SinU8 instead of math.Sin. ---

type velvetState struct {
	target   color.Rgb
	phase    uint8
	driftPh  uint8
	lastTick uint32
}

func newVelvetState() velvetState {
	return velvetState{target: color.White}
}

// breathPeriodShift sets how many now_ms-ticks make up one breathing
// phase step; a full cycle is 256 steps of 64 ms, about 16.4s.
const (
	breathPeriodShift = 6
	driftPeriodShift  = 9
	minDutyU8         = 26 // ~10% of 255, matching the teacher's minDuty=0.10
)

func (v *velvetState) setColor(c color.Rgb) {
	v.target = c
}

func (v *velvetState) tick(now uint32) {
	v.phase = uint8(now >> breathPeriodShift)
	v.driftPh = uint8(now >> driftPeriodShift)
	v.lastTick = now
}

func (v *velvetState) render(buf []color.Rgb, target color.Rgb, now uint32) {
	v.target = target
	s := mathkit.SinU8(v.phase) // 0..255, one breathing cycle
	// square the normalized sine to ease near the bottom, then floor it,
	// matching the teacher's phase*phase + minDuty shaping.
	eased := mathkit.Scale8(s, s)
	duty := minDutyU8 + mathkit.Scale8(255-minDutyU8, eased)

	drift := mathkit.SinU8(v.driftPh)
	// small hue-neutral brightness wobble layered on top of the breathing
	// envelope so adjacent pixels aren't perfectly identical.
	for i := range buf {
		wobble := uint8((int(drift) + i*7) % 256)
		local := mathkit.Scale8(duty, 200+mathkit.Scale8(wobble, 55))
		buf[i] = v.target.Scale(local)
	}
}

// --- Flow: multi-octave value-noise gradient / comet motion,
// PRECISE_COLORS = false ---

type flowState struct {
	variant FlowVariant
	t       uint32
}

func newFlowState(variant FlowVariant) flowState {
	return flowState{variant: variant}
}

func (f *flowState) tick(now uint32) {
	f.t = now
}

func (f *flowState) render(buf []color.Rgb, now uint32) {
	switch f.variant {
	case FlowComet:
		renderComet(buf, f.t)
	default:
		renderNoiseGradient(buf, f.t, f.variant)
	}
}

// renderNoiseGradient blends a small set of moving octaves into a palette
// lookup; two to three octaves per the spec, each a different speed/scale
// so the result doesn't visibly repeat.
func renderNoiseGradient(buf []color.Rgb, t uint32, variant FlowVariant) {
	pal := auroraPalette
	if variant == FlowLavaLamp {
		pal = lavaPalette
	}
	for i := range buf {
		n1 := valueNoise8(uint8(i)*13+uint8(t>>3), 0)
		n2 := valueNoise8(uint8(i)*7+uint8(t>>5), 64)
		n3 := valueNoise8(uint8(i)*3+uint8(t>>7), 128)
		v := mathkit.Scale8(n1, 160) + mathkit.Scale8(n2, 60) + mathkit.Scale8(n3, 35)
		buf[i] = paletteLookup(pal, v)
	}
}

// renderComet draws a fading head+tail sweeping across buf and bouncing at
// the ends, the integer-math descendant of the teacher's shootAnimation /
// ShootBounceLEDs head+tail fade.
const cometTail = 8

func renderComet(buf []color.Rgb, t uint32) {
	n := len(buf)
	for i := range buf {
		buf[i] = color.Black
	}
	if n == 0 {
		return
	}
	period := uint32(2 * (n - 1))
	if period == 0 {
		period = 1
	}
	step := (t >> 2) % (period + 1)
	var head int
	if int(step) <= n-1 {
		head = int(step)
	} else {
		head = 2*(n-1) - int(step)
	}
	headColor := color.Rgb{R: 64, G: 160, B: 255}
	for tl := 0; tl < cometTail; tl++ {
		pos := head - tl
		if pos < 0 || pos >= n {
			continue
		}
		f := uint8(255 - (tl * 255 / cometTail))
		buf[pos] = headColor.Scale(f)
	}
}

// valueNoise8 is a cheap hash-based value-noise sample in [0,255],
// integer-only: a small multiplicative hash, not a true Perlin/simplex
// implementation, sufficient for a smooth-looking gradient on a 1D strip.
func valueNoise8(x uint8, seed uint8) uint8 {
	h := uint32(x)*2654435761 + uint32(seed)*40503
	return uint8(h >> 16)
}

type paletteStop struct {
	pos uint8
	c   color.Rgb
}

var auroraPalette = []paletteStop{
	{0, color.Rgb{R: 0, G: 10, B: 20}},
	{64, color.Rgb{R: 0, G: 120, B: 90}},
	{160, color.Rgb{R: 40, G: 200, B: 140}},
	{220, color.Rgb{R: 140, G: 60, B: 220}},
	{255, color.Rgb{R: 10, G: 20, B: 60}},
}

var lavaPalette = []paletteStop{
	{0, color.Rgb{R: 10, G: 0, B: 0}},
	{80, color.Rgb{R: 140, G: 10, B: 0}},
	{170, color.Rgb{R: 230, G: 90, B: 0}},
	{220, color.Rgb{R: 255, G: 180, B: 40}},
	{255, color.Rgb{R: 20, G: 0, B: 0}},
}

func paletteLookup(pal []paletteStop, v uint8) color.Rgb {
	for i := 0; i < len(pal)-1; i++ {
		lo, hi := pal[i], pal[i+1]
		if v >= lo.pos && v <= hi.pos {
			span := hi.pos - lo.pos
			if span == 0 {
				return lo.c
			}
			t := uint8(uint32(v-lo.pos) * 255 / uint32(span))
			return lo.c.Blend(hi.c, t)
		}
	}
	return pal[len(pal)-1].c
}
