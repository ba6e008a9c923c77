package engine

import (
	"ledengine/pkg/bounds"
	"ledengine/pkg/color"
	"ledengine/pkg/effect"
	"ledengine/pkg/filter"
	"ledengine/pkg/intent"
	"ledengine/pkg/opstack"
)

// Renderer orchestrates the operation stack, effect family, and filter
// chain into a frame. It owns the frame buffer, the operation stack, and
// a receiver borrowed from a long-lived intent.Channel. Render reuses its
// drain scratch space across frames; it allocates only when one frame's
// batch of intents exceeds the scratch's capacity (8 at construction),
// and keeps the grown capacity afterwards.
type Renderer struct {
	recv  intent.Receiver
	stack *opstack.Stack

	buf     []color.Rgb
	scratch []intent.ChangeIntent // reused drain scratch space, reset to [:0] each frame

	live    bounds.Rendering
	filters filter.Config
	timings Timings

	st state

	pendingPowerOff bool
}

// New constructs a Renderer with a frame buffer of capacity n and an
// operation stack of capacity opCap, seeded from cfg and consuming
// intents from recv.
func New(n, opCap int, recv intent.Receiver, cfg Config) *Renderer {
	if n < 0 {
		n = 0
	}
	r := &Renderer{
		recv:    recv,
		stack:   opstack.New(opCap),
		buf:     make([]color.Rgb, n),
		scratch: make([]intent.ChangeIntent, 0, 8),
		live:    cfg.Bounds.Clamp(uint16(n)),
		filters: cfg.Filters,
		timings: cfg.Timings,
		st:      newState(cfg),
	}
	return r
}

// Render drains pending intents, advances the state machine to now, and
// returns a frame of exactly len == capacity passed to New. The returned
// slice is borrowed and only valid until the next Render call.
func (r *Renderer) Render(now Instant) []color.Rgb {
	r.scratch = r.recv.Drain(r.scratch[:0])
	foldBatch(r.scratch, &r.st, r.stack, &r.live, &r.filters, r.timings)

	r.applyPendingOp(now)

	current := r.st.sampleColor(now)
	brightness := r.st.sampleBrightness(now)

	if r.pendingPowerOff && !r.st.colorTrActiveOrBrightnessActive() {
		r.pendingPowerOff = false
		r.st.powered = false
	}

	for i := range r.buf {
		r.buf[i] = color.Black
	}

	live := r.live.Clamp(uint16(len(r.buf)))
	slice := r.buf[live.Start:live.End]

	r.st.active.Tick(now)
	r.st.active.Render(slice, current, now)

	filter.Apply(slice, r.filters, r.st.active.PreciseColors(), brightness, r.st.powered)

	return r.buf
}

// applyPendingOp pops and applies at most one queued operation this
// frame, and only when no transition is currently in flight — this is
// what keeps each queued transition individually observable rather than
// being instantly overwritten by whatever comes next on the stack.
func (r *Renderer) applyPendingOp(now Instant) {
	if r.st.colorTrActiveOrBrightnessActive() {
		return
	}
	op, ok := r.stack.Pop()
	if !ok {
		return
	}

	switch op.Kind {
	case opstack.FadeOut:
		from := r.st.sampleBrightness(now)
		r.st.startBrightnessTransition(from, 0, now, op.Duration)
		r.pendingPowerOff = true

	case opstack.FadeIn:
		r.st.powered = true
		r.st.startBrightnessTransition(0, r.st.targetBrightness, now, op.Duration)

	case opstack.SetBrightness:
		from := r.st.sampleBrightness(now)
		r.st.startBrightnessTransition(from, op.BrightnessTarget, now, op.Duration)

	case opstack.SetColor:
		from := r.st.sampleColor(now)
		r.st.startColorTransition(from, op.ColorTarget, now, op.Duration)

	case opstack.SwitchEffect:
		prevColor := r.st.sampleColor(now)
		r.st.active = effect.New(op.Effect)
		r.st.active.SetColor(prevColor)

	case opstack.PowerOff:
		r.st.powered = false
		r.pendingPowerOff = false
		r.st.colorTrActive = false
		r.st.brightnessTrActive = false
		r.st.targetBrightness = 0
	}
}

// colorTrActiveOrBrightnessActive reports whether either animated
// transition is currently in flight.
func (s *state) colorTrActiveOrBrightnessActive() bool {
	return s.colorTrActive || s.brightnessTrActive
}
