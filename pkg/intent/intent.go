// Package intent implements the engine's bounded multi-producer,
// single-consumer channel and the wish values producers send down it.
//
// There is no portable way in user-space Go to disable interrupts the way
// a bare-metal critical section would; a short sync.Mutex hold around each
// enqueue/dequeue is the idiomatic stand-in the wider corpus itself reaches
// for (the teacher guards its hardware handle with exactly this pattern —
// see ledMutex in ledcontrol). Each critical section does O(1) work: one
// ring-buffer slot write or read.
package intent

import (
	"errors"
	"sync"

	"ledengine/pkg/bounds"
	"ledengine/pkg/color"
)

// ErrFull is returned by TrySend when the channel's ring buffer has no
// free slot. The caller decides whether to drop, retry, or log; the
// channel itself never blocks.
var ErrFull = errors.New("intent: channel full")

// EffectID names one of the engine's supported effects.
type EffectID struct {
	Kind EffectKind
	Flow FlowVariant // only meaningful when Kind == EffectFlow
}

// EffectKind is the closed set of effect families.
type EffectKind uint8

const (
	EffectRainbow EffectKind = iota
	EffectStaticColor
	EffectVelvetAnalog
	EffectFlow
)

// FlowVariant selects a palette/motion for the Flow effect family.
type FlowVariant uint8

const (
	FlowAurora FlowVariant = iota
	FlowLavaLamp
	FlowComet
)

// StateIntent carries an arbitrary subset of light-state wishes. Every
// field is a pointer so "absent" and "set to zero value" are
// distinguishable, matching the spec's "any subset present" contract.
type StateIntent struct {
	Brightness   *uint8
	Color        *color.Rgb
	Effect       *EffectID
	Powered      *bool
	Bounds       *bounds.Rendering
	FilterConfig *FilterConfig
}

// FilterConfig mirrors engine-level filter configuration so intents can
// update it without the intent package depending on the filter package;
// pkg/engine converts between the two.
type FilterConfig struct {
	MinBrightness   uint8
	Scale           uint8
	ColorCorrection color.Rgb
	HasAdjustCurve  bool
	AdjustCurve     [256]uint8
}

// ChangeIntent is the sum type of everything a producer can send: either a
// partial state update, or the priority power-off override.
type ChangeIntent struct {
	PowerOff bool // when true, State is ignored and this is a pure PowerOff intent
	State    StateIntent
}

// State builds a ChangeIntent carrying only a state update.
func State(s StateIntent) ChangeIntent {
	return ChangeIntent{State: s}
}

// PowerOffIntent builds the priority power-off override intent.
func PowerOffIntent() ChangeIntent {
	return ChangeIntent{PowerOff: true}
}

// Channel is a fixed-capacity ring buffer of ChangeIntent, safe for many
// concurrent senders and exactly one receiver. The capacity is fixed at
// construction and the backing array is allocated once, up front — no
// allocation happens on TrySend/TryRecv/Drain.
type Channel struct {
	mu   sync.Mutex
	buf  []ChangeIntent
	head int
	size int
}

// NewChannel allocates a channel with room for capacity pending intents.
func NewChannel(capacity int) *Channel {
	if capacity < 1 {
		capacity = 1
	}
	return &Channel{buf: make([]ChangeIntent, capacity)}
}

// Sender is a cheap, copyable handle producers use to enqueue intents.
// Cloning a Sender is just copying the pointer to the shared Channel.
type Sender struct {
	ch *Channel
}

// Receiver is the single consumer handle; constructing more than one from
// the same Channel would be unsound (the spec's "exactly-one consumer"
// invariant) — callers are trusted to only ever call Receiver() once per
// Channel, the same way the spec leaves it to the caller to honor.
type Receiver struct {
	ch *Channel
}

// Sender returns a new, cheaply cloneable sender handle for this channel.
func (c *Channel) Sender() Sender {
	return Sender{ch: c}
}

// Receiver returns the single consumer handle for this channel.
func (c *Channel) Receiver() Receiver {
	return Receiver{ch: c}
}

// TrySend enqueues v at the tail. Never blocks: returns ErrFull instead of
// waiting when the ring buffer is at capacity.
func (s Sender) TrySend(v ChangeIntent) error {
	c := s.ch
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.size == len(c.buf) {
		return ErrFull
	}
	tail := (c.head + c.size) % len(c.buf)
	c.buf[tail] = v
	c.size++
	return nil
}

// TryRecv dequeues the oldest pending intent, if any. Never blocks.
func (r Receiver) TryRecv() (ChangeIntent, bool) {
	c := r.ch
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.size == 0 {
		return ChangeIntent{}, false
	}
	v := c.buf[c.head]
	c.buf[c.head] = ChangeIntent{}
	c.head = (c.head + 1) % len(c.buf)
	c.size--
	return v, true
}

// Drain appends every currently pending intent to dst, preserving FIFO
// order, and returns the extended slice. It never allocates beyond what
// append needs for dst's own growth, and the channel is empty afterwards.
func (r Receiver) Drain(dst []ChangeIntent) []ChangeIntent {
	c := r.ch
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.size > 0 {
		dst = append(dst, c.buf[c.head])
		c.buf[c.head] = ChangeIntent{}
		c.head = (c.head + 1) % len(c.buf)
		c.size--
	}
	return dst
}

// Len reports how many intents are currently pending. Mostly useful for
// tests and diagnostics.
func (c *Channel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Cap reports the channel's fixed capacity.
func (c *Channel) Cap() int {
	return len(c.buf)
}
