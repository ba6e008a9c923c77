// Package wire defines the flat JSON message the relay pushes down a
// device's websocket connection and a strip decodes back into an
// intent.ChangeIntent. It deliberately mirrors the teacher's WSMessage:
// one flat struct, hex color strings, omitempty everywhere so a producer
// only needs to set the fields it cares about.
package wire

import (
	"fmt"
	"strings"

	"ledengine/pkg/bounds"
	"ledengine/pkg/color"
	"ledengine/pkg/effect"
	"ledengine/pkg/intent"
)

// Message is the wire shape of a ChangeIntent. Pointer fields distinguish
// "absent" from "set to zero", same contract as intent.StateIntent.
type Message struct {
	PowerOff bool `json:"powerOff,omitempty"`

	Powered    *bool   `json:"powered,omitempty"`
	Brightness *uint8  `json:"brightness,omitempty"`
	ColorHex   string  `json:"color,omitempty"`
	Effect     string  `json:"effect,omitempty"`
	Flow       string  `json:"flow,omitempty"`

	BoundsStart *uint16 `json:"boundsStart,omitempty"`
	BoundsEnd   *uint16 `json:"boundsEnd,omitempty"`
}

var effectNames = map[string]effect.Kind{
	"rainbow": effect.Rainbow,
	"static":  effect.StaticColor,
	"velvet":  effect.VelvetAnalog,
	"flow":    effect.Flow,
}

var flowNames = map[string]effect.FlowVariant{
	"aurora": effect.FlowAurora,
	"lava":   effect.FlowLavaLamp,
	"comet":  effect.FlowComet,
}

// ParseHexColor parses "#RRGGBB" or "RRGGBB" into an Rgb. An empty or
// malformed string parses to black, same fallback the teacher's own
// parseHexColor falls back to.
func ParseHexColor(s string) color.Rgb {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.Black
	}
	var r, g, b uint32
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.Black
	}
	return color.Rgb{R: uint8(r), G: uint8(g), B: uint8(b)}
}

// ToIntent converts a decoded Message into the ChangeIntent the engine's
// processor expects.
func (m Message) ToIntent() intent.ChangeIntent {
	if m.PowerOff {
		return intent.PowerOffIntent()
	}

	var s intent.StateIntent
	s.Powered = m.Powered
	s.Brightness = m.Brightness

	if m.ColorHex != "" {
		c := ParseHexColor(m.ColorHex)
		s.Color = &c
	}

	if m.Effect != "" {
		if kind, ok := effectNames[strings.ToLower(strings.TrimSpace(m.Effect))]; ok {
			id := intent.EffectID{Kind: kind}
			if kind == effect.Flow {
				if fv, ok := flowNames[strings.ToLower(strings.TrimSpace(m.Flow))]; ok {
					id.Flow = fv
				}
			}
			s.Effect = &id
		}
	}

	if m.BoundsStart != nil && m.BoundsEnd != nil {
		b := bounds.New(*m.BoundsStart, *m.BoundsEnd)
		s.Bounds = &b
	}

	return intent.State(s)
}
