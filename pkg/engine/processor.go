package engine

import (
	"ledengine/pkg/bounds"
	"ledengine/pkg/filter"
	"ledengine/pkg/intent"
	"ledengine/pkg/opstack"
)

// foldBatch folds a drained batch of intents into operations pushed on
// stack and immediate side-effect updates to live bounds/filter config.
// Order matters throughout: intents are folded in arrival order, and
// within a single State intent fields are applied power first, then
// bounds/filter, then effect, then color, then brightness — matching spec.md §4.I.
func foldBatch(batch []intent.ChangeIntent, st *state, stack *opstack.Stack, live *bounds.Rendering, filters *filter.Config, timings Timings) {
	powerOffSeen := false

	for _, ci := range batch {
		if ci.PowerOff {
			stack.Clear()
			stack.Push(opstack.Operation{Kind: opstack.FadeOut, Duration: timings.FadeOut})
			powerOffSeen = true
			continue
		}

		s := ci.State

		if powerOffSeen {
			// Animated consequences of this intent are discarded; the
			// non-animated side effects still apply.
			applySideEffects(s, live, filters)
			continue
		}

		if s.Powered != nil {
			if *s.Powered {
				if !st.powered {
					stack.Push(opstack.Operation{Kind: opstack.FadeIn, Duration: timings.FadeIn})
				}
				st.powered = true
			} else {
				stack.Clear()
				stack.Push(opstack.Operation{Kind: opstack.FadeOut, Duration: timings.FadeOut})
				powerOffSeen = true
				applySideEffects(s, live, filters)
				continue
			}
		}

		applySideEffects(s, live, filters)

		if s.Effect != nil && *s.Effect != st.active.ID() {
			stack.Push(opstack.Operation{Kind: opstack.SwitchEffect, Effect: *s.Effect})
		}
		if s.Color != nil && *s.Color != st.targetColor {
			stack.Push(opstack.Operation{Kind: opstack.SetColor, ColorTarget: *s.Color, Duration: timings.ColorChange})
		}
		if s.Brightness != nil && *s.Brightness != st.targetBrightness {
			stack.Push(opstack.Operation{Kind: opstack.SetBrightness, BrightnessTarget: *s.Brightness, Duration: timings.Brightness})
		}
	}
}

// applySideEffects updates bounds/filter config immediately — these are
// not animated and take effect the instant they're folded, regardless of
// power state or operation-stack backlog.
func applySideEffects(s intent.StateIntent, live *bounds.Rendering, filters *filter.Config) {
	if s.Bounds != nil {
		*live = *s.Bounds
	}
	if s.FilterConfig != nil {
		*filters = fromFilterConfig(*s.FilterConfig)
	}
}
