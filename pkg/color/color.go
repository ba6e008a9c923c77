// Package color holds the engine's plain-old-data color types and the
// conversions between them. Everything is integer, fixed-range u8 — no
// floating point, matching the render-path non-goals in the parent spec.
package color

import "ledengine/pkg/mathkit"

// Rgb is three 8-bit channels. Zero value is black.
type Rgb struct {
	R, G, B uint8
}

// Black is the zero Rgb value, spelled out for readability at call sites.
var Black = Rgb{}

// White is full-intensity on all three channels.
var White = Rgb{R: 255, G: 255, B: 255}

// Blend channel-wise interpolates from r to other by t/255. Implements
// transition.Blendable so Rgb can drive a ValueTransition directly.
func (r Rgb) Blend(other Rgb, t uint8) Rgb {
	return Rgb{
		R: mathkit.Blend8(r.R, other.R, t),
		G: mathkit.Blend8(r.G, other.G, t),
		B: mathkit.Blend8(r.B, other.B, t),
	}
}

// Scale multiplies every channel by gain/255 via Scale8.
func (r Rgb) Scale(gain uint8) Rgb {
	return Rgb{
		R: mathkit.Scale8(r.R, gain),
		G: mathkit.Scale8(r.G, gain),
		B: mathkit.Scale8(r.B, gain),
	}
}

// Gamma applies the engine's fixed gamma-2.2 LUT channel-wise.
func (r Rgb) Gamma() Rgb {
	return Rgb{
		R: mathkit.Gamma8(r.R),
		G: mathkit.Gamma8(r.G),
		B: mathkit.Gamma8(r.B),
	}
}

// U8 is a brightness/scalar value wrapped so it can implement Blendable
// the same way Rgb does — uint8 itself can't carry methods.
type U8 uint8

// Blend interpolates from u to other by t/255.
func (u U8) Blend(other U8, t uint8) U8 {
	return U8(mathkit.Blend8(uint8(u), uint8(other), t))
}

// Hsv is full-range u8 on all three axes; hue wraps at 256.
type Hsv struct {
	H, S, V uint8
}

// ToRgb converts HSV to RGB using the six-sector algorithm on u8 math, no
// floating point. Sector width is 256/6, approximated with integer
// arithmetic throughout.
func (h Hsv) ToRgb() Rgb {
	if h.S == 0 {
		return Rgb{R: h.V, G: h.V, B: h.V}
	}

	region := h.H / 43 // 256/6 ~= 42.67, six regions of ~43
	remainder := (h.H - region*43) * 6

	p := mathkit.Scale8(h.V, 255-h.S)
	q := mathkit.Scale8(h.V, 255-mathkit.Scale8(h.S, remainder))
	t := mathkit.Scale8(h.V, 255-mathkit.Scale8(h.S, 255-remainder))

	switch region {
	case 0:
		return Rgb{R: h.V, G: t, B: p}
	case 1:
		return Rgb{R: q, G: h.V, B: p}
	case 2:
		return Rgb{R: p, G: h.V, B: t}
	case 3:
		return Rgb{R: p, G: q, B: h.V}
	case 4:
		return Rgb{R: t, G: p, B: h.V}
	default:
		return Rgb{R: h.V, G: p, B: q}
	}
}

// Mirror reverses an Rgb slice in place, a small helper effects use to turn
// a one-directional gradient into a symmetric one.
func Mirror(px []Rgb) {
	for i, j := 0, len(px)-1; i < j; i, j = i+1, j-1 {
		px[i], px[j] = px[j], px[i]
	}
}

// kelvinStop is one control point of the piecewise Kelvin->RGB
// approximation: below 1000K and above 40000K the curve is clamped flat.
type kelvinStop struct {
	k       uint16
	r, g, b uint8
}

// kelvinCurve is a small set of known black-body color points; FromKelvin
// linearly interpolates between the two bracketing stops. This keeps the
// conversion integer-only and table-driven instead of the usual
// floating-point polynomial fit.
var kelvinCurve = []kelvinStop{
	{1000, 255, 56, 0},
	{2000, 255, 137, 18},
	{3000, 255, 180, 107},
	{4000, 255, 209, 163},
	{5000, 255, 228, 206},
	{6500, 255, 249, 253},
	{8000, 202, 218, 255},
	{10000, 168, 197, 255},
	{15000, 137, 179, 255},
	{20000, 125, 169, 255},
	{40000, 114, 161, 255},
}

// FromKelvin approximates the black-body color at temperature k, clamped
// to [1000, 40000] per the parent spec.
func FromKelvin(k uint16) Rgb {
	if k < kelvinCurve[0].k {
		k = kelvinCurve[0].k
	}
	last := kelvinCurve[len(kelvinCurve)-1]
	if k > last.k {
		k = last.k
	}
	for i := 0; i < len(kelvinCurve)-1; i++ {
		lo, hi := kelvinCurve[i], kelvinCurve[i+1]
		if k >= lo.k && k <= hi.k {
			span := uint32(hi.k - lo.k)
			if span == 0 {
				return Rgb{lo.r, lo.g, lo.b}
			}
			t := uint8(uint32(k-lo.k) * 255 / span)
			return Rgb{
				R: mathkit.Blend8(lo.r, hi.r, t),
				G: mathkit.Blend8(lo.g, hi.g, t),
				B: mathkit.Blend8(lo.b, hi.b, t),
			}
		}
	}
	return Rgb{last.r, last.g, last.b}
}
