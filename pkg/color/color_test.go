package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRgbBlendEndpoints(t *testing.T) {
	a := Rgb{R: 0, G: 10, B: 255}
	b := Rgb{R: 255, G: 20, B: 0}
	assert.Equal(t, a, a.Blend(b, 0))
	assert.Equal(t, b, a.Blend(b, 255))
}

func TestRgbScale(t *testing.T) {
	assert.Equal(t, Rgb{}, White.Scale(0))
	assert.Equal(t, White, White.Scale(255))
}

func TestHsvToRgbPrimaries(t *testing.T) {
	red := Hsv{H: 0, S: 255, V: 255}.ToRgb()
	assert.EqualValues(t, 255, red.R)
	assert.Less(t, int(red.G), 10)
	assert.Less(t, int(red.B), 10)

	green := Hsv{H: 85, S: 255, V: 255}.ToRgb()
	assert.Greater(t, int(green.G), 240)

	grey := Hsv{H: 40, S: 0, V: 128}.ToRgb()
	assert.Equal(t, Rgb{R: 128, G: 128, B: 128}, grey)
}

func TestMirror(t *testing.T) {
	px := []Rgb{{R: 1}, {R: 2}, {R: 3}, {R: 4}}
	Mirror(px)
	assert.Equal(t, []Rgb{{R: 4}, {R: 3}, {R: 2}, {R: 1}}, px)
}

func TestFromKelvinClamps(t *testing.T) {
	low := FromKelvin(100)
	assert.Equal(t, FromKelvin(1000), low)
	high := FromKelvin(60000)
	assert.Equal(t, FromKelvin(40000), high)
}

func TestFromKelvinMidpoint(t *testing.T) {
	c := FromKelvin(6500)
	assert.Greater(t, int(c.B), 200)
}

func TestU8Blend(t *testing.T) {
	assert.Equal(t, U8(0), U8(0).Blend(U8(255), 0))
	assert.Equal(t, U8(255), U8(0).Blend(U8(255), 255))
}
