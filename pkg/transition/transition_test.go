package transition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type u8val uint8

func (u u8val) Blend(to u8val, t uint8) u8val {
	if t == 255 {
		return to
	}
	if t == 0 {
		return u
	}
	delta := int(to) - int(u)
	return u8val(int(u) + delta*int(t)/255)
}

func TestSampleBeforeStart(t *testing.T) {
	tr := New[u8val](10, 200, 100, 50)
	assert.Equal(t, u8val(10), tr.Sample(50))
	assert.False(t, tr.IsDone(50))
}

func TestSampleAfterEnd(t *testing.T) {
	tr := New[u8val](10, 200, 100, 50)
	assert.Equal(t, u8val(200), tr.Sample(200))
	assert.True(t, tr.IsDone(200))
}

func TestSampleMidpoint(t *testing.T) {
	tr := New[u8val](0, 100, 0, 100)
	v := tr.Sample(50)
	assert.InDelta(t, 50, int(v), 2)
	assert.False(t, tr.IsDone(50))
}

func TestZeroDurationIsImmediate(t *testing.T) {
	tr := New[u8val](10, 200, 1000, 0)
	assert.Equal(t, u8val(200), tr.Sample(0))
	assert.True(t, tr.IsDone(0))
}

func TestMonotonicBrightnessRamp(t *testing.T) {
	tr := New[u8val](0, 255, 0, 100)
	prev := -1
	for now := Instant(0); now <= 100; now += 5 {
		v := int(tr.Sample(now))
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}
