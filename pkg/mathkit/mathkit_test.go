package mathkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScale8Identity(t *testing.T) {
	for x := 0; x < 256; x++ {
		assert.Equal(t, uint8(x), Scale8(255, uint8(x)), "scale8(255, %d)", x)
	}
}

func TestScale8Zero(t *testing.T) {
	for x := 0; x < 256; x++ {
		assert.Equal(t, uint8(0), Scale8(uint8(x), 0), "scale8(%d, 0)", x)
	}
}

func TestBlend8Endpoints(t *testing.T) {
	assert.Equal(t, uint8(10), Blend8(10, 200, 0))
	assert.Equal(t, uint8(200), Blend8(10, 200, 255))
}

func TestBlend8Monotonic(t *testing.T) {
	prev := Blend8(0, 255, 0)
	for tt := 1; tt < 256; tt++ {
		cur := Blend8(0, 255, uint8(tt))
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestProgress8(t *testing.T) {
	assert.Equal(t, uint8(0), Progress8(0, 10, 100))
	assert.Equal(t, uint8(255), Progress8(110, 10, 100))
	assert.Equal(t, uint8(255), Progress8(5, 5, 0))
	mid := Progress8(60, 10, 100)
	assert.InDelta(t, 127, int(mid), 3)
}

func TestGammaLUTMonotonicAndEndpoints(t *testing.T) {
	lut := GammaLUT()
	assert.Equal(t, uint8(0), lut[0])
	assert.Equal(t, uint8(255), lut[255])
	for i := 1; i < 256; i++ {
		assert.GreaterOrEqual(t, lut[i], lut[i-1], "gamma lut not monotonic at %d", i)
	}
}

func TestSinU8Range(t *testing.T) {
	for i := 0; i < 256; i++ {
		v := SinU8(uint8(i))
		assert.GreaterOrEqual(t, int(v), 0)
		assert.LessOrEqual(t, int(v), 255)
	}
}
