package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLerp(t *testing.T) {
	assert.InDelta(t, 5, Lerp(0, 10, 0.5), 1e-6)
	assert.InDelta(t, 10, Lerp(10, 20, 0), 1e-6)
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, float32(0), Clamp01(-2))
	assert.Equal(t, float32(0.25), Clamp01(0.25))
	assert.Equal(t, float32(1), Clamp01(3))
}
