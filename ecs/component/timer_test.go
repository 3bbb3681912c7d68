package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimerLifecycle(t *testing.T) {
	var tm Timer
	assert.False(t, tm.Active())
	assert.Zero(t, tm.Progress())

	tm.Start(100)
	assert.True(t, tm.Active())
	assert.Equal(t, 100.0, tm.Remaining())

	tm.Tick(25)
	assert.Equal(t, 75.0, tm.Remaining())
	assert.InDelta(t, 0.25, tm.Progress(), 1e-9)

	tm.Tick(0)
	tm.Tick(-10)
	assert.Equal(t, 75.0, tm.Remaining())

	tm.Tick(75)
	assert.False(t, tm.Active())
	assert.Zero(t, tm.Remaining())
	assert.Equal(t, 1.0, tm.Progress())
	assert.Equal(t, 100.0, tm.Duration())
}

func TestTimerStartNonPositiveStops(t *testing.T) {
	tm := NewTimer(50)
	assert.True(t, tm.Active())

	tm.Start(0)
	assert.False(t, tm.Active())

	tm = NewTimer(-3)
	assert.False(t, tm.Active())
}

func TestTimerOvershootDeactivates(t *testing.T) {
	tm := NewTimer(10)
	tm.Tick(16)
	assert.False(t, tm.Active())
	tm.Tick(16)
	assert.False(t, tm.Active())
}
