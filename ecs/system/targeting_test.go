package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAngleTo(t *testing.T) {
	self := cp.Vector{X: 100, Y: 100}
	tests := []struct {
		name   string
		target cp.Vector
		want   float64
	}{
		{name: "right", target: cp.Vector{X: 200, Y: 100}, want: 0},
		{name: "above", target: cp.Vector{X: 100, Y: 0}, want: math.Pi / 2},
		{name: "left", target: cp.Vector{X: 0, Y: 100}, want: math.Pi},
		{name: "below", target: cp.Vector{X: 100, Y: 200}, want: 3 * math.Pi / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AngleTo(self, tt.target)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.Less(t, got, 2*math.Pi)
		})
	}
}

func TestTargetVelocity(t *testing.T) {
	vx, vy := TargetVelocity(0, 64, 0.42)
	assert.InDelta(t, 152.38, vx, 0.01)
	assert.InDelta(t, 0, vy, 1e-9)

	// Player above: screen y shrinks, so the vertical speed is negative.
	vx, vy = TargetVelocity(math.Pi/2, 64, 0.42)
	assert.InDelta(t, 0, vx, 1e-9)
	assert.InDelta(t, -152.38, vy, 0.01)

	vx, vy = TargetVelocity(1, 64, 0)
	assert.Zero(t, vx)
	assert.Zero(t, vy)
}

func TestTargetingSystemRetargetsHomingBoss(t *testing.T) {
	w := ecs.NewWorld()
	cfg := baseConfig()
	boss := spawnBoss(t, w, cfg, cp.Vector{X: 100, Y: 100})
	spawnPlayer(t, w, cp.Vector{X: 200, Y: 100})

	kin, _ := ecs.Get(w, boss, component.KinematicsComponent.Kind())
	kin.Active = true

	require.NoError(t, NewTargetingSystem().Update(w))

	aim, _ := ecs.Get(w, boss, component.TargetingComponent.Kind())
	assert.True(t, aim.Found)
	assert.InDelta(t, 0, aim.Angle, 1e-9)
	assert.Equal(t, cp.Vector{X: 200, Y: 100}, aim.Target)
	assert.InDelta(t, 152.38, kin.X.TargetVelocity, 0.01)
	assert.InDelta(t, 152.38/0.3, kin.X.Acceleration, 0.05)
	assert.InDelta(t, 0, kin.Y.TargetVelocity, 1e-9)
}

func TestTargetingSystemLeavesIdleBossAlone(t *testing.T) {
	w := ecs.NewWorld()
	boss := spawnBoss(t, w, baseConfig(), cp.Vector{X: 100, Y: 100})

	require.NoError(t, NewTargetingSystem().Update(w))
	aim, _ := ecs.Get(w, boss, component.TargetingComponent.Kind())
	assert.False(t, aim.Found)

	spawnPlayer(t, w, cp.Vector{X: 200, Y: 100})
	require.NoError(t, NewTargetingSystem().Update(w))
	kin, _ := ecs.Get(w, boss, component.KinematicsComponent.Kind())
	assert.True(t, aim.Found)
	assert.Zero(t, kin.X.TargetVelocity)
}

// One chase frame of the reference scenario: the boss accelerates toward the
// player but the sub-unit move is only accumulated.
func TestChaseFrameScenario(t *testing.T) {
	h := newHarness(t)
	boss := spawnBoss(t, h.w, baseConfig(), cp.Vector{X: 100, Y: 100})
	spawnPlayer(t, h.w, cp.Vector{X: 200, Y: 100})

	h.step(0.016)

	kin, _ := ecs.Get(h.w, boss, component.KinematicsComponent.Kind())
	assert.True(t, kin.Active)
	assert.InDelta(t, 152.38, kin.X.TargetVelocity, 0.01)
	assert.InDelta(t, 8.13, kin.X.Velocity, 0.01)
	assert.InDelta(t, 0.195, kin.X.Displacement, 0.001)
	assert.InDelta(t, 0.195, kin.X.Correction, 0.001)
	assert.Equal(t, cp.Vector{X: 100, Y: 100}, h.body(boss).Center())
}
