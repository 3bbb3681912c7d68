package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wallTiles = component.NeighborTileSet{
	{Box: cp.BB{L: 100, B: 0, R: 132, T: 32}, Kind: component.TileSolid},
}

func boxAt(left, bottom float64) cp.BB {
	return cp.BB{L: left, B: bottom, R: left + 32, T: bottom + 32}
}

func TestResolveAxisTolerance(t *testing.T) {
	tests := []struct {
		name         string
		box          cp.BB
		displacement float64
		velocity     float64
		wantAllowed  float64
		wantContact  bool
		wantHit      bool
		wantRight    float64
	}{
		{name: "overlap below tolerance clamps", box: boxAt(79, 0), displacement: 1, velocity: 40, wantAllowed: 0, wantContact: true, wantHit: true, wantRight: 100},
		{name: "overlap at tolerance is free", box: boxAt(80, 0), displacement: 1, velocity: 40, wantAllowed: 1, wantHit: true, wantRight: 112},
		{name: "approach inside tolerance clamps", box: boxAt(63, 0), displacement: 6, velocity: 40, wantAllowed: 0, wantContact: true, wantHit: true, wantRight: 100},
		{name: "no overlap is free", box: boxAt(18, 0), displacement: 1, velocity: 40, wantAllowed: 1, wantRight: 50},
		{name: "edge touch is not a hit", box: boxAt(0, 32), displacement: 1, velocity: 40, wantAllowed: 1, wantRight: 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ResolveAxis(tt.box, tt.displacement, component.AxisX, tt.velocity, wallTiles, 12)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAllowed, res.Allowed)
			assert.Equal(t, tt.wantContact, res.Contact)
			assert.Equal(t, tt.wantHit, res.Hit)
			assert.Equal(t, tt.wantRight, res.Box.R)
		})
	}
}

func TestResolveAxisMovingAwayClearsCorrection(t *testing.T) {
	res, err := ResolveAxis(boxAt(73, 0), -1, component.AxisX, -40, wallTiles, 12)
	require.NoError(t, err)
	assert.False(t, res.Contact)
	assert.True(t, res.ClearCorrection)
	assert.Equal(t, -1.0, res.Allowed)
	assert.Equal(t, 73.0, res.Box.L)
}

func TestResolveAxisVertical(t *testing.T) {
	floor := component.NeighborTileSet{{Box: cp.BB{L: 0, B: 100, R: 64, T: 132}, Kind: component.TileSolid}}
	res, err := ResolveAxis(boxAt(10, 73), 2, component.AxisY, 30, floor, 12)
	require.NoError(t, err)
	assert.True(t, res.Contact)
	assert.Equal(t, 100.0, res.Box.T)
	assert.Equal(t, 10.0, res.Box.L)
}

func TestResolveAxisIgnoresNonBlockingTiles(t *testing.T) {
	spikes := component.NeighborTileSet{{Box: wallTiles[0].Box, Kind: component.TileSpike}}
	res, err := ResolveAxis(boxAt(79, 0), 1, component.AxisX, 40, spikes, 12)
	require.NoError(t, err)
	assert.False(t, res.Hit)
	assert.Equal(t, 1.0, res.Allowed)
}

func TestResolveAxisNearestTileWins(t *testing.T) {
	tiles := component.NeighborTileSet{
		{Box: cp.BB{L: 108, B: 0, R: 140, T: 32}, Kind: component.TileSolid},
		{Box: cp.BB{L: 104, B: 0, R: 136, T: 32}, Kind: component.TileSolid},
	}
	res, err := ResolveAxis(boxAt(73, 0), 4, component.AxisX, 40, tiles, 12)
	require.NoError(t, err)
	assert.True(t, res.Contact)
	assert.Equal(t, 104.0, res.Box.R)
}

func TestResolveAxisDegenerateBox(t *testing.T) {
	_, err := ResolveAxis(cp.BB{L: 10, B: 10, R: 10, T: 20}, 1, component.AxisX, 1, wallTiles, 12)
	assert.ErrorIs(t, err, ErrDegenerateBox)

	badTile := component.NeighborTileSet{{Box: cp.BB{L: 40, B: 0, R: 40, T: 32}, Kind: component.TileSolid}}
	_, err = ResolveAxis(boxAt(0, 0), 1, component.AxisX, 1, badTile, 12)
	assert.ErrorIs(t, err, ErrDegenerateBox)

	res, err := ResolveAxis(boxAt(0, 0), 3, component.AxisX, 1, nil, 12)
	require.NoError(t, err)
	assert.Equal(t, 3.0, res.Allowed)
}

func newMover(t *testing.T, w *ecs.World, body component.Body, tiles component.NeighborTileSet) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.BodyComponent.Kind(), &body))
	require.NoError(t, ecs.Add(w, e, component.KinematicsComponent.Kind(), &component.Kinematics{Active: true, TimeToReachVelocity: 0.3}))
	require.NoError(t, ecs.Add(w, e, component.NeighborTilesComponent.Kind(), &component.NeighborTiles{Set: tiles}))
	return e
}

func TestCollisionSystemAccumulatesSubUnitMoves(t *testing.T) {
	w := ecs.NewWorld()
	e := newMover(t, w, component.Body{W: 10, H: 10}, nil)
	kin, _ := ecs.Get(w, e, component.KinematicsComponent.Kind())
	body, _ := ecs.Get(w, e, component.BodyComponent.Kind())
	sys := NewCollisionSystem(discardLogger())

	kin.X.Velocity, kin.X.Displacement = 10, 0.6
	require.NoError(t, sys.Update(w))
	assert.Equal(t, 0.0, body.X)
	assert.InDelta(t, 0.6, kin.X.Correction, 1e-9)

	kin.X.Displacement = 0.6
	require.NoError(t, sys.Update(w))
	assert.Equal(t, 1.0, body.X)
	assert.InDelta(t, 0.2, kin.X.Correction, 1e-9)
	assert.Equal(t, 0.0, body.Y)
}

func TestCollisionSystemContactResetsAxis(t *testing.T) {
	w := ecs.NewWorld()
	e := newMover(t, w, component.Body{X: 75, Y: 0, W: 32, H: 32}, wallTiles)
	kin, _ := ecs.Get(w, e, component.KinematicsComponent.Kind())
	body, _ := ecs.Get(w, e, component.BodyComponent.Kind())

	kin.X = component.AxisState{Velocity: 50, TargetVelocity: 150, Acceleration: 300, Displacement: 2}
	kin.Y = component.AxisState{Correction: 0.5}

	require.NoError(t, NewCollisionSystem(discardLogger()).Update(w))

	assert.Equal(t, 68.0, body.X)
	assert.True(t, kin.X.Contact)
	assert.Zero(t, kin.X.Velocity)
	assert.Zero(t, kin.X.Correction)
	assert.InDelta(t, 150/0.3, kin.X.Acceleration, 1e-9)
	assert.Zero(t, kin.Y.Correction)
	assert.Equal(t, 0.0, body.Y)
}

func TestCollisionSystemKeepsRemainderNearUntouchedWall(t *testing.T) {
	w := ecs.NewWorld()
	e := newMover(t, w, component.Body{X: 73, Y: 0, W: 32, H: 32}, wallTiles)
	kin, _ := ecs.Get(w, e, component.KinematicsComponent.Kind())
	body, _ := ecs.Get(w, e, component.BodyComponent.Kind())
	sys := NewCollisionSystem(discardLogger())

	kin.X = component.AxisState{Velocity: -40, Displacement: -1.3}
	require.NoError(t, sys.Update(w))
	assert.Equal(t, 72.0, body.X)
	assert.InDelta(t, -0.3, kin.X.Correction, 1e-9)
	assert.False(t, kin.X.Contact)

	// Once the axis has been clamped, pulling away drops the remainder.
	kin.X.Contact = true
	kin.X.Displacement = -1.3
	require.NoError(t, sys.Update(w))
	assert.Equal(t, 71.0, body.X)
	assert.Zero(t, kin.X.Correction)
	assert.True(t, kin.X.Contact)
}

func TestCollisionSystemFaultsDegenerateBody(t *testing.T) {
	w := ecs.NewWorld()
	e := newMover(t, w, component.Body{W: 0, H: 10}, wallTiles)
	kin, _ := ecs.Get(w, e, component.KinematicsComponent.Kind())
	kin.X.Displacement = 2

	sys := NewCollisionSystem(discardLogger())
	err := sys.Update(w)
	require.ErrorIs(t, err, ErrDegenerateBox)

	fault, ok := ecs.Get(w, e, component.FaultComponent.Kind())
	require.True(t, ok)
	assert.ErrorIs(t, fault.Err, ErrDegenerateBox)

	kin.X.Displacement = 2
	assert.NoError(t, sys.Update(w))
}
