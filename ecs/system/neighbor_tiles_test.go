package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTileMap() *component.TileMap {
	m := &component.TileMap{Width: 10, Height: 10, TileSize: 16, Cells: make([]component.TileKind, 100)}
	set := func(x, y int, k component.TileKind) { m.Cells[y*m.Width+x] = k }
	set(4, 5, component.TileSolid)
	set(6, 5, component.TileSpike)
	set(8, 5, component.TileSolid)
	set(5, 3, component.TileSolid)
	return m
}

func TestNeighborTilesFor(t *testing.T) {
	m := testTileMap()
	box := cp.BB{L: 80, B: 80, R: 96, T: 96}

	got := NeighborTilesFor(m, box, nil)
	require.Len(t, got, 2)
	assert.Equal(t, component.NeighborTile{Box: cp.BB{L: 64, B: 80, R: 80, T: 96}, Kind: component.TileSolid}, got[0])
	assert.Equal(t, component.NeighborTile{Box: cp.BB{L: 96, B: 80, R: 112, T: 96}, Kind: component.TileSpike}, got[1])

	assert.Empty(t, NeighborTilesFor(nil, box, nil))
	assert.Empty(t, NeighborTilesFor(m, cp.BB{L: -200, B: -200, R: -180, T: -180}, nil))
}

func TestNeighborTileSystem(t *testing.T) {
	w := ecs.NewWorld()
	mapEnt := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, mapEnt, component.TileMapComponent.Kind(), testTileMap()))

	e := newMover(t, w, component.Body{X: 80, Y: 80, W: 16, H: 16}, nil)
	require.NoError(t, NewNeighborTileSystem().Update(w))

	nt, _ := ecs.Get(w, e, component.NeighborTilesComponent.Kind())
	assert.Len(t, nt.Set, 2)

	body, _ := ecs.Get(w, e, component.BodyComponent.Kind())
	body.X, body.Y = 0, 0
	require.NoError(t, NewNeighborTileSystem().Update(w))
	assert.Empty(t, nt.Set)
}
