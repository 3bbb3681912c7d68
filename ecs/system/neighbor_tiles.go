package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

// NeighborTileSystem rebuilds every collider's NeighborTileSet from the
// level tile map. It runs before the simulation core each frame.
type NeighborTileSystem struct{}

func NewNeighborTileSystem() *NeighborTileSystem {
	return &NeighborTileSystem{}
}

func (s *NeighborTileSystem) Update(w *ecs.World) error {
	if w == nil {
		return nil
	}
	var tiles *component.TileMap
	if mapEnt, ok := ecs.First(w, component.TileMapComponent.Kind()); ok {
		tiles, _ = ecs.Get(w, mapEnt, component.TileMapComponent.Kind())
	}

	ecs.ForEach2(w, component.BodyComponent.Kind(), component.NeighborTilesComponent.Kind(), func(e ecs.Entity, body *component.Body, nt *component.NeighborTiles) {
		if faulted(w, e) {
			return
		}
		nt.Set = NeighborTilesFor(tiles, body.Box(), nt.Set[:0])
	})
	return nil
}

// NeighborTilesFor appends to dst every non-empty tile whose cell lies within
// one tile width of box on both axes.
func NeighborTilesFor(m *component.TileMap, box cp.BB, dst component.NeighborTileSet) component.NeighborTileSet {
	if m == nil || m.TileSize <= 0 {
		return dst
	}
	ts := m.TileSize
	x0 := int(math.Floor((box.L - ts) / ts))
	x1 := int(math.Ceil((box.R+ts)/ts)) - 1
	y0 := int(math.Floor((box.B - ts) / ts))
	y1 := int(math.Ceil((box.T+ts)/ts)) - 1

	x0, x1 = max(x0, 0), min(x1, m.Width-1)
	y0, y1 = max(y0, 0), min(y1, m.Height-1)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			kind := m.At(x, y)
			if kind == component.TileEmpty {
				continue
			}
			dst = append(dst, component.NeighborTile{Box: m.CellBox(x, y), Kind: kind})
		}
	}
	return dst
}
