package component

import "github.com/jakecoffman/cp"

// TileKind is the content of one level cell.
type TileKind int

const (
	TileEmpty TileKind = iota
	TileSolid
	TileSpike
)

func (k TileKind) String() string {
	switch k {
	case TileSolid:
		return "solid"
	case TileSpike:
		return "spike"
	default:
		return "empty"
	}
}

// Blocking reports whether the tile stops a moving body.
func (k TileKind) Blocking() bool {
	return k == TileSolid
}

// NeighborTile is one entry of a NeighborTileSet.
type NeighborTile struct {
	Box  cp.BB
	Kind TileKind
}

// NeighborTileSet maps tile boxes near an entity to their kind. It is an
// ordered slice so iteration, and therefore collision tie-breaks, are stable.
type NeighborTileSet []NeighborTile

// NeighborTiles holds the set rebuilt for an entity every frame.
type NeighborTiles struct {
	Set NeighborTileSet
}

var NeighborTilesComponent = NewComponent[NeighborTiles]()

// TileMap is the level grid. Cells are row-major, Width*Height long.
type TileMap struct {
	Width    int
	Height   int
	TileSize float64
	Cells    []TileKind
}

// At returns the kind at cell (x, y); outside the grid is empty.
func (m *TileMap) At(x, y int) TileKind {
	if m == nil || x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return TileEmpty
	}
	idx := y*m.Width + x
	if idx >= len(m.Cells) {
		return TileEmpty
	}
	return m.Cells[idx]
}

// CellBox returns the screen-space box of cell (x, y).
func (m *TileMap) CellBox(x, y int) cp.BB {
	x0 := float64(x) * m.TileSize
	y0 := float64(y) * m.TileSize
	return cp.BB{L: x0, B: y0, R: x0 + m.TileSize, T: y0 + m.TileSize}
}

// PixelSize returns the level extent in distance units.
func (m *TileMap) PixelSize() (float64, float64) {
	if m == nil {
		return 0, 0
	}
	return float64(m.Width) * m.TileSize, float64(m.Height) * m.TileSize
}

var TileMapComponent = NewComponent[TileMap]()
