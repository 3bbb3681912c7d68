package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"

	"github.com/milk9111/bossfight/ecs/component"
)

//go:embed *.json
var LevelsFS embed.FS

const DefaultTileSize = 16

// Level is a tile grid plus spawn markers. Each layer is a row-major
// Width*Height grid; a non-zero cell in a physics layer blocks movement and
// one in a hazard layer is a spike.
type Level struct {
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	TileSize  float64     `json:"tile_size,omitempty"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
}

type LayerMeta struct {
	Physics bool `json:"physics"`
	Hazard  bool `json:"hazard,omitempty"`
}

// Entity is a spawn marker in pixel coordinates. Bosses name their prefab in
// Props["prefab"].
type Entity struct {
	Type  string         `json:"type"`
	X     int            `json:"x"`
	Y     int            `json:"y"`
	Props map[string]any `json:"props,omitempty"`
}

func (e Entity) Prefab() string {
	if e.Props == nil {
		return ""
	}
	s, _ := e.Props["prefab"].(string)
	return s
}

// LoadLevelFromFS reads an embedded level; a bare name gets ".json".
func LoadLevelFromFS(name string) (*Level, error) {
	if path.Ext(name) == "" {
		name += ".json"
	}
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.validate(); err != nil {
		return nil, fmt.Errorf("level %s: %w", name, err)
	}
	return &lvl, nil
}

func (l *Level) validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", l.Width, l.Height)
	}
	if l.TileSize < 0 {
		return fmt.Errorf("invalid tile size %v", l.TileSize)
	}
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			return fmt.Errorf("layer %d has %d cells, want %d", i, len(layer), l.Width*l.Height)
		}
	}
	return nil
}

// TileMap flattens the physics and hazard layers. Solid wins over spike when
// both mark the same cell.
func (l *Level) TileMap() *component.TileMap {
	size := l.TileSize
	if size == 0 {
		size = DefaultTileSize
	}
	m := &component.TileMap{
		Width:    l.Width,
		Height:   l.Height,
		TileSize: size,
		Cells:    make([]component.TileKind, l.Width*l.Height),
	}
	for i, layer := range l.Layers {
		if i >= len(l.LayerMeta) {
			break
		}
		meta := l.LayerMeta[i]
		for idx, v := range layer {
			if v == 0 || idx >= len(m.Cells) {
				continue
			}
			switch {
			case meta.Physics:
				m.Cells[idx] = component.TileSolid
			case meta.Hazard && m.Cells[idx] == component.TileEmpty:
				m.Cells[idx] = component.TileSpike
			}
		}
	}
	return m
}

// EntitiesOfType returns the markers with the given type, in file order.
func (l *Level) EntitiesOfType(typ string) []Entity {
	var out []Entity
	for _, e := range l.Entities {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}
