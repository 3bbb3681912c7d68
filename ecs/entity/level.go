package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/levels"
	"github.com/milk9111/bossfight/prefabs"
)

// LoadLevel adds the level tile map and spawns its player and bosses.
// Bosses whose prefab is listed in overrides use that config instead.
func LoadLevel(w *ecs.World, lvl *levels.Level, overrides map[string]*component.BossConfig) ([]ecs.Entity, error) {
	if lvl == nil {
		return nil, fmt.Errorf("level: nil level")
	}
	tileMap := lvl.TileMap()
	tiles := ecs.CreateEntity(w)
	if err := ecs.Add(w, tiles, component.TileMapComponent.Kind(), tileMap); err != nil {
		return nil, fmt.Errorf("level: add tile map: %w", err)
	}

	for _, marker := range lvl.EntitiesOfType("player") {
		if _, err := NewPlayer(w, markerPos(marker)); err != nil {
			return nil, err
		}
		break
	}

	var bosses []ecs.Entity
	for _, marker := range lvl.EntitiesOfType("boss") {
		name := marker.Prefab()
		if name == "" {
			return nil, fmt.Errorf("level: boss at (%d,%d) has no prefab", marker.X, marker.Y)
		}
		var (
			boss ecs.Entity
			err  error
		)
		cfg, ok := overrides[name]
		if !ok {
			if cfg, err = prefabs.LoadBossConfig(name); err != nil {
				return nil, fmt.Errorf("level: spawn %s: boss: load spec: %w", name, err)
			}
		}
		if err = CheckSentinel(tileMap, cfg); err != nil {
			return nil, fmt.Errorf("level: spawn %s: %w", name, err)
		}
		boss, err = NewBossFromConfig(w, cfg, markerPos(marker))
		if err != nil {
			return nil, fmt.Errorf("level: spawn %s: %w", name, err)
		}
		bosses = append(bosses, boss)
	}
	return bosses, nil
}

func markerPos(e levels.Entity) cp.Vector {
	return cp.Vector{X: float64(e.X), Y: float64(e.Y)}
}

// CheckSentinel rejects a boss whose off-field waiting point lies on the
// level, where a diving boss would stay visible and collide.
func CheckSentinel(m *component.TileMap, cfg *component.BossConfig) error {
	if m == nil || cfg == nil {
		return nil
	}
	w, h := m.PixelSize()
	p := cfg.Sentinel
	if p.X < 0 || p.Y < 0 || p.X > w || p.Y > h {
		return nil
	}
	return fmt.Errorf("boss %s: sentinel (%g,%g) is inside the %gx%g level", cfg.Name, p.X, p.Y, w, h)
}
