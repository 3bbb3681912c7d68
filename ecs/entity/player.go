package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

// NewPlayer spawns the tracked point bosses chase.
func NewPlayer(w *ecs.World, at cp.Vector) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}
	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: at.X, Y: at.Y}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}
	return entity, nil
}

// MovePlayer updates the first player's position.
func MovePlayer(w *ecs.World, to cp.Vector) bool {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return false
	}
	t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return false
	}
	t.X, t.Y = to.X, to.Y
	return true
}
