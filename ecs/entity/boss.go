package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/prefabs"
)

// NewBoss spawns the boss described by the named prefab centred on at.
func NewBoss(w *ecs.World, prefab string, at cp.Vector) (ecs.Entity, error) {
	cfg, err := prefabs.LoadBossConfig(prefab)
	if err != nil {
		return 0, fmt.Errorf("boss: load spec: %w", err)
	}
	return NewBossFromConfig(w, cfg, at)
}

// NewBossFromConfig spawns a boss in Chase with full health and energy. The
// start delay holds off special attacks for the boss's first moments.
func NewBossFromConfig(w *ecs.World, cfg *component.BossConfig, at cp.Vector) (ecs.Entity, error) {
	if cfg == nil {
		return 0, fmt.Errorf("boss: nil config")
	}
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.BossTagComponent.Kind(), &component.BossTag{}); err != nil {
		return 0, fmt.Errorf("boss: add boss tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.BossConfigComponent.Kind(), cfg); err != nil {
		return 0, fmt.Errorf("boss: add config: %w", err)
	}

	runtime := &component.BossRuntime{State: &component.ChaseState{}}
	runtime.NoAction.Start(cfg.StartDelayMS)
	if err := ecs.Add(w, entity, component.BossRuntimeComponent.Kind(), runtime); err != nil {
		return 0, fmt.Errorf("boss: add runtime: %w", err)
	}

	body := &component.Body{W: cfg.Width, H: cfg.Height}
	body.SetCenter(at)
	if err := ecs.Add(w, entity, component.BodyComponent.Kind(), body); err != nil {
		return 0, fmt.Errorf("boss: add body: %w", err)
	}

	if err := ecs.Add(w, entity, component.KinematicsComponent.Kind(), &component.Kinematics{
		TimeToReachVelocity: cfg.TimeToReachVelocity,
		Active:              true,
	}); err != nil {
		return 0, fmt.Errorf("boss: add kinematics: %w", err)
	}

	if err := ecs.Add(w, entity, component.ColliderComponent.Kind(), &component.Collider{Tolerance: cfg.Tolerance}); err != nil {
		return 0, fmt.Errorf("boss: add collider: %w", err)
	}

	if err := ecs.Add(w, entity, component.NeighborTilesComponent.Kind(), &component.NeighborTiles{}); err != nil {
		return 0, fmt.Errorf("boss: add neighbor tiles: %w", err)
	}

	if err := ecs.Add(w, entity, component.HealthComponent.Kind(), component.NewHealth(cfg.MaxHealth)); err != nil {
		return 0, fmt.Errorf("boss: add health: %w", err)
	}

	if err := ecs.Add(w, entity, component.EnergyComponent.Kind(), component.NewEnergy(cfg.MaxEnergy)); err != nil {
		return 0, fmt.Errorf("boss: add energy: %w", err)
	}

	if err := ecs.Add(w, entity, component.TargetingComponent.Kind(), &component.Targeting{}); err != nil {
		return 0, fmt.Errorf("boss: add targeting: %w", err)
	}

	return entity, nil
}
