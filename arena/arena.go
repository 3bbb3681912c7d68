// Package arena wires the boss simulation into a single per-frame entry
// point for game loops, tools and tests.
package arena

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/ecs/entity"
	"github.com/milk9111/bossfight/ecs/system"
	"github.com/milk9111/bossfight/levels"
	"github.com/milk9111/bossfight/prefabs"
)

const DefaultLevel = "arena.json"

type Options struct {
	// Level is the embedded level file. Defaults to DefaultLevel.
	Level string
	// Configs replaces the prefab of any boss whose prefab name matches.
	Configs map[string]*component.BossConfig
	Logger  *slog.Logger
	// NewID stamps attack spawns. Defaults to uuid.New.
	NewID func() uuid.UUID
}

type Arena struct {
	world     *ecs.World
	sched     *ecs.Scheduler
	behavior  *system.BehaviorSystem
	level     *levels.Level
	levelName string
	logger    *slog.Logger
}

// BossView is a read-only snapshot of one boss for renderers, animators
// and UI.
type BossView struct {
	Entity        ecs.Entity
	Name          string
	Box           cp.BB
	Center        cp.Vector
	State         component.BehaviorKind
	Stage         component.DiveStage
	HasStage      bool
	StageProgress float64
	Health        int
	MaxHealth     int
	Energy        float64
	MaxEnergy     float64
	Angle         float64
	Faulted       bool
}

func New(opts Options) (*Arena, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	name := opts.Level
	if name == "" {
		name = DefaultLevel
	}
	lvl, err := levels.LoadLevelFromFS(name)
	if err != nil {
		return nil, fmt.Errorf("arena: %w", err)
	}

	w := ecs.NewWorld()
	bosses, err := entity.LoadLevel(w, lvl, opts.Configs)
	if err != nil {
		return nil, fmt.Errorf("arena: %w", err)
	}

	behavior := system.NewBehaviorSystem(logger)
	if opts.NewID != nil {
		behavior.NewID = opts.NewID
	}
	sched := ecs.NewScheduler(
		system.NewNeighborTileSystem(),
		system.NewTargetingSystem(),
		behavior,
		system.NewMotionSystem(),
		system.NewCollisionSystem(logger),
		system.NewAttackEmitSystem(),
		system.NewTimerSystem(),
	)

	logger.Info("arena loaded", "level", name, "bosses", len(bosses))
	return &Arena{world: w, sched: sched, behavior: behavior, level: lvl, levelName: name, logger: logger}, nil
}

// Step advances the simulation by dt seconds with the player at player and
// returns every event the frame produced. A non-nil error lists bosses whose
// update was aborted; the others advanced normally.
func (a *Arena) Step(dt float64, player cp.Vector) ([]ecs.Event, error) {
	if !entity.MovePlayer(a.world, player) {
		if _, err := entity.NewPlayer(a.world, player); err != nil {
			return nil, fmt.Errorf("arena: %w", err)
		}
	}
	a.world.SetDelta(dt)
	err := a.sched.Update(a.world)
	return a.world.Events().Drain(), err
}

func (a *Arena) Bosses() []BossView {
	var out []BossView
	ecs.ForEach2(a.world, component.BossConfigComponent.Kind(), component.BossRuntimeComponent.Kind(), func(e ecs.Entity, cfg *component.BossConfig, rt *component.BossRuntime) {
		out = append(out, a.view(e, cfg, rt))
	})
	return out
}

func (a *Arena) Boss(e ecs.Entity) (BossView, bool) {
	cfg, ok := ecs.Get(a.world, e, component.BossConfigComponent.Kind())
	if !ok {
		return BossView{}, false
	}
	rt, ok := ecs.Get(a.world, e, component.BossRuntimeComponent.Kind())
	if !ok {
		return BossView{}, false
	}
	return a.view(e, cfg, rt), true
}

func (a *Arena) view(e ecs.Entity, cfg *component.BossConfig, rt *component.BossRuntime) BossView {
	v := BossView{Entity: e, Name: cfg.Name, State: rt.Kind()}
	v.Stage, v.HasStage = rt.Stage()
	if rt.State != nil {
		if timers := rt.State.Timers(); len(timers) > 0 {
			v.StageProgress = timers[0].Progress()
		}
	}
	if body, ok := ecs.Get(a.world, e, component.BodyComponent.Kind()); ok {
		v.Box = body.Box()
		v.Center = body.Center()
	}
	if h, ok := ecs.Get(a.world, e, component.HealthComponent.Kind()); ok {
		v.Health, v.MaxHealth = h.Current, h.Max
	}
	if en, ok := ecs.Get(a.world, e, component.EnergyComponent.Kind()); ok {
		v.Energy, v.MaxEnergy = en.Current, en.Max
	}
	if t, ok := ecs.Get(a.world, e, component.TargetingComponent.Kind()); ok {
		v.Angle = t.Angle
	}
	v.Faulted = ecs.Has(a.world, e, component.FaultComponent.Kind())
	return v
}

// Damage applies a player hit. Death is evaluated on the next Step.
func (a *Arena) Damage(boss ecs.Entity, amount int) bool {
	h, ok := ecs.Get(a.world, boss, component.HealthComponent.Kind())
	if !ok {
		return false
	}
	return h.ApplyDamage(amount)
}

// Remove takes a boss out of the simulation, typically after its defeat
// event.
func (a *Arena) Remove(boss ecs.Entity) bool {
	if !ecs.Has(a.world, boss, component.BossTagComponent.Kind()) {
		return false
	}
	return ecs.DestroyEntity(a.world, boss)
}

// Respawn reloads a boss prefab and replaces every live boss built from it,
// keeping each one's place on the field. A boss caught mid-attack respawns
// where that attack would have returned it.
func (a *Arena) Respawn(prefab string) (int, error) {
	cfg, err := prefabs.LoadBossConfig(prefab)
	if err != nil {
		return 0, fmt.Errorf("arena: respawn %s: %w", prefab, err)
	}
	if err := entity.CheckSentinel(a.TileMap(), cfg); err != nil {
		return 0, fmt.Errorf("arena: respawn %s: %w", prefab, err)
	}
	var replaced []ecs.Entity
	ecs.ForEach2(a.world, component.BossConfigComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, old *component.BossConfig, _ *component.Body) {
		if old.Name == cfg.Name {
			replaced = append(replaced, e)
		}
	})
	for _, e := range replaced {
		body, _ := ecs.Get(a.world, e, component.BodyComponent.Kind())
		at := body.Center()
		if rt, ok := ecs.Get(a.world, e, component.BossRuntimeComponent.Kind()); ok {
			at = component.FieldCenter(rt.State, at)
		}
		ecs.DestroyEntity(a.world, e)
		if _, err := entity.NewBossFromConfig(a.world, cfg, at); err != nil {
			return 0, fmt.Errorf("arena: respawn %s: %w", prefab, err)
		}
	}
	a.logger.Info("boss prefab reloaded", "prefab", prefab, "replaced", len(replaced))
	return len(replaced), nil
}

func (a *Arena) TileMap() *component.TileMap {
	e, ok := ecs.First(a.world, component.TileMapComponent.Kind())
	if !ok {
		return nil
	}
	m, _ := ecs.Get(a.world, e, component.TileMapComponent.Kind())
	return m
}

func (a *Arena) Frame() uint64 {
	return a.world.Frame()
}

// PlayerSpawn returns the level's player marker, or the map centre.
func (a *Arena) PlayerSpawn() cp.Vector {
	if markers := a.level.EntitiesOfType("player"); len(markers) > 0 {
		return cp.Vector{X: float64(markers[0].X), Y: float64(markers[0].Y)}
	}
	w, h := a.level.TileMap().PixelSize()
	return cp.Vector{X: w / 2, Y: h / 2}
}
