package system

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func baseConfig() *component.BossConfig {
	return &component.BossConfig{
		Name:                "test",
		Width:               32,
		Height:              32,
		MaxHealth:           10,
		MaxEnergy:           100,
		TravelDistance:      64,
		TimeToTravel:        0.42,
		TimeToReachVelocity: 0.3,
		Tolerance:           component.DefaultCollisionTolerance,
		RestMS:              100,
		DeathMS:             100,
		Sentinel:            cp.Vector{X: -1000, Y: -1000},
	}
}

func diveConfig() *component.BossConfig {
	cfg := baseConfig()
	cfg.Dive = component.DiveAttackConfig{
		Enabled:    true,
		LaunchMS:   100,
		TargetMS:   100,
		LandMS:     100,
		CooldownMS: 1000,
		EnergyCost: 30,
		Damage:     3,
	}
	return cfg
}

func spawnBoss(t *testing.T, w *ecs.World, cfg *component.BossConfig, center cp.Vector) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	body := &component.Body{W: cfg.Width, H: cfg.Height}
	body.SetCenter(center)

	require.NoError(t, ecs.Add(w, e, component.BossTagComponent.Kind(), &component.BossTag{}))
	require.NoError(t, ecs.Add(w, e, component.BodyComponent.Kind(), body))
	require.NoError(t, ecs.Add(w, e, component.KinematicsComponent.Kind(), &component.Kinematics{TimeToReachVelocity: cfg.TimeToReachVelocity}))
	require.NoError(t, ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Tolerance: cfg.Tolerance}))
	require.NoError(t, ecs.Add(w, e, component.NeighborTilesComponent.Kind(), &component.NeighborTiles{}))
	require.NoError(t, ecs.Add(w, e, component.HealthComponent.Kind(), component.NewHealth(cfg.MaxHealth)))
	require.NoError(t, ecs.Add(w, e, component.EnergyComponent.Kind(), component.NewEnergy(cfg.MaxEnergy)))
	require.NoError(t, ecs.Add(w, e, component.TargetingComponent.Kind(), &component.Targeting{}))
	require.NoError(t, ecs.Add(w, e, component.BossConfigComponent.Kind(), cfg))
	require.NoError(t, ecs.Add(w, e, component.BossRuntimeComponent.Kind(), &component.BossRuntime{}))
	return e
}

func spawnPlayer(t *testing.T, w *ecs.World, pos cp.Vector) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y}))
	return e
}

func movePlayer(t *testing.T, w *ecs.World, player ecs.Entity, pos cp.Vector) {
	t.Helper()
	tr, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	require.True(t, ok)
	tr.X, tr.Y = pos.X, pos.Y
}

// fixedIDs returns an ID source that counts up from 1.
func fixedIDs() func() uuid.UUID {
	var n byte
	return func() uuid.UUID {
		n++
		var id uuid.UUID
		id[15] = n
		return id
	}
}

func frameScheduler(behavior *BehaviorSystem) *ecs.Scheduler {
	return ecs.NewScheduler(
		NewNeighborTileSystem(),
		NewTargetingSystem(),
		behavior,
		NewMotionSystem(),
		NewCollisionSystem(discardLogger()),
		NewAttackEmitSystem(),
		NewTimerSystem(),
	)
}

type harness struct {
	t        *testing.T
	w        *ecs.World
	sched    *ecs.Scheduler
	behavior *BehaviorSystem
	events   []ecs.Event
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	bs := NewBehaviorSystem(discardLogger())
	bs.NewID = fixedIDs()
	return &harness{t: t, w: ecs.NewWorld(), sched: frameScheduler(bs), behavior: bs}
}

// step runs one frame and returns the events it produced.
func (h *harness) step(dt float64) []ecs.Event {
	h.t.Helper()
	h.w.SetDelta(dt)
	require.NoError(h.t, h.sched.Update(h.w))
	evts := h.w.Events().Drain()
	h.events = append(h.events, evts...)
	return evts
}

func (h *harness) runtime(e ecs.Entity) *component.BossRuntime {
	h.t.Helper()
	rt, ok := ecs.Get(h.w, e, component.BossRuntimeComponent.Kind())
	require.True(h.t, ok)
	return rt
}

func (h *harness) body(e ecs.Entity) *component.Body {
	h.t.Helper()
	b, ok := ecs.Get(h.w, e, component.BodyComponent.Kind())
	require.True(h.t, ok)
	return b
}

func ofType(evts []ecs.Event, typ ecs.EventType) []ecs.Event {
	var out []ecs.Event
	for _, e := range evts {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

// behaviorLabels flattens behavior changes into state names, using the dive
// stage in place of the dive state.
func behaviorLabels(evts []ecs.Event) []string {
	var out []string
	for _, e := range ofType(evts, ecs.EventBehaviorChanged) {
		change := e.Data.(component.BehaviorChange)
		if change.To == component.BehaviorDiveAttack {
			out = append(out, change.Stage.String())
			continue
		}
		out = append(out, change.To.String())
	}
	return out
}
