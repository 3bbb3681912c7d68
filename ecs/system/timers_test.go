package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerSystemTicksEveryBossTimer(t *testing.T) {
	w := ecs.NewWorld()
	boss := spawnBoss(t, w, baseConfig(), cp.Vector{X: 50, Y: 50})
	rt, _ := ecs.Get(w, boss, component.BossRuntimeComponent.Kind())
	rest := &component.RestState{}
	rest.Duration.Start(80)
	rt.State = rest
	rt.Ranged.Start(100)
	rt.Cooldown(component.AttackDive).Start(30)

	w.SetDelta(0.05)
	require.NoError(t, NewTimerSystem().Update(w))

	assert.InDelta(t, 50, rt.Ranged.Remaining(), 1e-9)
	assert.InDelta(t, 30, rest.Duration.Remaining(), 1e-9)
	assert.False(t, rt.Cooldown(component.AttackDive).Active())
	assert.False(t, rt.NoAction.Active())

	w.SetDelta(0)
	require.NoError(t, NewTimerSystem().Update(w))
	assert.InDelta(t, 50, rt.Ranged.Remaining(), 1e-9)
}

func TestAttackEmitSystemFlushesPending(t *testing.T) {
	w := ecs.NewWorld()
	boss := spawnBoss(t, w, baseConfig(), cp.Vector{X: 50, Y: 50})
	rt, _ := ecs.Get(w, boss, component.BossRuntimeComponent.Kind())
	rt.Pending = append(rt.Pending,
		component.AttackSpawn{Kind: component.AttackProjectile, Damage: 1},
		component.AttackSpawn{Kind: component.AttackBurst, Damage: 2},
	)

	require.NoError(t, NewAttackEmitSystem().Update(w))
	assert.Empty(t, rt.Pending)

	evts := w.Events().Drain()
	require.Len(t, evts, 2)
	for i, kind := range []component.AttackKind{component.AttackProjectile, component.AttackBurst} {
		assert.Equal(t, ecs.EventAttackSpawn, evts[i].Type)
		assert.Equal(t, boss, evts[i].Entity)
		assert.Equal(t, kind, evts[i].Data.(component.AttackSpawn).Kind)
	}
}

func TestMotionSystemSkipsInactiveKinematics(t *testing.T) {
	w := ecs.NewWorld()
	e := newMover(t, w, component.Body{W: 10, H: 10}, nil)
	kin, _ := ecs.Get(w, e, component.KinematicsComponent.Kind())
	kin.X.Retarget(100, 0.5)

	w.SetDelta(0.1)
	sys := NewMotionSystem()
	require.NoError(t, sys.Update(w))
	assert.InDelta(t, 20, kin.X.Velocity, 1e-9)

	kin.Active = false
	require.NoError(t, sys.Update(w))
	assert.InDelta(t, 20, kin.X.Velocity, 1e-9)
}
