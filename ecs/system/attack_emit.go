package system

import (
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

// AttackEmitSystem moves the spawns each boss decided this frame into the
// world event queue, where attack controllers drain them.
type AttackEmitSystem struct{}

func NewAttackEmitSystem() *AttackEmitSystem {
	return &AttackEmitSystem{}
}

func (s *AttackEmitSystem) Update(w *ecs.World) error {
	if w == nil {
		return nil
	}
	q := w.Events()
	ecs.ForEach(w, component.BossRuntimeComponent.Kind(), func(e ecs.Entity, rt *component.BossRuntime) {
		if len(rt.Pending) == 0 {
			return
		}
		if !faulted(w, e) {
			for _, spawn := range rt.Pending {
				q.Push(ecs.Event{Type: ecs.EventAttackSpawn, Entity: e, Frame: w.Frame(), Data: spawn})
			}
		}
		rt.Pending = rt.Pending[:0]
	})
	return nil
}
