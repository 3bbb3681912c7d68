package system

import (
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

// TimerSystem counts down every boss timer by the frame's elapsed
// milliseconds. It runs last so a timer is never checked twice against the
// same expiry within a frame.
type TimerSystem struct{}

func NewTimerSystem() *TimerSystem {
	return &TimerSystem{}
}

func (s *TimerSystem) Update(w *ecs.World) error {
	if w == nil {
		return nil
	}
	dt := w.Delta()
	if dt <= 0 {
		return nil
	}
	ms := 1000 * dt
	ecs.ForEach(w, component.BossRuntimeComponent.Kind(), func(e ecs.Entity, rt *component.BossRuntime) {
		if faulted(w, e) {
			return
		}
		for _, t := range rt.Timers() {
			t.Tick(ms)
		}
	})
	return nil
}
