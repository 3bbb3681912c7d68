package system

import (
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

// MotionSystem integrates both kinematic axes of every homing entity.
type MotionSystem struct{}

func NewMotionSystem() *MotionSystem {
	return &MotionSystem{}
}

func (s *MotionSystem) Update(w *ecs.World) error {
	if w == nil {
		return nil
	}
	dt := w.Delta()
	ecs.ForEach(w, component.KinematicsComponent.Kind(), func(e ecs.Entity, k *component.Kinematics) {
		if !k.Active || faulted(w, e) {
			return
		}
		k.X.Integrate(dt)
		k.Y.Integrate(dt)
	})
	return nil
}
