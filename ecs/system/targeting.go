package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

// AngleTo returns the heading from self to target in [0, 2π). The y delta
// is negated because screen coordinates grow downward.
func AngleTo(self, target cp.Vector) float64 {
	angle := math.Atan2(-(target.Y - self.Y), target.X-self.X)
	angle = math.Mod(angle, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}

// TargetVelocity solves s = (u+v)t/2 for v with u = 0, covering the travel
// distance along angle in timeToTravel seconds. The result is in screen
// coordinates, so a positive angle sine yields an upward (negative y) speed.
func TargetVelocity(angle, travelDistance, timeToTravel float64) (vx, vy float64) {
	if timeToTravel <= 0 {
		return 0, 0
	}
	dx := travelDistance * math.Cos(angle)
	dy := travelDistance * math.Sin(angle)
	vx = 2 * dx / (2 * timeToTravel)
	vy = -(2 * dy / (2 * timeToTravel))
	return vx, vy
}

// Retarget points both axes of k at the velocity implied by angle.
func Retarget(k *component.Kinematics, cfg *component.BossConfig, angle float64) {
	if k == nil || cfg == nil {
		return
	}
	vx, vy := TargetVelocity(angle, cfg.TravelDistance, cfg.TimeToTravel)
	k.X.Retarget(vx, k.TimeToReachVelocity)
	k.Y.Retarget(vy, k.TimeToReachVelocity)
}

// TargetingSystem recomputes every boss's heading toward the player and, for
// bosses currently homing, their target velocities.
type TargetingSystem struct{}

func NewTargetingSystem() *TargetingSystem {
	return &TargetingSystem{}
}

func (s *TargetingSystem) Update(w *ecs.World) error {
	if w == nil {
		return nil
	}
	player, found := playerPosition(w)

	ecs.ForEach2(w, component.BodyComponent.Kind(), component.TargetingComponent.Kind(), func(e ecs.Entity, body *component.Body, t *component.Targeting) {
		if faulted(w, e) {
			return
		}
		t.Found = found
		if !found {
			return
		}
		t.Target = player
		t.Angle = AngleTo(body.Center(), player)

		kin, ok := ecs.Get(w, e, component.KinematicsComponent.Kind())
		if !ok || !kin.Active {
			return
		}
		cfg, _ := ecs.Get(w, e, component.BossConfigComponent.Kind())
		Retarget(kin, cfg, t.Angle)
	})
	return nil
}

func playerPosition(w *ecs.World) (cp.Vector, bool) {
	playerEnt, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	tr, ok := ecs.Get(w, playerEnt, component.TransformComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	return tr.Vector(), true
}
