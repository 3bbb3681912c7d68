package component

import "math"

// Axis selects the horizontal or vertical half of a Kinematics pair.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

// Other returns the orthogonal axis.
func (a Axis) Other() Axis {
	if a == AxisY {
		return AxisX
	}
	return AxisY
}

// AxisState is the integrator state of one axis.
type AxisState struct {
	Velocity       float64
	TargetVelocity float64
	Acceleration   float64
	// Displacement is the distance produced by the last Integrate.
	Displacement float64
	// Correction holds sub-unit displacement not yet applied to position.
	Correction float64
	// Contact is set while the axis is clamped against a tile.
	Contact bool
}

// Retarget sets a new target velocity. The acceleration ramp is rederived
// only when the target actually changes.
func (a *AxisState) Retarget(target, timeToReach float64) {
	if target == a.TargetVelocity {
		return
	}
	a.TargetVelocity = target
	a.Acceleration = rampAcceleration(target, a.Velocity, timeToReach)
}

// Integrate advances the axis by dt seconds and returns the frame
// displacement s = v*dt + a*dt²/2. The velocity never overshoots the target.
func (a *AxisState) Integrate(dt float64) float64 {
	if dt <= 0 {
		a.Displacement = 0
		return 0
	}
	if math.Abs(a.Velocity) < math.Abs(a.TargetVelocity) {
		a.Velocity += a.Acceleration * dt
	}
	if math.Abs(a.Velocity) > math.Abs(a.TargetVelocity) {
		a.Velocity = a.TargetVelocity
	}
	a.Displacement = a.Velocity*dt + 0.5*a.Acceleration*dt*dt
	return a.Displacement
}

// Reset zeroes the velocity and starts a fresh ramp toward the current,
// possibly stale, target.
func (a *AxisState) Reset(timeToReach float64) {
	a.Velocity = 0
	a.Displacement = 0
	a.Acceleration = rampAcceleration(a.TargetVelocity, 0, timeToReach)
}

func rampAcceleration(target, current, timeToReach float64) float64 {
	if timeToReach <= 0 {
		return 0
	}
	return (target - current) / timeToReach
}

// Kinematics pairs the two axis integrators of a mobile entity.
type Kinematics struct {
	X AxisState
	Y AxisState
	// TimeToReachVelocity is the seconds a fresh ramp takes to hit target.
	TimeToReachVelocity float64
	// Active is true while the entity is homing; inactive kinematics are
	// neither integrated nor collision-resolved.
	Active bool
}

// Axis returns the state of the requested axis.
func (k *Kinematics) Axis(a Axis) *AxisState {
	if a == AxisY {
		return &k.Y
	}
	return &k.X
}

// Stop clears both axes, target included, and deactivates homing.
func (k *Kinematics) Stop() {
	k.X = AxisState{}
	k.Y = AxisState{}
	k.Active = false
}

var KinematicsComponent = NewComponent[Kinematics]()
