package component

import "github.com/jakecoffman/cp"

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type BossTag struct{}

var BossTagComponent = NewComponent[BossTag]()

// Transform is a tracked point with no extent, e.g. the player position fed
// in by the host every frame.
type Transform struct {
	X float64
	Y float64
}

func (t Transform) Vector() cp.Vector {
	return cp.Vector{X: t.X, Y: t.Y}
}

var TransformComponent = NewComponent[Transform]()

// Targeting is the output of the targeting model for one frame.
type Targeting struct {
	// Angle points from the entity center to the target, in [0, 2π), with
	// y flipped so angles grow counter-clockwise on screen.
	Angle float64
	// Target is the tracked point the angle was computed against.
	Target cp.Vector
	Found  bool
}

var TargetingComponent = NewComponent[Targeting]()

// Fault marks an entity whose update was aborted. Systems skip faulted
// entities so a broken invariant does not leak into later frames.
type Fault struct {
	Err   error
	Frame uint64
}

var FaultComponent = NewComponent[Fault]()
