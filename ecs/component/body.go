package component

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Body is the axis-aligned box of an entity in screen space: X/Y is the
// top-left corner and y grows downward. Positions are kept on whole units.
type Body struct {
	X float64
	Y float64
	W float64
	H float64
}

// Box returns the body as a cp.BB (L/R span x, B/T span y top to bottom).
func (b Body) Box() cp.BB {
	return cp.BB{L: b.X, B: b.Y, R: b.X + b.W, T: b.Y + b.H}
}

// Center returns the midpoint of the box.
func (b Body) Center() cp.Vector {
	return cp.Vector{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// SetCenter moves the box so its midpoint sits on c, rounded to whole units.
func (b *Body) SetCenter(c cp.Vector) {
	b.X = math.Round(c.X - b.W/2)
	b.Y = math.Round(c.Y - b.H/2)
}

// SetBox moves the body to the top-left corner of bb, keeping its size.
func (b *Body) SetBox(bb cp.BB) {
	b.X = bb.L
	b.Y = bb.B
}

// Move shifts the body along one axis.
func (b *Body) Move(axis Axis, d float64) {
	if axis == AxisY {
		b.Y += d
		return
	}
	b.X += d
}

var BodyComponent = NewComponent[Body]()

// DefaultCollisionTolerance is the contact dead zone, in distance units,
// used when an entity class does not configure its own.
const DefaultCollisionTolerance = 12.0

// Collider marks an entity as colliding with tiles. Overlap strictly below
// Tolerance counts as contact.
type Collider struct {
	Tolerance float64
}

var ColliderComponent = NewComponent[Collider]()
