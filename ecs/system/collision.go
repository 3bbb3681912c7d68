package system

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

var ErrDegenerateBox = errors.New("system: zero-area bounding box")

// Resolution is the outcome of probing one axis of a move against the
// neighbouring tiles.
type Resolution struct {
	// Box is the entity box after any clamp. Allowed is applied on top of it.
	Box     cp.BB
	Allowed float64
	// Contact reports a hard clamp against a tile the entity was moving into.
	Contact bool
	// ClearCorrection asks the caller to drop the axis' sub-unit accumulator
	// because the entity is pulling away from a tile it was touching.
	ClearCorrection bool
	// Hit reports that either probe overlapped a blocking tile.
	Hit bool
}

type sideHit struct {
	tile cp.BB
	gap  float64
	ok   bool
}

// ResolveAxis decides how much of displacement may be applied along axis.
// The box is probed |displacement| units in both directions; the nearest
// blocking tile on each side is compared against tolerance.
func ResolveAxis(box cp.BB, displacement float64, axis component.Axis, velocity float64, tiles component.NeighborTileSet, tolerance float64) (Resolution, error) {
	res := Resolution{Box: box, Allowed: displacement}
	if degenerate(box) {
		return res, fmt.Errorf("%w: entity %v", ErrDegenerateBox, box)
	}
	if displacement == 0 || len(tiles) == 0 {
		return res, nil
	}

	dist := math.Abs(displacement)
	plus, err := probe(box, shift(box, axis, dist), axis, 1, tiles)
	if err != nil {
		return res, err
	}
	minus, err := probe(box, shift(box, axis, -dist), axis, -1, tiles)
	if err != nil {
		return res, err
	}
	res.Hit = plus.ok || minus.ok
	if !res.Hit {
		return res, nil
	}

	dir := sign(velocity)
	if dir == 0 {
		dir = sign(displacement)
	}

	for _, side := range []struct {
		hit sideHit
		dir float64
	}{{plus, 1}, {minus, -1}} {
		if !side.hit.ok || side.hit.gap >= tolerance {
			continue
		}
		if side.dir == dir {
			res.Box = clampTo(box, side.hit.tile, axis, side.dir)
			res.Allowed = 0
			res.Contact = true
			continue
		}
		res.ClearCorrection = true
	}
	if res.Contact {
		res.ClearCorrection = false
	}
	return res, nil
}

// probe finds the blocking tile on the dir side of box that the shifted box
// overlaps and whose facing edge is nearest.
func probe(box, shifted cp.BB, axis component.Axis, dir float64, tiles component.NeighborTileSet) (sideHit, error) {
	var best sideHit
	center := axisCenter(box, axis)
	for _, t := range tiles {
		if !t.Kind.Blocking() {
			continue
		}
		if degenerate(t.Box) {
			return best, fmt.Errorf("%w: tile %v", ErrDegenerateBox, t.Box)
		}
		if !overlaps(shifted, t.Box) {
			continue
		}
		if (axisCenter(t.Box, axis)-center)*dir < 0 {
			continue
		}
		gap := math.Abs(facingEdge(box, axis, dir) - facingEdge(t.Box, axis, -dir))
		if !best.ok || gap < best.gap {
			best = sideHit{tile: t.Box, gap: gap, ok: true}
		}
	}
	return best, nil
}

// CollisionSystem applies each axis' frame displacement to the entity body.
// Moves under one unit are accumulated instead of probed.
type CollisionSystem struct {
	Logger *slog.Logger
}

func NewCollisionSystem(logger *slog.Logger) *CollisionSystem {
	return &CollisionSystem{Logger: logger}
}

func (s *CollisionSystem) Update(w *ecs.World) error {
	if w == nil {
		return nil
	}
	var errs []error
	ecs.ForEach2(w, component.BodyComponent.Kind(), component.KinematicsComponent.Kind(), func(e ecs.Entity, body *component.Body, k *component.Kinematics) {
		if !k.Active || faulted(w, e) {
			return
		}
		tol := component.DefaultCollisionTolerance
		if c, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok && c.Tolerance > 0 {
			tol = c.Tolerance
		}
		var tiles component.NeighborTileSet
		if nt, ok := ecs.Get(w, e, component.NeighborTilesComponent.Kind()); ok {
			tiles = nt.Set
		}
		for _, axis := range []component.Axis{component.AxisX, component.AxisY} {
			if err := moveAxis(body, k, axis, tiles, tol); err != nil {
				err = fmt.Errorf("collision %s axis %s: %w", e, axis, err)
				markFault(w, s.Logger, e, err)
				errs = append(errs, err)
				return
			}
		}
	})
	return errors.Join(errs...)
}

func moveAxis(body *component.Body, k *component.Kinematics, axis component.Axis, tiles component.NeighborTileSet, tol float64) error {
	st := k.Axis(axis)
	touching := st.Contact
	total := st.Correction + st.Displacement
	if math.Abs(total) < 1 {
		st.Correction = total
		return nil
	}
	whole := math.Trunc(total)
	st.Correction = total - whole

	res, err := ResolveAxis(body.Box(), whole, axis, st.Velocity, tiles, tol)
	if err != nil {
		return err
	}
	body.SetBox(res.Box)
	body.Move(axis, res.Allowed)

	switch {
	case res.Contact:
		st.Contact = true
		st.Correction = 0
		k.Axis(axis.Other()).Correction = 0
		st.Reset(k.TimeToReachVelocity)
	case !res.Hit:
		st.Contact = false
	}
	// Only pulling away from a tile the axis was clamped against drops the
	// remainder; passing near a wall keeps it.
	if res.ClearCorrection && touching {
		st.Correction = 0
	}
	return nil
}

func degenerate(bb cp.BB) bool {
	return !(bb.R-bb.L > 0) || !(bb.T-bb.B > 0)
}

func overlaps(a, b cp.BB) bool {
	return a.L < b.R && a.R > b.L && a.B < b.T && a.T > b.B
}

func shift(bb cp.BB, axis component.Axis, d float64) cp.BB {
	if axis == component.AxisY {
		return cp.BB{L: bb.L, B: bb.B + d, R: bb.R, T: bb.T + d}
	}
	return cp.BB{L: bb.L + d, B: bb.B, R: bb.R + d, T: bb.T}
}

func axisCenter(bb cp.BB, axis component.Axis) float64 {
	if axis == component.AxisY {
		return (bb.B + bb.T) / 2
	}
	return (bb.L + bb.R) / 2
}

// facingEdge is the edge of bb on the dir side of the axis.
func facingEdge(bb cp.BB, axis component.Axis, dir float64) float64 {
	switch {
	case axis == component.AxisY && dir > 0:
		return bb.T
	case axis == component.AxisY:
		return bb.B
	case dir > 0:
		return bb.R
	default:
		return bb.L
	}
}

func clampTo(box, tile cp.BB, axis component.Axis, dir float64) cp.BB {
	d := facingEdge(tile, axis, -dir) - facingEdge(box, axis, dir)
	return shift(box, axis, d)
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
