package ecs

import (
	"fmt"

	"github.com/milk9111/bossfight/ecs/component"
)

// CreateEntity allocates a new entity in w.
func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

// DestroyEntity removes e and all its components.
func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

// IsAlive reports whether e is a live entity of w.
func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

// Entities returns every live entity of w.
func Entities(w *World) []Entity {
	return w.Entities()
}

// Add attaches (or replaces) the component of the given kind on e.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return fmt.Errorf("%w: %s", component.ErrNilComponent, kind)
	}
	if !w.IsAlive(e) {
		return fmt.Errorf("%w: add %s to %v", component.ErrEntityNotAlive, kind, e)
	}
	w.store(kind.ID(), true).Set(e, value)
	return nil
}

// Remove detaches the component of the given kind from e.
func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.store(kind.ID(), false).Remove(e)
}

// Has reports whether e carries the component kind.
func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.store(kind.ID(), false).Has(e)
}

// Get returns the component of the given kind on e.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	v := w.store(kind.ID(), false).Get(e)
	if v == nil {
		return nil, false
	}
	cast, ok := v.(*T)
	return cast, ok
}

// ForEach calls fn for every entity carrying the component kind.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s := w.store(kind.ID(), false)
	if s == nil || fn == nil {
		return
	}
	// Snapshot so fn may add or remove components.
	ents := append([]Entity(nil), s.Entities()...)
	for _, e := range ents {
		if v, ok := Get(w, e, kind); ok {
			fn(e, v)
		}
	}
}

// ForEach2 calls fn for every entity carrying both component kinds.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if fn == nil {
		return
	}
	for _, e := range w.Query(ka.ID(), kb.ID()) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		if okA && okB {
			fn(e, a, b)
		}
	}
}

// ForEach3 calls fn for every entity carrying all three component kinds.
func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	if fn == nil {
		return
	}
	for _, e := range w.Query(ka.ID(), kb.ID(), kc.ID()) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		c, okC := Get(w, e, kc)
		if okA && okB && okC {
			fn(e, a, b, c)
		}
	}
}

// First returns the first entity carrying the component kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	s := w.store(kind.ID(), false)
	if s == nil || s.Len() == 0 {
		return 0, false
	}
	return s.Entities()[0], true
}
