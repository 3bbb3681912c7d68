package ecs

import "github.com/milk9111/bossfight/ecs/component"

// World owns entities, their components, the per-frame delta and the event
// queue drained by collaborators outside the simulation.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
	delta    float64
	frame    uint64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its slot. It reports
// whether e was alive.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// SetDelta records the elapsed seconds of the frame about to run.
func (w *World) SetDelta(dt float64) {
	if w == nil {
		return
	}
	w.delta = dt
}

// Delta returns the elapsed seconds of the current frame.
func (w *World) Delta() float64 {
	if w == nil {
		return 0
	}
	return w.delta
}

// Frame returns how many frames the scheduler has completed.
func (w *World) Frame() uint64 {
	if w == nil {
		return 0
	}
	return w.frame
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w == nil {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}
