package ecs

import "errors"

// System advances one concern of the world by a frame. A returned error
// describes entities whose update was aborted; the rest of the frame still
// runs.
type System interface {
	Update(w *World) error
}

// SystemFunc adapts a function to System.
type SystemFunc func(w *World) error

func (f SystemFunc) Update(w *World) error {
	return f(w)
}

// Scheduler runs systems in a fixed order once per frame.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update runs every system once and joins their errors.
func (s *Scheduler) Update(w *World) error {
	if s == nil || w == nil {
		return nil
	}
	var errs []error
	for _, system := range s.systems {
		if err := system.Update(w); err != nil {
			errs = append(errs, err)
		}
	}
	w.frame++
	return errors.Join(errs...)
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
