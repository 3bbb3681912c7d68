package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/bossfight/ecs/component"
)

type position struct{ X, Y float64 }
type velocity struct{ X, Y float64 }
type label struct{ Name string }

var (
	positionKind = component.NewComponentKind[position]()
	velocityKind = component.NewComponentKind[velocity]()
	labelKind    = component.NewComponentKind[label]()
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return false the second time")
				}
			}
		})
	}
}

func TestRecycledSlotGetsNewGeneration(t *testing.T) {
	w := NewWorld()
	first := CreateEntity(w)
	if err := Add(w, first, labelKind, &label{Name: "old"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	DestroyEntity(w, first)

	second := CreateEntity(w)
	if second == first {
		t.Fatalf("recycled entity reused handle %s", first)
	}
	if second.id() != first.id() {
		t.Fatalf("expected slot %d to be recycled, got %d", first.id(), second.id())
	}
	if Has(w, second, labelKind) {
		t.Fatalf("recycled entity inherited a component")
	}
	if err := Add(w, first, labelKind, &label{}); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive for stale handle, got %v", err)
	}
}

func TestComponentsAndQueries(t *testing.T) {
	w := NewWorld()
	a := CreateEntity(w)
	b := CreateEntity(w)
	c := CreateEntity(w)

	for _, e := range []Entity{a, b, c} {
		if err := Add(w, e, positionKind, &position{X: float64(e.id())}); err != nil {
			t.Fatalf("add position: %v", err)
		}
	}
	if err := Add(w, b, velocityKind, &velocity{X: 1}); err != nil {
		t.Fatalf("add velocity: %v", err)
	}
	if err := Add(w, c, velocityKind, &velocity{X: 2}); err != nil {
		t.Fatalf("add velocity: %v", err)
	}
	if err := Add(w, c, labelKind, &label{Name: "c"}); err != nil {
		t.Fatalf("add label: %v", err)
	}
	if err := Add[label](w, a, labelKind, nil); !errors.Is(err, component.ErrNilComponent) {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}

	got := toSet(w.Query(positionKind.ID(), velocityKind.ID()))
	if len(got) != 2 {
		t.Fatalf("expected 2 entities with position+velocity, got %d", len(got))
	}
	if _, ok := got[a]; ok {
		t.Fatalf("entity a has no velocity")
	}

	ForEach2(w, positionKind, velocityKind, func(e Entity, p *position, v *velocity) {
		p.X += v.X
	})
	if p, _ := Get(w, c, positionKind); p.X != float64(c.id())+2 {
		t.Fatalf("ForEach2 did not mutate in place: %v", p.X)
	}

	var hits int
	ForEach3(w, positionKind, velocityKind, labelKind, func(e Entity, _ *position, _ *velocity, l *label) {
		hits++
		if e != c || l.Name != "c" {
			t.Fatalf("unexpected ForEach3 entity %s", e)
		}
	})
	if hits != 1 {
		t.Fatalf("expected 1 ForEach3 hit, got %d", hits)
	}

	if !Remove(w, b, velocityKind) || Has(w, b, velocityKind) {
		t.Fatalf("velocity should be removed from b")
	}
	DestroyEntity(w, c)
	if n := len(w.Query(positionKind.ID(), velocityKind.ID())); n != 0 {
		t.Fatalf("expected empty query after removals, got %d", n)
	}
	if first, ok := First(w, positionKind); !ok || first != a {
		t.Fatalf("expected First to return a, got %s %v", first, ok)
	}
}

func TestForEachAllowsRemoval(t *testing.T) {
	w := NewWorld()
	for i := 0; i < 4; i++ {
		e := CreateEntity(w)
		if err := Add(w, e, labelKind, &label{}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	var seen int
	ForEach(w, labelKind, func(e Entity, _ *label) {
		seen++
		Remove(w, e, labelKind)
	})
	if seen != 4 {
		t.Fatalf("expected 4 visits, got %d", seen)
	}
	if _, ok := First(w, labelKind); ok {
		t.Fatalf("all labels should be removed")
	}
}

func TestSchedulerJoinsErrorsAndCountsFrames(t *testing.T) {
	w := NewWorld()
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	var order []string

	s := NewScheduler(
		SystemFunc(func(*World) error { order = append(order, "a"); return errA }),
		nil,
		SystemFunc(func(*World) error { order = append(order, "ok"); return nil }),
		SystemFunc(func(*World) error { order = append(order, "b"); return errB }),
	)
	if len(s.Systems()) != 3 {
		t.Fatalf("nil system should be ignored")
	}

	err := s.Update(w)
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Fatalf("expected joined errors, got %v", err)
	}
	if len(order) != 3 || order[0] != "a" || order[2] != "b" {
		t.Fatalf("systems ran out of order: %v", order)
	}
	if w.Frame() != 1 {
		t.Fatalf("expected frame 1, got %d", w.Frame())
	}
}

func TestEventQueueDrain(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	w.Events().Push(Event{Type: EventAttackSpawn, Entity: e})
	w.Events().Push(Event{Type: EventBossDefeated, Entity: e})

	if w.Events().Len() != 2 {
		t.Fatalf("expected 2 queued events")
	}
	evts := w.Events().Drain()
	if len(evts) != 2 || evts[0].Type != EventAttackSpawn {
		t.Fatalf("unexpected drain result %+v", evts)
	}
	if w.Events().Len() != 0 || w.Events().Drain() != nil {
		t.Fatalf("queue should be empty after drain")
	}
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}
