package ecs

// EventType names an event kind published by the simulation.
type EventType string

const (
	// EventAttackSpawn carries a component.AttackSpawn for attack controllers.
	EventAttackSpawn EventType = "attack_spawn"
	// EventBehaviorChanged carries a component.BehaviorChange for animators.
	EventBehaviorChanged EventType = "behavior_changed"
	// EventBossDefeated is published once when a death sequence completes.
	EventBossDefeated EventType = "boss_defeated"
)

// Event is a generic ECS event payload.
type Event struct {
	Type   EventType
	Entity Entity
	Frame  uint64
	Data   any
}

// EventQueue is a simple FIFO queue. Events stay queued until drained, so a
// collaborator reading once per frame sees everything the frame produced.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
