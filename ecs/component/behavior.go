package component

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
)

// BehaviorKind tags the active variant of a boss state machine.
type BehaviorKind int

const (
	BehaviorChase BehaviorKind = iota
	BehaviorAreaAttack
	BehaviorRest
	BehaviorDiveAttack
	BehaviorDeath
)

func (k BehaviorKind) String() string {
	switch k {
	case BehaviorChase:
		return "chase"
	case BehaviorAreaAttack:
		return "area_attack"
	case BehaviorRest:
		return "rest"
	case BehaviorDiveAttack:
		return "dive_attack"
	case BehaviorDeath:
		return "death"
	}
	return fmt.Sprintf("behavior(%d)", int(k))
}

// DiveStage is the sub-stage of a dive attack.
type DiveStage int

const (
	DiveLaunch DiveStage = iota
	DiveTarget
	DiveLand
)

func (s DiveStage) String() string {
	switch s {
	case DiveLaunch:
		return "launch"
	case DiveTarget:
		return "target"
	case DiveLand:
		return "land"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// BehaviorState is one variant of the boss state machine. Each variant owns
// its timers; Timers exposes them so they can be ticked after transitions.
type BehaviorState interface {
	Kind() BehaviorKind
	Timers() []*Timer
}

// ChaseState homes toward the player and fires ranged attacks.
type ChaseState struct{}

func (*ChaseState) Kind() BehaviorKind { return BehaviorChase }
func (*ChaseState) Timers() []*Timer   { return nil }

// AreaAttackState orbits the pivot captured at entry while emitting bursts.
type AreaAttackState struct {
	Duration      Timer
	SpawnCooldown Timer
	Pivot         cp.Vector
	Angle         float64
	// Sign is +1 for counter-clockwise and -1 for clockwise on screen.
	Sign float64
}

func (*AreaAttackState) Kind() BehaviorKind { return BehaviorAreaAttack }
func (s *AreaAttackState) Timers() []*Timer {
	return []*Timer{&s.Duration, &s.SpawnCooldown}
}

// RestState waits out a fixed duration and then refills energy.
type RestState struct {
	Duration Timer
}

func (*RestState) Kind() BehaviorKind { return BehaviorRest }
func (s *RestState) Timers() []*Timer { return []*Timer{&s.Duration} }

// DiveAttackState runs Launch, Target and Land in order.
type DiveAttackState struct {
	Stage    DiveStage
	Duration Timer
	// Origin is where the boss stood when the dive began.
	Origin cp.Vector
	// Landing is frozen at the Launch to Target instant; Locked reports
	// that it has been.
	Landing cp.Vector
	Locked  bool
}

func (*DiveAttackState) Kind() BehaviorKind { return BehaviorDiveAttack }
func (s *DiveAttackState) Timers() []*Timer { return []*Timer{&s.Duration} }

// DeathState plays out the fixed-length death sequence. It is terminal.
type DeathState struct {
	Duration Timer
	Done     bool
}

func (*DeathState) Kind() BehaviorKind { return BehaviorDeath }
func (s *DeathState) Timers() []*Timer { return []*Timer{&s.Duration} }

// FieldCenter returns where a boss in state belongs on the field. An area
// attack returns to its pivot and a dive waiting off-field returns to its
// landing, or to its origin if none was frozen. Other states stay at current.
func FieldCenter(state BehaviorState, current cp.Vector) cp.Vector {
	switch st := state.(type) {
	case *AreaAttackState:
		return st.Pivot
	case *DiveAttackState:
		if st.Stage != DiveTarget {
			return current
		}
		if st.Locked {
			return st.Landing
		}
		return st.Origin
	}
	return current
}

// AttackKind names what an attack controller should instantiate.
type AttackKind string

const (
	AttackProjectile AttackKind = "projectile"
	AttackBurst      AttackKind = "burst"
	AttackDiveImpact AttackKind = "dive_impact"
)

// AttackSpawn asks an external attack controller to create an attack.
type AttackSpawn struct {
	ID     uuid.UUID
	Kind   AttackKind
	Origin cp.Vector
	Angle  float64
	Damage int
}

// BehaviorChange is published whenever a boss changes variant or dive stage.
type BehaviorChange struct {
	From      BehaviorKind
	To        BehaviorKind
	FromStage DiveStage
	Stage     DiveStage
}

// BossRuntime is the mutable per-boss state of the behavior state machine.
type BossRuntime struct {
	State    BehaviorState
	Ranged   Timer
	NoAction Timer
	// Cooldowns is indexed by SpecialAttack.
	Cooldowns [specialAttackCount]Timer
	AreaUses  int
	// Pending holds spawns decided this frame, flushed to the world queue.
	Pending []AttackSpawn
}

// Cooldown returns the cooldown timer of attack a.
func (r *BossRuntime) Cooldown(a SpecialAttack) *Timer {
	if a < 0 || a >= specialAttackCount {
		return nil
	}
	return &r.Cooldowns[a]
}

// Timers returns every timer owned by the runtime and its active state.
func (r *BossRuntime) Timers() []*Timer {
	out := make([]*Timer, 0, 2+len(r.Cooldowns)+2)
	out = append(out, &r.Ranged, &r.NoAction)
	for i := range r.Cooldowns {
		out = append(out, &r.Cooldowns[i])
	}
	if r.State != nil {
		out = append(out, r.State.Timers()...)
	}
	return out
}

// Kind returns the active variant tag, Chase when unset.
func (r *BossRuntime) Kind() BehaviorKind {
	if r == nil || r.State == nil {
		return BehaviorChase
	}
	return r.State.Kind()
}

// Stage returns the dive sub-stage when diving.
func (r *BossRuntime) Stage() (DiveStage, bool) {
	if r == nil {
		return 0, false
	}
	if d, ok := r.State.(*DiveAttackState); ok {
		return d.Stage, true
	}
	return 0, false
}

var BossRuntimeComponent = NewComponent[BossRuntime]()
