package system

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

var (
	ErrUnknownState = errors.New("system: unknown behavior state")
	ErrUnknownStage = errors.New("system: unknown dive stage")
)

// BehaviorSystem evaluates every boss's state transitions once per frame.
// It only decides; motion, collision and timers run in their own systems.
type BehaviorSystem struct {
	Logger *slog.Logger
	// NewID stamps attack spawns. Defaults to uuid.New.
	NewID func() uuid.UUID

	selectors map[ecs.Entity]attackSelector
}

func NewBehaviorSystem(logger *slog.Logger) *BehaviorSystem {
	return &BehaviorSystem{
		Logger:    logger,
		NewID:     uuid.New,
		selectors: map[ecs.Entity]attackSelector{},
	}
}

// bossFrame bundles one boss's components for a single update.
type bossFrame struct {
	w      *ecs.World
	e      ecs.Entity
	dt     float64
	cfg    *component.BossConfig
	rt     *component.BossRuntime
	body   *component.Body
	kin    *component.Kinematics
	health *component.Health
	energy *component.Energy
	aim    *component.Targeting
}

func (s *BehaviorSystem) Update(w *ecs.World) error {
	if w == nil {
		return nil
	}
	if s.selectors == nil {
		s.selectors = map[ecs.Entity]attackSelector{}
	}
	for e := range s.selectors {
		if !w.IsAlive(e) {
			delete(s.selectors, e)
		}
	}

	var errs []error
	ecs.ForEach2(w, component.BossConfigComponent.Kind(), component.BossRuntimeComponent.Kind(), func(e ecs.Entity, cfg *component.BossConfig, rt *component.BossRuntime) {
		if faulted(w, e) {
			return
		}
		f, ok := loadBossFrame(w, e, cfg, rt)
		if !ok {
			return
		}
		if err := s.step(f); err != nil {
			err = fmt.Errorf("behavior %s: %w", e, err)
			markFault(w, s.Logger, e, err)
			errs = append(errs, err)
		}
	})
	return errors.Join(errs...)
}

func loadBossFrame(w *ecs.World, e ecs.Entity, cfg *component.BossConfig, rt *component.BossRuntime) (*bossFrame, bool) {
	f := &bossFrame{w: w, e: e, dt: w.Delta(), cfg: cfg, rt: rt}
	var ok bool
	if f.body, ok = ecs.Get(w, e, component.BodyComponent.Kind()); !ok {
		return nil, false
	}
	if f.kin, ok = ecs.Get(w, e, component.KinematicsComponent.Kind()); !ok {
		return nil, false
	}
	if f.health, ok = ecs.Get(w, e, component.HealthComponent.Kind()); !ok {
		return nil, false
	}
	if f.energy, ok = ecs.Get(w, e, component.EnergyComponent.Kind()); !ok {
		return nil, false
	}
	if f.aim, ok = ecs.Get(w, e, component.TargetingComponent.Kind()); !ok {
		f.aim = &component.Targeting{}
	}
	return f, true
}

func (s *BehaviorSystem) step(f *bossFrame) error {
	if f.rt.State == nil {
		f.rt.State = &component.ChaseState{}
		s.activateChase(f)
	}

	if death, ok := f.rt.State.(*component.DeathState); ok {
		s.updateDeath(f, death)
		return nil
	}
	if !f.health.IsAlive() {
		death := &component.DeathState{}
		death.Duration.Start(f.cfg.DeathMS)
		return s.transition(f, death)
	}
	if err := s.preemptRest(f); err != nil {
		return err
	}

	var err error
	switch st := f.rt.State.(type) {
	case *component.ChaseState:
		err = s.updateChase(f)
	case *component.AreaAttackState:
		err = s.updateArea(f, st)
	case *component.DiveAttackState:
		err = s.updateDive(f, st)
	case *component.RestState:
		err = s.updateRest(f, st)
	default:
		err = fmt.Errorf("%w: %T", ErrUnknownState, f.rt.State)
	}
	if err != nil {
		return err
	}
	return s.preemptRest(f)
}

// preemptRest forces Rest once energy is gone, whatever else is running.
func (s *BehaviorSystem) preemptRest(f *bossFrame) error {
	if !f.energy.Exhausted() {
		return nil
	}
	switch f.rt.Kind() {
	case component.BehaviorRest, component.BehaviorDeath:
		return nil
	}
	rest := &component.RestState{}
	rest.Duration.Start(f.cfg.RestMS)
	return s.transition(f, rest)
}

func (s *BehaviorSystem) transition(f *bossFrame, next component.BehaviorState) error {
	prev := f.rt.State
	change := component.BehaviorChange{From: f.rt.Kind(), To: next.Kind()}
	change.FromStage, _ = f.rt.Stage()

	if err := s.exit(f, prev); err != nil {
		return err
	}
	f.rt.State = next
	change.Stage, _ = f.rt.Stage()

	if next.Kind() == component.BehaviorChase {
		s.activateChase(f)
	} else {
		f.kin.Stop()
	}
	s.announce(f, change)
	return nil
}

// exit puts the boss back on the field when it leaves a state that moved it.
// On normal completion the position is already there and this is a no-op.
func (s *BehaviorSystem) exit(f *bossFrame, prev component.BehaviorState) error {
	if st, ok := prev.(*component.DiveAttackState); ok {
		switch st.Stage {
		case component.DiveLaunch, component.DiveTarget, component.DiveLand:
		default:
			return fmt.Errorf("%w: %s", ErrUnknownStage, st.Stage)
		}
	}
	switch prev.(type) {
	case *component.AreaAttackState, *component.DiveAttackState:
		f.body.SetCenter(component.FieldCenter(prev, f.body.Center()))
	}
	return nil
}

// activateChase starts homing from rest: both axes restart their ramp toward
// the current heading.
func (s *BehaviorSystem) activateChase(f *bossFrame) {
	k := f.kin
	k.Active = true
	k.TimeToReachVelocity = f.cfg.TimeToReachVelocity
	k.X.Reset(k.TimeToReachVelocity)
	k.Y.Reset(k.TimeToReachVelocity)
	k.X.Correction, k.Y.Correction = 0, 0
	if f.aim.Found {
		Retarget(k, f.cfg, f.aim.Angle)
	}
}

func (s *BehaviorSystem) announce(f *bossFrame, change component.BehaviorChange) {
	f.w.Events().Push(ecs.Event{Type: ecs.EventBehaviorChanged, Entity: f.e, Frame: f.w.Frame(), Data: change})
	loggerOrDefault(s.Logger).Debug("boss behavior changed",
		"boss", f.cfg.Name,
		"entity", f.e,
		"from", change.From,
		"to", change.To,
		"stage", change.Stage,
		"frame", f.w.Frame(),
	)
}

func (s *BehaviorSystem) spawn(f *bossFrame, kind component.AttackKind, origin cp.Vector, angle float64, damage int) {
	newID := s.NewID
	if newID == nil {
		newID = uuid.New
	}
	f.rt.Pending = append(f.rt.Pending, component.AttackSpawn{
		ID:     newID(),
		Kind:   kind,
		Origin: origin,
		Angle:  angle,
		Damage: damage,
	})
}

func (s *BehaviorSystem) updateChase(f *bossFrame) error {
	if !f.aim.Found {
		return nil
	}
	cfg, rt := f.cfg, f.rt

	if cfg.Ranged.Enabled && !rt.Ranged.Active() {
		s.spawn(f, component.AttackProjectile, f.body.Center(), f.aim.Angle, cfg.Ranged.Damage)
		rt.Ranged.Start(cfg.Ranged.CooldownMS)
	}

	if rt.NoAction.Active() {
		return nil
	}
	var eligible []component.SpecialAttack
	for _, a := range cfg.Specials() {
		if !rt.Cooldown(a).Active() {
			eligible = append(eligible, a)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	sel, err := s.selector(f)
	if err != nil {
		return err
	}
	choice, ok, err := sel.Choose(selectionInput{
		Eligible:  eligible,
		Energy:    f.energy.Current,
		MaxEnergy: f.energy.Max,
		Distance:  f.body.Center().Distance(f.aim.Target),
	})
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if !slices.Contains(eligible, choice) {
		return fmt.Errorf("%w: %s", ErrInvalidChoice, choice)
	}
	return s.startSpecial(f, choice)
}

func (s *BehaviorSystem) selector(f *bossFrame) (attackSelector, error) {
	if sel, ok := s.selectors[f.e]; ok {
		return sel, nil
	}
	sel, err := newAttackSelector(f.e, f.cfg)
	if err != nil {
		return nil, err
	}
	s.selectors[f.e] = sel
	return sel, nil
}

func (s *BehaviorSystem) startSpecial(f *bossFrame, a component.SpecialAttack) error {
	switch a {
	case component.AttackArea:
		area := &component.AreaAttackState{
			Pivot: f.body.Center(),
			Angle: f.aim.Angle,
			Sign:  rotationSign(f.cfg.Area.Rotation, f.rt.AreaUses),
		}
		area.Duration.Start(f.cfg.Area.DurationMS)
		f.rt.AreaUses++
		return s.transition(f, area)
	case component.AttackDive:
		dive := &component.DiveAttackState{Stage: component.DiveLaunch, Origin: f.body.Center()}
		dive.Duration.Start(f.cfg.Dive.LaunchMS)
		return s.transition(f, dive)
	}
	return fmt.Errorf("%w: %s", ErrInvalidChoice, a)
}

func rotationSign(mode component.RotationMode, uses int) float64 {
	switch mode {
	case component.RotateClockwise:
		return -1
	case component.RotateAlternate:
		if uses%2 == 1 {
			return -1
		}
	}
	return 1
}

// finishSpecial charges a completed special attack and returns to Chase.
func (s *BehaviorSystem) finishSpecial(f *bossFrame, a component.SpecialAttack) error {
	f.energy.Deplete(f.cfg.EnergyCost(a))
	f.rt.Cooldown(a).Start(f.cfg.CooldownMS(a))
	f.rt.NoAction.Start(f.cfg.NoActionMS)
	return s.transition(f, &component.ChaseState{})
}

func (s *BehaviorSystem) updateArea(f *bossFrame, st *component.AreaAttackState) error {
	if !st.Duration.Active() {
		return s.finishSpecial(f, component.AttackArea)
	}
	cfg := f.cfg.Area

	st.Angle += st.Sign * cfg.RotationSpeed * f.dt
	radius := cfg.OrbitRadius * math.Sin(math.Pi*st.Duration.Progress())
	f.body.SetCenter(cp.Vector{
		X: st.Pivot.X + radius*math.Cos(st.Angle),
		Y: st.Pivot.Y - radius*math.Sin(st.Angle),
	})

	if !st.SpawnCooldown.Active() {
		s.spawn(f, component.AttackBurst, f.body.Center(), st.Angle, cfg.Damage)
		st.SpawnCooldown.Start(cfg.SpawnCooldownMS)
	}
	return nil
}

func (s *BehaviorSystem) updateDive(f *bossFrame, st *component.DiveAttackState) error {
	if st.Duration.Active() {
		switch st.Stage {
		case component.DiveLaunch, component.DiveTarget, component.DiveLand:
			return nil
		}
		return fmt.Errorf("%w: %s", ErrUnknownStage, st.Stage)
	}

	switch st.Stage {
	case component.DiveLaunch:
		st.Landing = st.Origin
		if f.aim.Found {
			st.Landing = f.aim.Target
		}
		st.Locked = true
		f.body.SetCenter(f.cfg.Sentinel)
		s.advanceDive(f, st, component.DiveTarget, f.cfg.Dive.TargetMS)
	case component.DiveTarget:
		f.body.SetCenter(st.Landing)
		s.spawn(f, component.AttackDiveImpact, st.Landing, 0, f.cfg.Dive.Damage)
		s.advanceDive(f, st, component.DiveLand, f.cfg.Dive.LandMS)
	case component.DiveLand:
		return s.finishSpecial(f, component.AttackDive)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownStage, st.Stage)
	}
	return nil
}

func (s *BehaviorSystem) advanceDive(f *bossFrame, st *component.DiveAttackState, next component.DiveStage, ms float64) {
	change := component.BehaviorChange{
		From:      component.BehaviorDiveAttack,
		To:        component.BehaviorDiveAttack,
		FromStage: st.Stage,
		Stage:     next,
	}
	st.Stage = next
	st.Duration.Start(ms)
	s.announce(f, change)
}

func (s *BehaviorSystem) updateRest(f *bossFrame, st *component.RestState) error {
	if st.Duration.Active() {
		return nil
	}
	f.energy.Restore()
	return s.transition(f, &component.ChaseState{})
}

func (s *BehaviorSystem) updateDeath(f *bossFrame, st *component.DeathState) {
	if st.Done || st.Duration.Active() {
		return
	}
	st.Done = true
	f.w.Events().Push(ecs.Event{Type: ecs.EventBossDefeated, Entity: f.e, Frame: f.w.Frame(), Data: f.cfg.Name})
	loggerOrDefault(s.Logger).Info("boss defeated", "boss", f.cfg.Name, "entity", f.e, "frame", f.w.Frame())
}
