package system

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	bt "github.com/joeycumines/go-behaviortree"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

var ErrInvalidChoice = errors.New("system: selection chose an ineligible attack")

// selectionInput is what a policy sees when a boss in Chase may start a
// special attack. Eligible is never empty and keeps the configured order.
type selectionInput struct {
	Eligible  []component.SpecialAttack
	Energy    float64
	MaxEnergy float64
	Distance  float64
}

type attackSelector interface {
	Choose(in selectionInput) (component.SpecialAttack, bool, error)
}

func newAttackSelector(e ecs.Entity, cfg *component.BossConfig) (attackSelector, error) {
	sel := cfg.Selection
	switch sel.Mode {
	case "", component.SelectPriority:
		return newPrioritySelector(cfg.Specials()), nil
	case component.SelectRoundRobin:
		return &roundRobinSelector{}, nil
	case component.SelectRandom:
		return &randomSelector{rng: rand.New(rand.NewPCG(sel.Seed, sel.Seed^uint64(e)))}, nil
	case component.SelectScript:
		return newScriptSelector(sel.Script, sel.Source)
	}
	return nil, fmt.Errorf("system: unknown selection mode %q", sel.Mode)
}

// prioritySelector runs a behaviour tree selector over one leaf per attack;
// the first leaf whose attack is eligible succeeds.
type prioritySelector struct {
	tree   bt.Node
	input  selectionInput
	choice component.SpecialAttack
}

func newPrioritySelector(order []component.SpecialAttack) *prioritySelector {
	p := &prioritySelector{}
	leaves := make([]bt.Node, 0, len(order))
	for _, attack := range order {
		leaves = append(leaves, bt.New(func([]bt.Node) (bt.Status, error) {
			if !slices.Contains(p.input.Eligible, attack) {
				return bt.Failure, nil
			}
			p.choice = attack
			return bt.Success, nil
		}))
	}
	p.tree = bt.New(bt.Selector, leaves...)
	return p
}

func (p *prioritySelector) Choose(in selectionInput) (component.SpecialAttack, bool, error) {
	p.input = in
	status, err := p.tree.Tick()
	if err != nil {
		return 0, false, err
	}
	return p.choice, status == bt.Success, nil
}

type roundRobinSelector struct {
	next int
}

func (r *roundRobinSelector) Choose(in selectionInput) (component.SpecialAttack, bool, error) {
	if len(in.Eligible) == 0 {
		return 0, false, nil
	}
	choice := in.Eligible[r.next%len(in.Eligible)]
	r.next++
	return choice, true, nil
}

type randomSelector struct {
	rng *rand.Rand
}

func (r *randomSelector) Choose(in selectionInput) (component.SpecialAttack, bool, error) {
	if len(in.Eligible) == 0 {
		return 0, false, nil
	}
	return in.Eligible[r.rng.IntN(len(in.Eligible))], true, nil
}

// scriptSelector hands the decision to a tengo script. The script reads
// eligible, energy, max_energy and distance and assigns choice; an empty
// choice means no attack this frame.
type scriptSelector struct {
	name     string
	compiled *tengo.Compiled
}

func newScriptSelector(name string, src []byte) (*scriptSelector, error) {
	if len(src) == 0 {
		return nil, fmt.Errorf("system: selection script %q is empty", name)
	}
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	for _, v := range []struct {
		name  string
		value any
	}{
		{"eligible", []any{}},
		{"energy", 0.0},
		{"max_energy", 0.0},
		{"distance", 0.0},
		{"choice", ""},
	} {
		if err := script.Add(v.name, v.value); err != nil {
			return nil, fmt.Errorf("system: selection script %q: %w", name, err)
		}
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("system: compile selection script %q: %w", name, err)
	}
	return &scriptSelector{name: name, compiled: compiled}, nil
}

func (s *scriptSelector) Choose(in selectionInput) (component.SpecialAttack, bool, error) {
	eligible := make([]tengo.Object, 0, len(in.Eligible))
	for _, a := range in.Eligible {
		eligible = append(eligible, &tengo.String{Value: a.String()})
	}
	for name, value := range map[string]any{
		"eligible":   &tengo.Array{Value: eligible},
		"energy":     in.Energy,
		"max_energy": in.MaxEnergy,
		"distance":   in.Distance,
		"choice":     "",
	} {
		if err := s.compiled.Set(name, value); err != nil {
			return 0, false, fmt.Errorf("script %s: set %s: %w", s.name, name, err)
		}
	}
	if err := s.compiled.Run(); err != nil {
		return 0, false, fmt.Errorf("script %s: %w", s.name, err)
	}

	raw := strings.TrimSpace(s.compiled.Get("choice").String())
	if raw == "" {
		return 0, false, nil
	}
	choice, err := component.ParseSpecialAttack(raw)
	if err != nil {
		return 0, false, fmt.Errorf("script %s: %w: %v", s.name, ErrInvalidChoice, err)
	}
	return choice, true, nil
}
