package component

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
)

// SpecialAttack names an energy-costing attack a boss can pick from Chase.
type SpecialAttack int

const (
	AttackArea SpecialAttack = iota
	AttackDive

	specialAttackCount
)

var specialAttackNames = [specialAttackCount]string{
	AttackArea: "area_attack",
	AttackDive: "dive_attack",
}

func (a SpecialAttack) String() string {
	if a < 0 || a >= specialAttackCount {
		return fmt.Sprintf("special_attack(%d)", int(a))
	}
	return specialAttackNames[a]
}

// ParseSpecialAttack maps a prefab name back to its attack.
func ParseSpecialAttack(name string) (SpecialAttack, error) {
	for i, n := range specialAttackNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return SpecialAttack(i), nil
		}
	}
	return 0, fmt.Errorf("component: unknown special attack %q", name)
}

// SelectionMode picks among several eligible special attacks.
type SelectionMode string

const (
	SelectPriority   SelectionMode = "priority"
	SelectRoundRobin SelectionMode = "round_robin"
	SelectRandom     SelectionMode = "random"
	SelectScript     SelectionMode = "script"
)

// RotationMode decides the orbit direction of an area attack.
type RotationMode string

const (
	RotateClockwise        RotationMode = "cw"
	RotateCounterClockwise RotationMode = "ccw"
	RotateAlternate        RotationMode = "alternate"
)

type RangedConfig struct {
	Enabled    bool
	CooldownMS float64
	Damage     int
}

type AreaAttackConfig struct {
	Enabled         bool
	DurationMS      float64
	CooldownMS      float64
	SpawnCooldownMS float64
	EnergyCost      float64
	Damage          int
	OrbitRadius     float64
	// RotationSpeed is radians per second.
	RotationSpeed float64
	Rotation      RotationMode
}

type DiveAttackConfig struct {
	Enabled    bool
	LaunchMS   float64
	TargetMS   float64
	LandMS     float64
	CooldownMS float64
	EnergyCost float64
	Damage     int
}

type SelectionConfig struct {
	Mode  SelectionMode
	Order []SpecialAttack
	// Script is the prefab name of a tengo selection script and Source its
	// contents, resolved at spawn.
	Script string
	Source []byte
	Seed   uint64
}

// DefaultSentinel is the off-field waiting point of a diving boss whose
// prefab names none.
var DefaultSentinel = cp.Vector{X: -10000, Y: -10000}

// BossConfig is the immutable tuning of one boss kind, resolved from its
// prefab at spawn and shared by pointer. Durations are milliseconds,
// distances are display units and TimeTo* values are seconds.
type BossConfig struct {
	Name      string
	Width     float64
	Height    float64
	MaxHealth int
	MaxEnergy float64

	TravelDistance      float64
	TimeToTravel        float64
	TimeToReachVelocity float64
	Tolerance           float64

	NoActionMS   float64
	StartDelayMS float64
	RestMS       float64
	DeathMS      float64

	// Sentinel is the off-field point a diving boss waits at.
	Sentinel cp.Vector

	Ranged    RangedConfig
	Area      AreaAttackConfig
	Dive      DiveAttackConfig
	Selection SelectionConfig
}

// Specials returns the enabled special attacks in selection order.
func (c *BossConfig) Specials() []SpecialAttack {
	if c == nil {
		return nil
	}
	order := c.Selection.Order
	if len(order) == 0 {
		order = []SpecialAttack{AttackArea, AttackDive}
	}
	out := make([]SpecialAttack, 0, len(order))
	for _, a := range order {
		if c.Enabled(a) {
			out = append(out, a)
		}
	}
	return out
}

// Enabled reports whether the boss can use attack a.
func (c *BossConfig) Enabled(a SpecialAttack) bool {
	switch a {
	case AttackArea:
		return c.Area.Enabled
	case AttackDive:
		return c.Dive.Enabled
	}
	return false
}

// EnergyCost returns what completing attack a depletes.
func (c *BossConfig) EnergyCost(a SpecialAttack) float64 {
	switch a {
	case AttackArea:
		return c.Area.EnergyCost
	case AttackDive:
		return c.Dive.EnergyCost
	}
	return 0
}

// CooldownMS returns the cooldown started when attack a completes.
func (c *BossConfig) CooldownMS(a SpecialAttack) float64 {
	switch a {
	case AttackArea:
		return c.Area.CooldownMS
	case AttackDive:
		return c.Dive.CooldownMS
	}
	return 0
}

var BossConfigComponent = NewComponent[BossConfig]()
