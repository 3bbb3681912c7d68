package prefabs

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/ecs/component"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// BossSpec is the YAML shape of a boss prefab. Durations are milliseconds,
// distances are display units and ramp times are seconds.
type BossSpec struct {
	Name     string         `yaml:"name"`
	Color    YAMLColor      `yaml:"color"`
	Collider ColliderSpec   `yaml:"collider"`
	Health   int            `yaml:"health"`
	Energy   float64        `yaml:"energy"`
	Movement MovementSpec   `yaml:"movement"`
	Timers   BossTimersSpec `yaml:"timers"`
	// Sentinel defaults to component.DefaultSentinel when omitted.
	Sentinel  *PointSpec    `yaml:"sentinel"`
	Ranged    RangedSpec    `yaml:"ranged"`
	Area      AreaSpec      `yaml:"area_attack"`
	Dive      DiveSpec      `yaml:"dive_attack"`
	Selection SelectionSpec `yaml:"selection"`
}

type ColliderSpec struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Tolerance float64 `yaml:"tolerance"`
}

type MovementSpec struct {
	TravelDistance      float64 `yaml:"travel_distance"`
	TimeToTravel        float64 `yaml:"time_to_travel"`
	TimeToReachVelocity float64 `yaml:"time_to_reach_velocity"`
}

type BossTimersSpec struct {
	NoActionMS   float64 `yaml:"no_action_ms"`
	StartDelayMS float64 `yaml:"start_delay_ms"`
	RestMS       float64 `yaml:"rest_ms"`
	DeathMS      float64 `yaml:"death_ms"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type RangedSpec struct {
	Enabled    bool    `yaml:"enabled"`
	CooldownMS float64 `yaml:"cooldown_ms"`
	Damage     int     `yaml:"damage"`
}

type AreaSpec struct {
	Enabled         bool    `yaml:"enabled"`
	DurationMS      float64 `yaml:"duration_ms"`
	CooldownMS      float64 `yaml:"cooldown_ms"`
	SpawnCooldownMS float64 `yaml:"spawn_cooldown_ms"`
	EnergyCost      float64 `yaml:"energy_cost"`
	Damage          int     `yaml:"damage"`
	OrbitRadius     float64 `yaml:"orbit_radius"`
	RotationSpeed   float64 `yaml:"rotation_speed"`
	Rotation        string  `yaml:"rotation"`
}

type DiveSpec struct {
	Enabled    bool    `yaml:"enabled"`
	LaunchMS   float64 `yaml:"launch_ms"`
	TargetMS   float64 `yaml:"target_ms"`
	LandMS     float64 `yaml:"land_ms"`
	CooldownMS float64 `yaml:"cooldown_ms"`
	EnergyCost float64 `yaml:"energy_cost"`
	Damage     int     `yaml:"damage"`
}

type SelectionSpec struct {
	Mode   string   `yaml:"mode"`
	Order  []string `yaml:"order"`
	Script string   `yaml:"script"`
	Seed   uint64   `yaml:"seed"`
}

// LoadBossSpec loads <name>.yaml.
func LoadBossSpec(name string) (*BossSpec, error) {
	file := name
	if !isSpecFile(file) {
		file += ".yaml"
	}
	spec, err := LoadSpec[BossSpec](file)
	if err != nil {
		return nil, err
	}
	if spec.Name == "" {
		spec.Name = strings.TrimSuffix(file, ".yaml")
	}
	return &spec, nil
}

// LoadBossConfig loads, validates and converts a boss prefab in one step.
func LoadBossConfig(name string) (*component.BossConfig, error) {
	spec, err := LoadBossSpec(name)
	if err != nil {
		return nil, err
	}
	return spec.ToConfig()
}

func (s *BossSpec) sentinel() cp.Vector {
	if s.Sentinel == nil {
		return component.DefaultSentinel
	}
	return cp.Vector{X: s.Sentinel.X, Y: s.Sentinel.Y}
}

// ToConfig validates the spec and builds the immutable runtime config. A
// script selection policy has its source resolved here.
func (s *BossSpec) ToConfig() (*component.BossConfig, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	cfg := &component.BossConfig{
		Name:                s.Name,
		Width:               s.Collider.Width,
		Height:              s.Collider.Height,
		MaxHealth:           s.Health,
		MaxEnergy:           s.Energy,
		TravelDistance:      s.Movement.TravelDistance,
		TimeToTravel:        s.Movement.TimeToTravel,
		TimeToReachVelocity: s.Movement.TimeToReachVelocity,
		Tolerance:           s.Collider.Tolerance,
		NoActionMS:          s.Timers.NoActionMS,
		StartDelayMS:        s.Timers.StartDelayMS,
		RestMS:              s.Timers.RestMS,
		DeathMS:             s.Timers.DeathMS,
		Sentinel:            s.sentinel(),
		Ranged:              component.RangedConfig(s.Ranged),
		Area: component.AreaAttackConfig{
			Enabled:         s.Area.Enabled,
			DurationMS:      s.Area.DurationMS,
			CooldownMS:      s.Area.CooldownMS,
			SpawnCooldownMS: s.Area.SpawnCooldownMS,
			EnergyCost:      s.Area.EnergyCost,
			Damage:          s.Area.Damage,
			OrbitRadius:     s.Area.OrbitRadius,
			RotationSpeed:   s.Area.RotationSpeed,
			Rotation:        component.RotationMode(s.Area.Rotation),
		},
		Dive: component.DiveAttackConfig(s.Dive),
		Selection: component.SelectionConfig{
			Mode:   component.SelectionMode(s.Selection.Mode),
			Script: s.Selection.Script,
			Seed:   s.Selection.Seed,
		},
	}
	if cfg.Tolerance == 0 {
		cfg.Tolerance = component.DefaultCollisionTolerance
	}
	if cfg.Selection.Mode == "" {
		cfg.Selection.Mode = component.SelectPriority
	}
	if cfg.Area.Rotation == "" {
		cfg.Area.Rotation = component.RotateCounterClockwise
	}

	for _, name := range s.Selection.Order {
		a, err := component.ParseSpecialAttack(name)
		if err != nil {
			return nil, fmt.Errorf("prefabs: boss %s: selection.order: %w", s.Name, err)
		}
		cfg.Selection.Order = append(cfg.Selection.Order, a)
	}

	if cfg.Selection.Mode == component.SelectScript {
		src, err := LoadScript(s.Selection.Script)
		if err != nil {
			return nil, fmt.Errorf("prefabs: boss %s: load script %s: %w", s.Name, s.Selection.Script, err)
		}
		cfg.Selection.Source = src
	}
	return cfg, nil
}

type specField struct {
	field string
	value float64
}

// Validate reports the first field that cannot drive a boss.
func (s *BossSpec) Validate() error {
	positive := []specField{
		{"collider.width", s.Collider.Width},
		{"collider.height", s.Collider.Height},
		{"health", float64(s.Health)},
		{"energy", s.Energy},
		{"movement.time_to_travel", s.Movement.TimeToTravel},
		{"movement.time_to_reach_velocity", s.Movement.TimeToReachVelocity},
	}
	for _, p := range positive {
		if !(p.value > 0) || math.IsInf(p.value, 0) {
			return fmt.Errorf("prefabs: boss %s: %s must be positive", s.Name, p.field)
		}
	}

	nonNegative := []specField{
		{"collider.tolerance", s.Collider.Tolerance},
		{"movement.travel_distance", s.Movement.TravelDistance},
		{"timers.no_action_ms", s.Timers.NoActionMS},
		{"timers.start_delay_ms", s.Timers.StartDelayMS},
		{"timers.rest_ms", s.Timers.RestMS},
		{"timers.death_ms", s.Timers.DeathMS},
		{"ranged.cooldown_ms", s.Ranged.CooldownMS},
		{"area_attack.duration_ms", s.Area.DurationMS},
		{"area_attack.cooldown_ms", s.Area.CooldownMS},
		{"area_attack.spawn_cooldown_ms", s.Area.SpawnCooldownMS},
		{"area_attack.energy_cost", s.Area.EnergyCost},
		{"area_attack.orbit_radius", s.Area.OrbitRadius},
		{"dive_attack.launch_ms", s.Dive.LaunchMS},
		{"dive_attack.target_ms", s.Dive.TargetMS},
		{"dive_attack.land_ms", s.Dive.LandMS},
		{"dive_attack.cooldown_ms", s.Dive.CooldownMS},
		{"dive_attack.energy_cost", s.Dive.EnergyCost},
	}
	for _, n := range nonNegative {
		if !(n.value >= 0) || math.IsInf(n.value, 0) {
			return fmt.Errorf("prefabs: boss %s: %s must not be negative", s.Name, n.field)
		}
	}

	finite := []specField{
		{"area_attack.rotation_speed", s.Area.RotationSpeed},
	}
	if s.Sentinel != nil {
		finite = append(finite, specField{"sentinel.x", s.Sentinel.X}, specField{"sentinel.y", s.Sentinel.Y})
	}
	for _, f := range finite {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("prefabs: boss %s: %s must be a finite number", s.Name, f.field)
		}
	}

	switch component.RotationMode(s.Area.Rotation) {
	case "", component.RotateClockwise, component.RotateCounterClockwise, component.RotateAlternate:
	default:
		return fmt.Errorf("prefabs: boss %s: area_attack.rotation %q is not cw, ccw or alternate", s.Name, s.Area.Rotation)
	}

	switch component.SelectionMode(s.Selection.Mode) {
	case "", component.SelectPriority, component.SelectRoundRobin, component.SelectRandom:
	case component.SelectScript:
		if strings.TrimSpace(s.Selection.Script) == "" {
			return fmt.Errorf("prefabs: boss %s: selection.script is required in script mode", s.Name)
		}
	default:
		return fmt.Errorf("prefabs: boss %s: unknown selection.mode %q", s.Name, s.Selection.Mode)
	}
	return nil
}

// YAMLColor decodes "#rrggbb" or "#rrggbbaa".
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i*2 < len(s); i++ {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return fmt.Errorf("invalid color format: %s: %w", value.Value, err)
		}
		rgba[i] = uint8(v)
	}

	c.Color = color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	return nil
}

// Or returns c's color, or fallback when the field was left out.
func (c YAMLColor) Or(fallback color.Color) color.Color {
	if c.Color == nil {
		return fallback
	}
	return c.Color
}
