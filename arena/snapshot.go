package arena

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Snapshot is the serialisable state of an arena at a frame boundary.
type Snapshot struct {
	Level  string         `yaml:"level"`
	Frame  uint64         `yaml:"frame"`
	Bosses []BossSnapshot `yaml:"bosses"`
}

type BossSnapshot struct {
	Name    string  `yaml:"name"`
	State   string  `yaml:"state"`
	Stage   string  `yaml:"stage,omitempty"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Health  int     `yaml:"health"`
	Energy  float64 `yaml:"energy"`
	Angle   float64 `yaml:"angle"`
	Faulted bool    `yaml:"faulted,omitempty"`
}

func (a *Arena) Snapshot() Snapshot {
	s := Snapshot{Level: a.levelName, Frame: a.world.Frame()}
	for _, b := range a.Bosses() {
		bs := BossSnapshot{
			Name:    b.Name,
			State:   b.State.String(),
			X:       b.Center.X,
			Y:       b.Center.Y,
			Health:  b.Health,
			Energy:  b.Energy,
			Angle:   b.Angle,
			Faulted: b.Faulted,
		}
		if b.HasStage {
			bs.Stage = b.Stage.String()
		}
		s.Bosses = append(s.Bosses, bs)
	}
	return s
}

// MarshalSnapshot renders the current snapshot as YAML.
func (a *Arena) MarshalSnapshot() ([]byte, error) {
	out, err := yaml.Marshal(a.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("arena: marshal snapshot: %w", err)
	}
	return out, nil
}
