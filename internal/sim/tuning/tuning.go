package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	StepCost        int `yaml:"step_cost"`
	JumpCost        int `yaml:"jump_cost"`
	DefaultStrength int `yaml:"default_strength"`
}

func Default() Tuning {
	return Tuning{StepCost: 1, JumpCost: 5, DefaultStrength: 10}
}

func Load(path string) (Tuning, error) {
	var t Tuning
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if t.StepCost <= 0 || t.JumpCost <= 0 {
		return t, fmt.Errorf("tuning.yaml: costs must be positive (step=%d jump=%d)", t.StepCost, t.JumpCost)
	}
	// A jump edge covers Manhattan distance 2, so the pathfinder's distance
	// heuristic stays admissible only when a jump costs at least 2.
	if t.JumpCost < 2 {
		return t, fmt.Errorf("tuning.yaml: jump_cost must be at least 2 (a jump covers two cells)")
	}
	if t.DefaultStrength < 0 {
		return t, fmt.Errorf("tuning.yaml: default_strength must be non-negative")
	}
	return t, nil
}
