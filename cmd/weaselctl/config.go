package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"weasel/pkg/weasel"
)

// fileConfig is the on-disk run configuration. Pointer fields distinguish
// "unset" from zero values such as mutation_probability: 0.
type fileConfig struct {
	Target              *string        `yaml:"target"`
	PopulationSize      *int           `yaml:"population_size"`
	SurvivorsKept       *int           `yaml:"survivors_kept"`
	DisplayColumns      *int           `yaml:"display_columns"`
	MutationProbability *float64       `yaml:"mutation_probability"`
	Alphabet            *string        `yaml:"alphabet"`
	Seed                *int64         `yaml:"seed"`
	ActionDelay         *time.Duration `yaml:"action_delay"`
	PhaseDelay          *time.Duration `yaml:"phase_delay"`
	SwapFrameInterval   *int           `yaml:"swap_frame_interval"`
	MaxIterations       *int           `yaml:"max_iterations"`
}

func loadRunRequestFromConfig(path string, base weasel.RunRequest) (weasel.RunRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return weasel.RunRequest{}, err
	}
	var raw fileConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return weasel.RunRequest{}, fmt.Errorf("parse run config %s: %w", path, err)
	}

	req := base
	if raw.Target != nil {
		req.Target = *raw.Target
	}
	if raw.PopulationSize != nil {
		req.PopulationSize = *raw.PopulationSize
	}
	if raw.SurvivorsKept != nil {
		req.SurvivorsKept = *raw.SurvivorsKept
	}
	if raw.DisplayColumns != nil {
		req.DisplayColumns = *raw.DisplayColumns
	}
	if raw.MutationProbability != nil {
		req.MutationProbability = *raw.MutationProbability
	}
	if raw.Alphabet != nil {
		req.Alphabet = *raw.Alphabet
	}
	if raw.Seed != nil {
		seed := *raw.Seed
		req.Seed = &seed
	}
	if raw.ActionDelay != nil {
		req.ActionDelay = *raw.ActionDelay
	}
	if raw.PhaseDelay != nil {
		req.PhaseDelay = *raw.PhaseDelay
	}
	if raw.SwapFrameInterval != nil {
		req.SwapFrameInterval = *raw.SwapFrameInterval
	}
	if raw.MaxIterations != nil {
		req.MaxIterations = *raw.MaxIterations
	}
	return req, nil
}
