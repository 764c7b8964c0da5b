package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/impair-sim/impair-sim/sim"
	"github.com/impair-sim/impair-sim/sim/traffic"
)

// Scenario holds a full run description, loadable from a YAML file.
// Nil sections mean "not set in YAML" — CLI flag values apply instead.
type Scenario struct {
	Link    *sim.Config   `yaml:"link"`
	Traffic *traffic.Spec `yaml:"traffic"`
	Run     RunParams     `yaml:"run"`
}

// RunParams holds run-level knobs. Nil pointer fields fall back to flags.
type RunParams struct {
	Seed         *int64   `yaml:"seed"`
	Ticks        *int     `yaml:"ticks"`
	TickInterval *float64 `yaml:"tick_interval"`
}

// LoadScenario reads and parses a YAML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &sc, nil
}

// Validate applies the same fail-fast rules as the constructors, so a
// bad scenario file is rejected before anything is built from it.
func (sc *Scenario) Validate() error {
	if sc.Link != nil {
		if err := sc.Link.Validate(); err != nil {
			return fmt.Errorf("link: %w", err)
		}
	}
	if sc.Traffic != nil {
		if err := sc.Traffic.Validate(); err != nil {
			return fmt.Errorf("traffic: %w", err)
		}
	}
	if sc.Run.Ticks != nil && *sc.Run.Ticks < 0 {
		return fmt.Errorf("run: ticks must be non-negative, got %d", *sc.Run.Ticks)
	}
	if sc.Run.TickInterval != nil && *sc.Run.TickInterval <= 0 {
		return fmt.Errorf("run: tick_interval must be positive, got %f", *sc.Run.TickInterval)
	}
	return nil
}
