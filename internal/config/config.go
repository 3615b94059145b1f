// Package config loads run configuration from YAML files and provides named
// presets per plant. CLI flags take precedence over file values, which take
// precedence over presets.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPlant      = "truck"
	DefaultIntegrator = "rk45"
	DefaultSamples    = 1000
	DefaultTolerance  = 1e-6
	DefaultMaxSteps   = 1000
)

type Config struct {
	Plant      string `yaml:"plant"`
	Integrator string `yaml:"integrator"`
	// TFinal < 0 defers to the plant's default horizon.
	TFinal    float64 `yaml:"t_final"`
	Samples   int     `yaml:"samples"`
	Tolerance float64 `yaml:"tolerance"`
	MaxSteps  int     `yaml:"max_steps"`
	// InitState empty defers to the plant's default initial state.
	InitState []float64          `yaml:"init_state"`
	Params    map[string]float64 `yaml:"params"`
}

func DefaultConfig() *Config {
	return &Config{
		Plant:      DefaultPlant,
		Integrator: DefaultIntegrator,
		TFinal:     -1,
		Samples:    DefaultSamples,
		Tolerance:  DefaultTolerance,
		MaxSteps:   DefaultMaxSteps,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
