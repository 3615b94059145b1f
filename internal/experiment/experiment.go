// Package experiment wires a plant, an integrator, and the solver into one
// configured single-shot run.
package experiment

import (
	"context"
	"fmt"

	"github.com/cirlab/cirsim/internal/dynamo"
	"github.com/cirlab/cirsim/internal/sim"
)

// Model is what a plant must provide beyond the bare ODE system so the CLI
// can run it without model-specific wiring.
type Model interface {
	dynamo.System
	DefaultState() dynamo.State
	StateNames() []string
	DefaultHorizon() float64
}

// Config describes one run. Zero values defer to the plant's defaults
// (InitState, TFinal < 0) or the solver's defaults (Samples, Tolerance,
// MaxSteps).
type Config struct {
	Plant      string
	Integrator string
	InitState  []float64
	TFinal     float64
	Samples    int
	Tolerance  float64
	MaxSteps   int
	Params     map[string]float64
}

type Experiment struct {
	cfg    Config
	model  Model
	solver *sim.Solver
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup binds the model and integrator and applies parameter overrides.
// Overrides require the model to be dynamo.Configurable.
func (e *Experiment) Setup(model Model, integ dynamo.Integrator, ms []dynamo.Metric) error {
	if len(e.cfg.Params) > 0 {
		configurable, ok := model.(dynamo.Configurable)
		if !ok {
			return fmt.Errorf("experiment: plant %q has no adjustable parameters", e.cfg.Plant)
		}
		for name, value := range e.cfg.Params {
			if err := configurable.SetParam(name, value); err != nil {
				return fmt.Errorf("experiment: %w", err)
			}
		}
	}

	e.model = model
	e.solver = sim.New(integ)
	for _, m := range ms {
		e.solver.AddMetric(m)
	}
	return nil
}

// Run integrates and attaches derived series when the plant exposes them.
func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.solver == nil {
		return nil, fmt.Errorf("experiment: not set up")
	}

	x0 := dynamo.State(e.cfg.InitState).Clone()
	if len(x0) == 0 {
		x0 = e.model.DefaultState()
	}

	tFinal := e.cfg.TFinal
	if tFinal < 0 {
		tFinal = e.model.DefaultHorizon()
	}

	cfg := sim.DefaultConfig()
	if e.cfg.Samples > 0 {
		cfg.Samples = e.cfg.Samples
	}
	if e.cfg.Tolerance > 0 {
		cfg.Tolerance = e.cfg.Tolerance
	}
	if e.cfg.MaxSteps > 0 {
		cfg.MaxSteps = e.cfg.MaxSteps
	}

	result, err := e.solver.Solve(ctx, e.model, x0, tFinal, cfg)
	if err != nil {
		return nil, err
	}

	if pp, ok := e.model.(dynamo.PostProcessor); ok {
		result.Derived = pp.DerivedSeries(result.Times, result.States)
	}

	return result, nil
}

// Model returns the bound plant, for callers that need its state names.
func (e *Experiment) Model() Model {
	return e.model
}
