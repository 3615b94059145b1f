// Package sim runs fixed-horizon ODE simulations on an evenly spaced
// reporting mesh. The mesh controls output sampling only; accuracy is owned
// by the integrator's adaptive error control, with a hard ceiling on internal
// steps per reporting interval.
package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/cirlab/cirsim/internal/dynamo"
)

const (
	DefaultSamples   = 1000
	DefaultTolerance = 1e-6
	DefaultMaxSteps  = 1000
)

type Config struct {
	// Samples is the number of evenly spaced reporting points on [0, tFinal].
	Samples int
	// Tolerance bounds the adaptive integrator's local error estimate.
	Tolerance float64
	// MaxSteps caps internal steps (including rejected ones) per reporting
	// interval. Exceeding it aborts the run with dynamo.ErrMaxSteps.
	MaxSteps int
	// InitialDt is the first trial step; zero means one reporting interval.
	InitialDt float64
	// MinDt is the floor below which a still-rejected step aborts the run.
	MinDt float64
}

func DefaultConfig() Config {
	return Config{
		Samples:   DefaultSamples,
		Tolerance: DefaultTolerance,
		MaxSteps:  DefaultMaxSteps,
		MinDt:     1e-12,
	}
}

// Result is a solved trajectory on the reporting mesh. Derived holds
// post-processed series when the system is a dynamo.PostProcessor; it is
// filled by the experiment layer, not the solver.
type Result struct {
	Times   []float64
	States  []dynamo.State
	Derived []dynamo.Series
	Metrics map[string]float64
	// Steps counts internal integrator steps over the whole run,
	// rejected attempts included.
	Steps int
}

// Solver drives one integrator over a reporting mesh. It is single-shot and
// stateless between runs; it is not safe for concurrent use.
type Solver struct {
	integ     dynamo.Integrator
	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

func New(integ dynamo.Integrator) *Solver {
	return &Solver{integ: integ}
}

func (s *Solver) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Solver) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

// Solve integrates sys from x0 over [0, tFinal] and returns the trajectory
// sampled at cfg.Samples evenly spaced points. The first sample is x0 itself.
// A zero horizon yields the initial state repeated, not an error.
func (s *Solver) Solve(ctx context.Context, sys dynamo.System, x0 dynamo.State, tFinal float64, cfg Config) (*Result, error) {
	cfg = withDefaults(cfg)

	if tFinal < 0 {
		return nil, fmt.Errorf("sim: horizon must be non-negative, got %g", tFinal)
	}
	if len(x0) != sys.StateDim() {
		return nil, fmt.Errorf("%w: initial state has %d components, system has %d",
			dynamo.ErrDimensionMismatch, len(x0), sys.StateDim())
	}
	if !x0.IsValid() {
		return nil, fmt.Errorf("%w: in initial state", dynamo.ErrInvalidState)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result := &Result{
		Times:   make([]float64, 0, cfg.Samples),
		States:  make([]dynamo.State, 0, cfg.Samples),
		Metrics: make(map[string]float64),
	}

	x := x0.Clone()
	s.record(result, x, 0)

	if tFinal == 0 || cfg.Samples == 1 {
		for i := 1; i < cfg.Samples; i++ {
			s.record(result, x, 0)
		}
		s.finalize(result)
		return result, nil
	}

	interval := tFinal / float64(cfg.Samples-1)
	dt := cfg.InitialDt
	if dt <= 0 {
		dt = interval
	}

	adaptive, isAdaptive := s.integ.(dynamo.AdaptiveIntegrator)

	t := 0.0
	for i := 1; i < cfg.Samples; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		target := tFinal * float64(i) / float64(cfg.Samples-1)
		steps := 0

		for t < target-1e-12*tFinal {
			trial := math.Min(dt, target-t)
			clamped := trial < dt

			steps++
			if steps > cfg.MaxSteps {
				return nil, &dynamo.SimulationError{
					Step:    result.Steps + steps,
					Time:    t,
					State:   x.Clone(),
					Wrapped: dynamo.ErrMaxSteps,
				}
			}

			var next dynamo.State
			if isAdaptive {
				var dtNext float64
				var accepted bool
				next, dtNext, accepted = adaptive.StepAdaptive(sys, x, t, trial, cfg.Tolerance)
				if !accepted {
					if dtNext < cfg.MinDt {
						return nil, &dynamo.SimulationError{
							Step:    result.Steps + steps,
							Time:    t,
							State:   x.Clone(),
							Wrapped: dynamo.ErrStepTooSmall,
						}
					}
					dt = dtNext
					continue
				}
				// Keep the controller's suggestion unless this step was
				// clamped to land on the mesh point.
				if !clamped {
					dt = dtNext
				}
			} else {
				next = s.integ.Step(sys, x, t, trial)
			}

			if !next.IsValid() {
				return nil, &dynamo.SimulationError{
					Step:    result.Steps + steps,
					Time:    t,
					State:   next.Clone(),
					Wrapped: dynamo.ErrInvalidState,
				}
			}

			x = next
			t += trial
		}

		t = target
		result.Steps += steps
		s.record(result, x, t)
	}

	s.finalize(result)
	return result, nil
}

func (s *Solver) record(result *Result, x dynamo.State, t float64) {
	result.Times = append(result.Times, t)
	result.States = append(result.States, x.Clone())

	for _, m := range s.metrics {
		m.Observe(x, t)
	}
	for _, o := range s.observers {
		o.OnSample(x, t)
	}
}

func (s *Solver) finalize(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func withDefaults(cfg Config) Config {
	if cfg.Samples <= 0 {
		cfg.Samples = DefaultSamples
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = DefaultTolerance
	}
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = DefaultMaxSteps
	}
	if cfg.MinDt <= 0 {
		cfg.MinDt = 1e-12
	}
	return cfg
}
