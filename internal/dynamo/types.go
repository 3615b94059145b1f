package dynamo

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// System is an ODE system dX/dt = f(X, t). Derive must be pure: it reads
// the state and the (fixed) parameters of the system and nothing else, and
// must be evaluable at any t in the horizon, including integrator stage
// points between reporting samples.
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

// Integrator advances a state by one fixed step.
type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

// AdaptiveIntegrator additionally proposes its own step size. StepAdaptive
// returns the advanced state, the suggested next step, and whether the step
// met tol; on a rejected step the caller retries from x with dtNext.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(sys System, x State, t, dt, tol float64) (next State, dtNext float64, accepted bool)
}

// Series is a named scalar time series computed from a solved trajectory,
// aligned with the reporting mesh. Used for plotting and diagnostics only;
// never fed back into integration.
type Series struct {
	Name   string
	Values []float64
}

// PostProcessor is implemented by systems that expose derived quantities of
// their trajectories, e.g. a flow rate computed from a solved concentration.
type PostProcessor interface {
	DerivedSeries(times []float64, states []State) []Series
}

// Configurable is implemented by systems whose parameters can be adjusted
// before a run.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Metric accumulates a scalar diagnostic over the reporting samples of a run.
type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

// Observer is notified of every reporting sample as it is produced.
type Observer interface {
	OnSample(x State, t float64)
}
