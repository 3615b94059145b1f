package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation runs.
var (
	// ErrDimensionMismatch indicates an initial state whose length does not
	// match the system's state dimension.
	ErrDimensionMismatch = errors.New("dynamo: initial state dimension does not match system")

	// ErrInvalidState indicates a state vector containing NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrMaxSteps indicates the internal step ceiling was exceeded within a
	// single reporting interval; the trajectory for that run is unreliable
	// and is not returned.
	ErrMaxSteps = errors.New("dynamo: internal step limit exceeded")

	// ErrStepTooSmall indicates the adaptive step size fell below the
	// solver's floor without meeting the error tolerance.
	ErrStepTooSmall = errors.New("dynamo: adaptive step size below minimum")

	// ErrUnknownParam indicates a parameter name the system does not have.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")
)

// SimulationError carries the position of a failure inside a run.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
