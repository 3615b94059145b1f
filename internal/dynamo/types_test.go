package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestStateClone(t *testing.T) {
	s := State{1, 2, 3}
	c := s.Clone()
	c[0] = 99

	if s[0] != 1 {
		t.Error("clone should not share backing array")
	}
}

func TestStateIsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"finite", State{1, -2, 0}, true},
		{"empty", State{}, true},
		{"nan", State{1, math.NaN()}, false},
		{"inf", State{math.Inf(1), 0}, false},
		{"neg inf", State{0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		if got := tt.state.IsValid(); got != tt.valid {
			t.Errorf("%s: IsValid() = %v, want %v", tt.name, got, tt.valid)
		}
	}
}

func TestStateNorm(t *testing.T) {
	s := State{3, 4}
	if math.Abs(s.Norm()-5) > 1e-12 {
		t.Errorf("norm = %f, want 5", s.Norm())
	}
}

func TestSimulationErrorUnwrap(t *testing.T) {
	err := &SimulationError{Step: 7, Time: 0.35, Wrapped: ErrMaxSteps}

	if !errors.Is(err, ErrMaxSteps) {
		t.Error("expected errors.Is to see through SimulationError")
	}
	if err.Error() == "" {
		t.Error("expected non-empty message")
	}
}
