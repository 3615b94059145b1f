package metrics

import (
	"math"
	"testing"

	"github.com/cirlab/cirsim/internal/dynamo"
)

func TestPeakTracksMaximum(t *testing.T) {
	p := NewPeak("peak_speed", 1)

	p.Observe(dynamo.State{0, 4}, 0)
	p.Observe(dynamo.State{10, 9}, 1)
	p.Observe(dynamo.State{20, 7}, 2)

	if p.Value() != 9 {
		t.Errorf("expected peak 9, got %f", p.Value())
	}
}

func TestPeakReset(t *testing.T) {
	p := NewPeak("peak", 0)
	p.Observe(dynamo.State{5}, 0)
	p.Reset()

	if !math.IsNaN(p.Value()) {
		t.Error("expected NaN before any observation")
	}
}

func TestPeakNegativeStates(t *testing.T) {
	p := NewPeak("peak", 0)
	p.Observe(dynamo.State{-3}, 0)
	p.Observe(dynamo.State{-7}, 1)

	if p.Value() != -3 {
		t.Errorf("expected peak -3, got %f", p.Value())
	}
}

func TestMassBalanceDriftZeroOnExactRelaxation(t *testing.T) {
	sIn, th := 100.0, 1.0/0.45
	m := NewMassBalanceDrift(sIn, th)

	// Feed samples lying exactly on the analytic relaxation, carried in the
	// substrate component with zero biomass.
	balance0 := 73.32
	for i := 0; i < 50; i++ {
		ti := float64(i) * 0.1
		balance := sIn + (balance0-sIn)*math.Exp(-ti/th)
		m.Observe(dynamo.State{0, 0, balance}, ti)
	}

	if m.Value() > 1e-12 {
		t.Errorf("expected zero drift, got %e", m.Value())
	}
}

func TestMassBalanceDriftDetectsDeviation(t *testing.T) {
	m := NewMassBalanceDrift(100, 1.0/0.45)

	m.Observe(dynamo.State{0, 0, 73.32}, 0)
	m.Observe(dynamo.State{0, 0, 73.32}, 5) // should have relaxed, did not

	if m.Value() < 1 {
		t.Errorf("expected noticeable drift, got %e", m.Value())
	}
}
