package plants_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cirlab/cirsim/internal/integrators"
	"github.com/cirlab/cirsim/internal/plants"
	"github.com/cirlab/cirsim/internal/sim"
)

// The truck under constant force has the exact solution
//
//	x(t) = x0 + v0 t + F/(2 m) t^2
//	v(t) = v0 + F/m t
//
// so the numerical trajectory must reproduce it to solver accuracy.
func TestTruckMatchesClosedForm(t *testing.T) {
	truck := plants.NewTruck()
	solver := sim.New(integrators.NewRK45())

	result, err := solver.Solve(context.Background(), truck, truck.DefaultState(), truck.DefaultHorizon(), sim.DefaultConfig())
	require.NoError(t, err)
	require.Len(t, result.States, sim.DefaultSamples)

	accel := truck.Force / (truck.TruckMass + truck.CargoMass)
	for i, x := range result.States {
		ti := result.Times[i]
		require.InDelta(t, 4*ti+0.5*accel*ti*ti, x[0], 1e-6, "position at t=%g", ti)
		require.InDelta(t, 4+accel*ti, x[1], 1e-6, "speed at t=%g", ti)
	}
}

func TestTruckDefaults(t *testing.T) {
	truck := plants.NewTruck()

	require.Equal(t, 2, truck.StateDim())
	require.Len(t, truck.DefaultState(), truck.StateDim())
	require.Len(t, truck.StateNames(), truck.StateDim())
	require.InDelta(t, 3210.0, truck.TruckMass+truck.CargoMass, 1e-12)
}

func TestTruckSetParam(t *testing.T) {
	truck := plants.NewTruck()

	require.NoError(t, truck.SetParam("m_u", 0))
	require.Zero(t, truck.CargoMass)

	err := truck.SetParam("warp_drive", 1)
	require.Error(t, err)
}
