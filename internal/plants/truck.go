package plants

import (
	"fmt"

	"github.com/cirlab/cirsim/internal/dynamo"
)

// Truck models the transport truck moving unsorted material between two
// compartments of the flow network as a rigid body under constant net force.
//
// State: [x, v]
//
//	dx/dt = v
//	dv/dt = F / (m_truck + m_cargo)
type Truck struct {
	TruckMass float64 // m_truck (kg)
	CargoMass float64 // m_u, unsorted material on board (kg)
	Force     float64 // F, net traction force (N)
}

func NewTruck() *Truck {
	return &Truck{
		TruckMass: 3000,
		CargoMass: 210,
		Force:     4000,
	}
}

func (tr *Truck) StateDim() int { return 2 }

func (tr *Truck) Derive(x dynamo.State, _ float64) dynamo.State {
	return dynamo.State{x[1], tr.Force / (tr.TruckMass + tr.CargoMass)}
}

func (tr *Truck) DefaultState() dynamo.State {
	return dynamo.State{0, 4}
}

func (tr *Truck) StateNames() []string {
	return []string{
		"position, x (m)",
		"speed, dx/dt (m/s)",
	}
}

func (tr *Truck) DefaultHorizon() float64 { return 15 }

func (tr *Truck) GetParams() map[string]float64 {
	return map[string]float64{
		"m_truck": tr.TruckMass,
		"m_u":     tr.CargoMass,
		"f":       tr.Force,
	}
}

func (tr *Truck) SetParam(name string, value float64) error {
	switch name {
	case "m_truck":
		tr.TruckMass = value
	case "m_u":
		tr.CargoMass = value
	case "f":
		tr.Force = value
	default:
		return fmt.Errorf("%w: %q", dynamo.ErrUnknownParam, name)
	}
	return nil
}
