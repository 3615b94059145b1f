package plants

import (
	"fmt"

	"github.com/cirlab/cirsim/internal/dynamo"
)

// Droop models light- and nutrient-limited microalgae growth in a chemostat
// using Droop kinetics.
//
// State: [X_alg, Q, S] (biomass, internal cell quota, remaining substrate).
//
//	mu  = mu_max * I/(I + K_sI + I^2/K_iI) * (1 - k_q/Q)
//	rho = rho_max * S/(S + K_S)
//
//	dX_alg/dt = mu X_alg - X_alg/T_h
//	dQ/dt     = rho - mu Q
//	dS/dt     = (S_in - S)/T_h - rho X_alg
//
// The culture also absorbs CO2 proportionally to the uptake rate; that flow
// is a derived quantity of the trajectory, not a state.
type Droop struct {
	MuMax      float64 // mu_max, maximum specific growth rate
	KsI        float64 // K_sI, light half-saturation; placeholder, no published value
	KiI        float64 // K_iI, light inhibition constant
	Kq         float64 // k_q, minimum cell quota
	KS         float64 // K_S, substrate half-saturation
	RhoMax     float64 // rho_max, maximum uptake rate
	Th         float64 // T_h, hydraulic residence time (1/D)
	SIn        float64 // S_in, inflow substrate concentration
	KCO2       float64 // K_CO2, CO2 absorption coefficient, in (0, 1)
	Irradiance float64 // I, incident light intensity
}

func NewDroop() *Droop {
	return &Droop{
		MuMax:      1.7,
		KsI:        0,
		KiI:        295,
		Kq:         1.7,
		KS:         0.1,
		RhoMax:     9.40,
		Th:         1.0 / 0.45,
		SIn:        100,
		KCO2:       0.3,
		Irradiance: 50,
	}
}

func (d *Droop) StateDim() int { return 3 }

// growth is the Haldane-type light factor times the Droop quota factor.
func (d *Droop) growth(quota float64) float64 {
	light := d.Irradiance / (d.Irradiance + d.KsI + d.Irradiance*d.Irradiance/d.KiI)
	return d.MuMax * light * (1 - d.Kq/quota)
}

// uptake is the Michaelis-Menten substrate uptake rate.
func (d *Droop) uptake(substrate float64) float64 {
	return d.RhoMax * substrate / (substrate + d.KS)
}

func (d *Droop) Derive(x dynamo.State, _ float64) dynamo.State {
	biomass, quota, substrate := x[0], x[1], x[2]

	mu := d.growth(quota)
	rho := d.uptake(substrate)

	return dynamo.State{
		mu*biomass - biomass/d.Th,
		rho - mu*quota,
		(d.SIn-substrate)/d.Th - rho*biomass,
	}
}

func (d *Droop) DefaultState() dynamo.State {
	return dynamo.State{26, 2.82, 0}
}

func (d *Droop) StateNames() []string {
	return []string{
		"algal biomass, X_alg (um^3/L)",
		"internal cell quota, Q (umol/um^3)",
		"remaining nutrients, S (umol/L)",
	}
}

// DefaultHorizon is fifteen days.
func (d *Droop) DefaultHorizon() float64 { return 15 }

// DerivedSeries reports the CO2 absorption flow K_CO2*rho(S) and the mass
// balance S + X_alg*Q. The balance should relax as a first-order system
// toward S_in, which makes it a useful integration diagnostic.
func (d *Droop) DerivedSeries(times []float64, states []dynamo.State) []dynamo.Series {
	co2 := make([]float64, len(states))
	balance := make([]float64, len(states))

	for i, x := range states {
		co2[i] = d.KCO2 * d.uptake(x[2])
		balance[i] = x[2] + x[0]*x[1]
	}

	return []dynamo.Series{
		{Name: "CO2 flow, K_CO2*rho (umol/(um^3 d))", Values: co2},
		{Name: "mass balance, S + X_alg*Q", Values: balance},
	}
}

func (d *Droop) GetParams() map[string]float64 {
	return map[string]float64{
		"mu_max":     d.MuMax,
		"k_si":       d.KsI,
		"k_ii":       d.KiI,
		"k_q":        d.Kq,
		"k_s":        d.KS,
		"rho_max":    d.RhoMax,
		"t_h":        d.Th,
		"s_in":       d.SIn,
		"k_co2":      d.KCO2,
		"irradiance": d.Irradiance,
	}
}

func (d *Droop) SetParam(name string, value float64) error {
	switch name {
	case "mu_max":
		d.MuMax = value
	case "k_si":
		d.KsI = value
	case "k_ii":
		d.KiI = value
	case "k_q":
		d.Kq = value
	case "k_s":
		d.KS = value
	case "rho_max":
		d.RhoMax = value
	case "t_h":
		d.Th = value
	case "s_in":
		d.SIn = value
	case "k_co2":
		d.KCO2 = value
	case "irradiance":
		d.Irradiance = value
	default:
		return fmt.Errorf("%w: %q", dynamo.ErrUnknownParam, name)
	}
	return nil
}
