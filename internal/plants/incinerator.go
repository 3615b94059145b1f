package plants

import (
	"fmt"

	"github.com/cirlab/cirsim/internal/dynamo"
)

// Incinerator models a municipal waste incinerator as two coupled
// compartments, the waste bed on the grate and the freeboard above it.
//
// State: [M_w, M_char, T_w, M_gw, M_gf, T_gf]
//
//	dM_w/dt    = F_in - F_out - R_w
//	dM_char/dt = -F_char_out + P_char - R_char
//	dT_w/dt    = (F_in c_pw T_w + F_aI c_pg (T_aI - T_w) + Q) /
//	             (c_pw M_w + c_pchar M_char + c_pm M_grate)
//	dM_gw/dt   = F_aI - F_gw_out + R_g
//	dM_gf/dt   = F_gw_out - F_g_out + F_aII
//	dT_gf/dt   = (F_gw_out c_pg (T_w - T_gf) + F_aII c_pg (T_aII - T_gf) + Q_g - Q_ext) /
//	             (c_pg M_gf + c_pm M_fb)
//
// The energy-balance denominators are state-dependent heat capacities; they
// carry no guard against reaching zero, so a degenerate parameterization
// propagates as a non-finite state and aborts the run.
type Incinerator struct {
	// Waste mass balance.
	InletWaste  float64 // F_in, inlet waste flow
	OutletAshes float64 // F_out, outlet ashes flow
	WasteRate   float64 // R_w, waste consumption rate

	// Char mass balance.
	CharOut  float64 // F_char_out, output flow of char
	CharProd float64 // P_char, production rate due to pyrolysis
	CharRate float64 // R_char, consumption rate due to combustion

	// Waste-bed energy balance.
	CpWaste   float64 // c_pw, specific heat of waste
	AirPrim   float64 // F_aI, primary air flow
	CpGas     float64 // c_pg, specific heat of gas
	TAirPrim  float64 // T_aI, primary air temperature
	HeatComb  float64 // Q, exothermic reaction heat
	CpChar    float64 // c_pchar, specific heat of char
	CpMetal   float64 // c_pm, specific heat of structural metal
	GrateMass float64 // M_grate, grate mass

	// Waste-bed and freeboard gas balances.
	GasWasteOut float64 // F_gw_out, gas flow leaving the waste bed
	GasProd     float64 // R_g, gas production from combustion/pyrolysis
	GasOut      float64 // F_g_out, gas flow leaving the freeboard
	AirSec      float64 // F_aII, secondary air flow

	// Freeboard energy balance.
	FreeboardMass float64 // M_fb, freeboard structure mass
	TAirSec       float64 // T_aII, secondary air temperature
	HeatGas       float64 // Q_g, heat released in the freeboard
	HeatExt       float64 // Q_ext, external heat draw on the freeboard gas
}

// NewIncinerator returns the reference parameterization. Note that both
// energy balances share the same effective metal specific heat.
func NewIncinerator() *Incinerator {
	return &Incinerator{
		InletWaste:  100,
		OutletAshes: 10,
		WasteRate:   70,

		CharOut:  2,
		CharProd: 6,
		CharRate: 3,

		CpWaste:   1,
		AirPrim:   5,
		CpGas:     5,
		TAirPrim:  20,
		HeatComb:  100,
		CpChar:    1,
		CpMetal:   5,
		GrateMass: 500,

		GasWasteOut: 2,
		GasProd:     1,
		GasOut:      2,
		AirSec:      3,

		FreeboardMass: 120,
		TAirSec:       20,
		HeatGas:       450,
		HeatExt:       40,
	}
}

func (inc *Incinerator) StateDim() int { return 6 }

func (inc *Incinerator) Derive(x dynamo.State, _ float64) dynamo.State {
	wasteMass, charMass, bedTemp := x[0], x[1], x[2]
	gasFreeboard, freeboardTemp := x[4], x[5]

	bedCapacity := inc.CpWaste*wasteMass + inc.CpChar*charMass + inc.CpMetal*inc.GrateMass
	freeboardCapacity := inc.CpGas*gasFreeboard + inc.CpMetal*inc.FreeboardMass

	return dynamo.State{
		inc.InletWaste - inc.OutletAshes - inc.WasteRate,
		-inc.CharOut + inc.CharProd - inc.CharRate,
		(inc.InletWaste*inc.CpWaste*bedTemp + inc.AirPrim*inc.CpGas*(inc.TAirPrim-bedTemp) + inc.HeatComb) / bedCapacity,
		inc.AirPrim - inc.GasWasteOut + inc.GasProd,
		inc.GasWasteOut - inc.GasOut + inc.AirSec,
		(inc.GasWasteOut*inc.CpGas*(bedTemp-freeboardTemp) + inc.AirSec*inc.CpGas*(inc.TAirSec-freeboardTemp) + inc.HeatGas - inc.HeatExt) / freeboardCapacity,
	}
}

// DefaultState starts with an empty grate and everything at ambient
// temperature.
func (inc *Incinerator) DefaultState() dynamo.State {
	return dynamo.State{0, 0, 20, 0, 0, 20}
}

func (inc *Incinerator) StateNames() []string {
	return []string{
		"waste mass, M_w (kg)",
		"char mass, M_char (kg)",
		"wastebed temperature, T_w (C)",
		"wastebed gas mass, M_gw (kg)",
		"freeboard gas mass, M_gf (kg)",
		"freeboard gas temperature, T_gf (C)",
	}
}

// DefaultHorizon is three hours, in minutes.
func (inc *Incinerator) DefaultHorizon() float64 { return 3 * 60 }

func (inc *Incinerator) GetParams() map[string]float64 {
	return map[string]float64{
		"f_in":       inc.InletWaste,
		"f_out":      inc.OutletAshes,
		"r_w":        inc.WasteRate,
		"f_char_out": inc.CharOut,
		"p_char":     inc.CharProd,
		"r_char":     inc.CharRate,
		"c_p_w":      inc.CpWaste,
		"f_ai":       inc.AirPrim,
		"c_p_g":      inc.CpGas,
		"t_ai":       inc.TAirPrim,
		"q":          inc.HeatComb,
		"c_p_char":   inc.CpChar,
		"c_p_m":      inc.CpMetal,
		"m_grate":    inc.GrateMass,
		"f_g_w_out":  inc.GasWasteOut,
		"r_g":        inc.GasProd,
		"f_g_out":    inc.GasOut,
		"f_aii":      inc.AirSec,
		"m_f_b":      inc.FreeboardMass,
		"t_aii":      inc.TAirSec,
		"q_g":        inc.HeatGas,
		"q_ext":      inc.HeatExt,
	}
}

func (inc *Incinerator) SetParam(name string, value float64) error {
	switch name {
	case "f_in":
		inc.InletWaste = value
	case "f_out":
		inc.OutletAshes = value
	case "r_w":
		inc.WasteRate = value
	case "f_char_out":
		inc.CharOut = value
	case "p_char":
		inc.CharProd = value
	case "r_char":
		inc.CharRate = value
	case "c_p_w":
		inc.CpWaste = value
	case "f_ai":
		inc.AirPrim = value
	case "c_p_g":
		inc.CpGas = value
	case "t_ai":
		inc.TAirPrim = value
	case "q":
		inc.HeatComb = value
	case "c_p_char":
		inc.CpChar = value
	case "c_p_m":
		inc.CpMetal = value
	case "m_grate":
		inc.GrateMass = value
	case "f_g_w_out":
		inc.GasWasteOut = value
	case "r_g":
		inc.GasProd = value
	case "f_g_out":
		inc.GasOut = value
	case "f_aii":
		inc.AirSec = value
	case "m_f_b":
		inc.FreeboardMass = value
	case "t_aii":
		inc.TAirSec = value
	case "q_g":
		inc.HeatGas = value
	case "q_ext":
		inc.HeatExt = value
	default:
		return fmt.Errorf("%w: %q", dynamo.ErrUnknownParam, name)
	}
	return nil
}
