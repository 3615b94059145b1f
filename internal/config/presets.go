package config

import "sort"

// presets are named reference runs per plant. "nominal" reproduces the
// published parameterization of each compartment.
var presets = map[string]map[string]*Config{
	"incinerator": {
		"nominal": {
			Plant:      "incinerator",
			Integrator: DefaultIntegrator,
			TFinal:     3 * 60,
			Samples:    DefaultSamples,
			Tolerance:  DefaultTolerance,
			MaxSteps:   DefaultMaxSteps,
		},
		"no-external-draw": {
			Plant:      "incinerator",
			Integrator: DefaultIntegrator,
			TFinal:     3 * 60,
			Samples:    DefaultSamples,
			Tolerance:  DefaultTolerance,
			MaxSteps:   DefaultMaxSteps,
			Params:     map[string]float64{"q_ext": 0},
		},
	},
	"droop": {
		"nominal": {
			Plant:      "droop",
			Integrator: DefaultIntegrator,
			TFinal:     15,
			Samples:    DefaultSamples,
			Tolerance:  DefaultTolerance,
			MaxSteps:   DefaultMaxSteps,
		},
		"dim-light": {
			Plant:      "droop",
			Integrator: DefaultIntegrator,
			TFinal:     15,
			Samples:    DefaultSamples,
			Tolerance:  DefaultTolerance,
			MaxSteps:   DefaultMaxSteps,
			Params:     map[string]float64{"irradiance": 10},
		},
	},
	"truck": {
		"nominal": {
			Plant:      "truck",
			Integrator: DefaultIntegrator,
			TFinal:     15,
			Samples:    DefaultSamples,
			Tolerance:  DefaultTolerance,
			MaxSteps:   DefaultMaxSteps,
		},
		"empty": {
			Plant:      "truck",
			Integrator: DefaultIntegrator,
			TFinal:     15,
			Samples:    DefaultSamples,
			Tolerance:  DefaultTolerance,
			MaxSteps:   DefaultMaxSteps,
			Params:     map[string]float64{"m_u": 0},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil when unknown.
func GetPreset(plant, name string) *Config {
	group, ok := presets[plant]
	if !ok {
		return nil
	}
	cfg, ok := group[name]
	if !ok {
		return nil
	}

	out := *cfg
	if cfg.Params != nil {
		out.Params = make(map[string]float64, len(cfg.Params))
		for k, v := range cfg.Params {
			out.Params[k] = v
		}
	}
	if cfg.InitState != nil {
		out.InitState = append([]float64(nil), cfg.InitState...)
	}
	return &out
}

func ListPresets(plant string) []string {
	group, ok := presets[plant]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
