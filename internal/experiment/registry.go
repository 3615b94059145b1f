package experiment

import (
	"fmt"
	"sort"

	"github.com/cirlab/cirsim/internal/dynamo"
	"github.com/cirlab/cirsim/internal/integrators"
	"github.com/cirlab/cirsim/internal/metrics"
	"github.com/cirlab/cirsim/internal/plants"
)

type Registry struct {
	plants      map[string]func() Model
	integrators map[string]func() dynamo.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		plants:      make(map[string]func() Model),
		integrators: make(map[string]func() dynamo.Integrator),
	}

	r.plants["incinerator"] = func() Model { return plants.NewIncinerator() }
	r.plants["droop"] = func() Model { return plants.NewDroop() }
	r.plants["truck"] = func() Model { return plants.NewTruck() }

	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() dynamo.Integrator { return integrators.NewRK4() }
	r.integrators["rk45"] = func() dynamo.Integrator { return integrators.NewRK45() }

	return r
}

func (r *Registry) GetPlant(name string) (Model, error) {
	fn, ok := r.plants[name]
	if !ok {
		return nil, fmt.Errorf("unknown plant: %s (available: %v)", name, r.PlantNames())
	}
	return fn(), nil
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (available: %v)", name, r.IntegratorNames())
	}
	return fn(), nil
}

func (r *Registry) PlantNames() []string {
	names := make([]string, 0, len(r.plants))
	for name := range r.plants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) IntegratorNames() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns the diagnostics worth watching for a given plant.
func (r *Registry) DefaultMetrics(name string, model Model) []dynamo.Metric {
	switch name {
	case "incinerator":
		return []dynamo.Metric{metrics.NewPeak("peak_bed_temp", 2)}
	case "droop":
		ms := []dynamo.Metric{metrics.NewPeak("peak_biomass", 0)}
		if d, ok := model.(*plants.Droop); ok {
			ms = append(ms, metrics.NewMassBalanceDrift(d.SIn, d.Th))
		}
		return ms
	case "truck":
		return []dynamo.Metric{metrics.NewPeak("peak_speed", 1)}
	default:
		return nil
	}
}
