package experiment

import (
	"context"
	"testing"
)

func TestRegistryPlants(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"incinerator", "droop", "truck"} {
		model, err := r.GetPlant(name)
		if err != nil {
			t.Fatalf("GetPlant(%s): %v", name, err)
		}
		if len(model.DefaultState()) != model.StateDim() {
			t.Errorf("%s: default state length %d != dim %d", name, len(model.DefaultState()), model.StateDim())
		}
		if model.DefaultHorizon() <= 0 {
			t.Errorf("%s: non-positive default horizon", name)
		}
	}

	if _, err := r.GetPlant("reactor"); err == nil {
		t.Error("expected error for unknown plant")
	}
}

func TestRegistryIntegrators(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"euler", "rk4", "rk45"} {
		if _, err := r.GetIntegrator(name); err != nil {
			t.Fatalf("GetIntegrator(%s): %v", name, err)
		}
	}

	if _, err := r.GetIntegrator("leapfrog"); err == nil {
		t.Error("expected error for unknown integrator")
	}
}

func TestExperimentRunWithOverrides(t *testing.T) {
	r := NewRegistry()
	model, _ := r.GetPlant("truck")
	integ, _ := r.GetIntegrator("rk45")

	cfg := Config{
		Plant:      "truck",
		Integrator: "rk45",
		TFinal:     -1, // plant default
		Samples:    50,
		Params:     map[string]float64{"m_u": 0},
	}

	exp := New(cfg)
	if err := exp.Setup(model, integ, r.DefaultMetrics("truck", model)); err != nil {
		t.Fatal(err)
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(result.States) != 50 {
		t.Errorf("expected 50 samples, got %d", len(result.States))
	}
	if _, ok := result.Metrics["peak_speed"]; !ok {
		t.Error("expected peak_speed metric")
	}

	// With the cargo removed the acceleration is F/m_truck = 4/3.
	finalSpeed := result.States[49][1]
	want := 4.0 + (4000.0/3000.0)*15.0
	if diff := finalSpeed - want; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("final speed %f, want %f", finalSpeed, want)
	}
}

func TestExperimentRejectsUnknownParam(t *testing.T) {
	r := NewRegistry()
	model, _ := r.GetPlant("droop")
	integ, _ := r.GetIntegrator("rk45")

	exp := New(Config{Plant: "droop", Params: map[string]float64{"bogus": 1}})
	if err := exp.Setup(model, integ, nil); err == nil {
		t.Error("expected setup failure on unknown parameter")
	}
}

func TestExperimentDerivedSeriesAttached(t *testing.T) {
	r := NewRegistry()
	model, _ := r.GetPlant("droop")
	integ, _ := r.GetIntegrator("rk45")

	exp := New(Config{Plant: "droop", TFinal: -1, Samples: 100})
	if err := exp.Setup(model, integ, nil); err != nil {
		t.Fatal(err)
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Derived) != 2 {
		t.Fatalf("expected 2 derived series, got %d", len(result.Derived))
	}
	if len(result.Derived[0].Values) != 100 {
		t.Error("derived series not aligned with mesh")
	}
}
