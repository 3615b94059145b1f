package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, DefaultPlant, cfg.Plant)
	require.Equal(t, DefaultIntegrator, cfg.Integrator)
	require.Negative(t, cfg.TFinal, "t_final should defer to the plant default")
	require.Equal(t, DefaultSamples, cfg.Samples)
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	want := DefaultConfig()
	want.Plant = "droop"
	want.TFinal = 15
	want.InitState = []float64{26, 2.82, 0}
	want.Params = map[string]float64{"irradiance": 80}

	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("plant: incinerator\nt_final: 180\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "incinerator", cfg.Plant)
	require.Equal(t, 180.0, cfg.TFinal)
	require.Equal(t, DefaultIntegrator, cfg.Integrator)
	require.Equal(t, DefaultSamples, cfg.Samples)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("plant: [unclosed"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("truck", "empty")
	require.NotNil(t, cfg)
	require.Equal(t, 0.0, cfg.Params["m_u"])

	// Mutating the copy must not leak into the preset table.
	cfg.Params["m_u"] = 999
	again := GetPreset("truck", "empty")
	require.Equal(t, 0.0, again.Params["m_u"])
}

func TestGetPresetNotFound(t *testing.T) {
	require.Nil(t, GetPreset("truck", "nonexistent"))
	require.Nil(t, GetPreset("nonexistent", "nominal"))
}

func TestListPresets(t *testing.T) {
	for _, plant := range []string{"incinerator", "droop", "truck"} {
		names := ListPresets(plant)
		require.NotEmpty(t, names)
		require.Contains(t, names, "nominal")
	}
	require.Nil(t, ListPresets("nonexistent"))
}
