package config

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, "pendulum", cfg.Model)
	require.NoError(t, cfg.Validate())
	require.InDelta(t, 0.01, cfg.Dt(), 1e-15)
	require.Equal(t, []float64{math.Pi / 4, 0}, cfg.InitialCondition.Values)
	require.False(t, cfg.InitialCondition.Scalar)
}

func TestForModel(t *testing.T) {
	cfg := ForModel("lorenz")
	require.Equal(t, "lorenz", cfg.Model)
	require.True(t, cfg.InitialCondition.IsZero())
	require.Nil(t, cfg.Params)
	require.Equal(t, DefaultSteps, cfg.Steps)

	require.Equal(t, DefaultConfig(), ForModel(""))
	require.Equal(t, DefaultConfig(), ForModel(DefaultModel))
}

func TestParseScalarAndVectorInitialCondition(t *testing.T) {
	scalar, err := Parse([]byte("model: decay\nt_end: 2\nsteps: 4\ninitial_condition: 1.5\nparams:\n  rate: -3\n"))
	require.NoError(t, err)
	require.True(t, scalar.InitialCondition.Scalar)
	require.Equal(t, []float64{1.5}, scalar.InitialCondition.Values)
	require.Equal(t, map[string]float64{"rate": -3}, scalar.Params)
	require.Equal(t, 0.5, scalar.Dt())

	vector, err := Parse([]byte("model: lorenz\ninitial_condition: [1, 2, 3]\n"))
	require.NoError(t, err)
	require.False(t, vector.InitialCondition.Scalar)
	require.Equal(t, []float64{1, 2, 3}, vector.InitialCondition.Values)
	require.Nil(t, vector.Params, "pendulum defaults must not leak into other models")
	require.Equal(t, DefaultSteps, vector.Steps)
}

func TestParseMergesPendulumParams(t *testing.T) {
	cfg, err := Parse([]byte("params:\n  length: 2\n"))
	require.NoError(t, err)
	require.Equal(t, 2.0, cfg.Params["length"])
	require.Equal(t, 9.81, cfg.Params["gravity"])
	require.Equal(t, []float64{DefaultTheta, 0}, cfg.InitialCondition.Values)
}

func TestParseRejectsMappingInitialCondition(t *testing.T) {
	_, err := Parse([]byte("initial_condition:\n  theta: 1\n"))
	require.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problem.yaml")

	cfg := DefaultConfig()
	cfg.Model = "decay"
	cfg.InitialCondition = Scalar(2)
	cfg.Params = map[string]float64{"rate": -0.5}
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no model", func(c *Config) { c.Model = "" }},
		{"zero steps", func(c *Config) { c.Steps = 0 }},
		{"negative steps", func(c *Config) { c.Steps = -1 }},
		{"empty span", func(c *Config) { c.TEnd = c.T0 }},
		{"reversed span", func(c *Config) { c.T0, c.TEnd = 5, 1 }},
		{"nan end", func(c *Config) { c.TEnd = math.NaN() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidConfig))
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("pendulum", "small")
	require.NotNil(t, cfg)
	require.Equal(t, 0.2, cfg.InitialCondition.Values[0])

	cfg.InitialCondition.Values[0] = 99
	require.Equal(t, 0.2, GetPreset("pendulum", "small").InitialCondition.Values[0], "preset must be copied")
}

func TestGetPreset_NotFound(t *testing.T) {
	require.Nil(t, GetPreset("pendulum", "nonexistent"))
	require.Nil(t, GetPreset("nonexistent", "small"))

	_, err := LookupPreset("pendulum", "nonexistent")
	require.ErrorIs(t, err, ErrUnknownPreset)
}

func TestPresetsAreValid(t *testing.T) {
	for model, presets := range Presets {
		for name, cfg := range presets {
			require.Equal(t, model, cfg.Model, "preset %s/%s", model, name)
			require.NoError(t, cfg.Validate(), "preset %s/%s", model, name)
		}
	}
}

func TestListPresets(t *testing.T) {
	require.Equal(t, []string{"demo", "large", "small", "spinning"}, ListPresets("pendulum"))
	require.Nil(t, ListPresets("nonexistent"))
}
