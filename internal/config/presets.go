package config

import (
	"fmt"
	"sort"
)

var Presets = map[string]map[string]*Config{
	"pendulum": {
		"demo": {
			Model: "pendulum", T0: 0, TEnd: 10, Steps: 1000,
			InitialCondition: Vector(DefaultTheta, 0),
			Params:           map[string]float64{"length": 1, "gravity": 9.81},
		},
		"small": {
			Model: "pendulum", TEnd: 20, Steps: 2000,
			InitialCondition: Vector(0.2, 0),
		},
		"large": {
			Model: "pendulum", TEnd: 20, Steps: 2000,
			InitialCondition: Vector(2.5, 0),
		},
		"spinning": {
			Model: "pendulum", TEnd: 30, Steps: 3000,
			InitialCondition: Vector(0.1, 8),
		},
	},
	"decay": {
		"unit": {
			Model: "decay", TEnd: 1, Steps: 100,
			InitialCondition: Scalar(1),
			Params:           map[string]float64{"rate": -1},
		},
		"unstable": {
			Model: "decay", TEnd: 2, Steps: 20,
			InitialCondition: Scalar(1),
			Params:           map[string]float64{"rate": -50},
		},
	},
	"spring_mass": {
		"bounce": {
			Model: "spring_mass", TEnd: 20, Steps: 2000,
			InitialCondition: Vector(2, 0),
		},
		"fast": {
			Model: "spring_mass", TEnd: 10, Steps: 1000,
			InitialCondition: Vector(1, 5),
		},
		"damped": {
			Model: "spring_mass", TEnd: 10, Steps: 1000,
			InitialCondition: Vector(1, 0),
			Params:           map[string]float64{"damping": 0.8},
		},
	},
	"vanderpol": {
		"limit_cycle": {
			Model: "vanderpol", TEnd: 30, Steps: 6000,
			InitialCondition: Vector(2, 0),
		},
	},
	"lorenz": {
		"butterfly": {
			Model: "lorenz", TEnd: 40, Steps: 40000,
			InitialCondition: Vector(1, 1, 1),
		},
	},
	"duffing": {
		"chaos": {
			Model: "duffing", TEnd: 100, Steps: 20000,
			InitialCondition: Vector(1, 0),
		},
	},
}

// GetPreset returns a copy of the named preset, or nil if none exists.
func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// LookupPreset is GetPreset with an error naming the available presets.
func LookupPreset(model, preset string) (*Config, error) {
	cfg := GetPreset(model, preset)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s/%s (available: %v)", ErrUnknownPreset, model, preset, ListPresets(model))
	}
	return cfg, nil
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
