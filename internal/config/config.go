package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultModel = "pendulum"
	DefaultT0    = 0.0
	DefaultTEnd  = 10.0
	DefaultSteps = 1000
	DefaultTheta = math.Pi / 4
)

var (
	ErrInvalidConfig = errors.New("config: invalid configuration")
	ErrUnknownPreset = errors.New("config: unknown preset")
)

// Config describes one initial-value problem.
type Config struct {
	Model            string             `yaml:"model"`
	T0               float64            `yaml:"t0"`
	TEnd             float64            `yaml:"t_end"`
	Steps            int                `yaml:"steps"`
	InitialCondition InitialCondition   `yaml:"initial_condition,omitempty"`
	Params           map[string]float64 `yaml:"params,omitempty"`
}

// InitialCondition is either a single number (scalar ODE) or a list.
// An empty InitialCondition means the model's default state.
type InitialCondition struct {
	Values []float64
	Scalar bool
}

func Scalar(v float64) InitialCondition {
	return InitialCondition{Values: []float64{v}, Scalar: true}
}

func Vector(vs ...float64) InitialCondition {
	return InitialCondition{Values: vs}
}

func (ic InitialCondition) IsZero() bool { return len(ic.Values) == 0 }

func (ic *InitialCondition) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		var v float64
		if err := n.Decode(&v); err != nil {
			return fmt.Errorf("initial_condition: %w", err)
		}
		*ic = Scalar(v)
	case yaml.SequenceNode:
		var vs []float64
		if err := n.Decode(&vs); err != nil {
			return fmt.Errorf("initial_condition: %w", err)
		}
		*ic = Vector(vs...)
	default:
		return fmt.Errorf("initial_condition: line %d: expected a number or a list of numbers", n.Line)
	}
	return nil
}

func (ic InitialCondition) MarshalYAML() (interface{}, error) {
	if ic.Scalar && len(ic.Values) == 1 {
		return ic.Values[0], nil
	}
	return ic.Values, nil
}

func DefaultConfig() *Config {
	return &Config{
		Model:            DefaultModel,
		T0:               DefaultT0,
		TEnd:             DefaultTEnd,
		Steps:            DefaultSteps,
		InitialCondition: Vector(DefaultTheta, 0),
		Params: map[string]float64{
			"length":  1.0,
			"gravity": 9.81,
		},
	}
}

// ForModel returns the defaults for model. Only the default pendulum keeps
// the built-in initial condition and parameters; other models start from
// their own defaults.
func ForModel(model string) *Config {
	cfg := DefaultConfig()
	if model != "" && model != cfg.Model {
		cfg.Model = model
		cfg.InitialCondition = InitialCondition{}
		cfg.Params = nil
	}
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults. A file naming a different model
// drops the default pendulum parameters and initial condition.
func Parse(data []byte) (*Config, error) {
	var head struct {
		Model string `yaml:"model"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, err
	}

	cfg := ForModel(head.Model)
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects problems the integrator would refuse, so a bad file is
// reported before any model is built.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("%w: model is required", ErrInvalidConfig)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", ErrInvalidConfig, c.Steps)
	}
	if !(c.TEnd > c.T0) {
		return fmt.Errorf("%w: t_end (%g) must be greater than t0 (%g)", ErrInvalidConfig, c.TEnd, c.T0)
	}
	return nil
}

func (c *Config) Span() [2]float64 {
	return [2]float64{c.T0, c.TEnd}
}

// Dt returns the uniform step size the configuration implies.
func (c *Config) Dt() float64 {
	if c.Steps <= 0 {
		return 0
	}
	return (c.TEnd - c.T0) / float64(c.Steps)
}

func (c *Config) Clone() *Config {
	cp := *c
	cp.InitialCondition.Values = append([]float64(nil), c.InitialCondition.Values...)
	if c.Params != nil {
		cp.Params = make(map[string]float64, len(c.Params))
		for k, v := range c.Params {
			cp.Params[k] = v
		}
	}
	return &cp
}
