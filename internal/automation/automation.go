// Package automation runs batches of problems: scripted scenarios read from
// YAML and sweeps over one model parameter or the step count.
package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"runtime"

	"github.com/san-kum/fwdeuler/internal/config"
	"github.com/san-kum/fwdeuler/internal/dynamo"
	"github.com/san-kum/fwdeuler/internal/experiment"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"
)

// SweepSteps selects the step count as the swept quantity.
const SweepSteps = "steps"

var ErrEmptyBatch = errors.New("automation: nothing to run")

// Scenario is a named list of problems solved in order.
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Runs        []ScenarioRun `yaml:"runs"`
}

// ScenarioRun is one problem of a scenario. Its fields are those of a
// problem file plus an optional label.
type ScenarioRun struct {
	Label  string
	Config *config.Config
}

func (r *ScenarioRun) UnmarshalYAML(n *yaml.Node) error {
	var head struct {
		Label string `yaml:"label"`
		Model string `yaml:"model"`
	}
	if err := n.Decode(&head); err != nil {
		return err
	}
	cfg := config.ForModel(head.Model)
	if err := n.Decode(cfg); err != nil {
		return err
	}
	r.Label = head.Label
	if r.Label == "" {
		r.Label = cfg.Model
	}
	r.Config = cfg
	return nil
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if len(sc.Runs) == 0 {
		return nil, fmt.Errorf("%w: scenario %q has no runs", ErrEmptyBatch, sc.Name)
	}
	for i, run := range sc.Runs {
		if err := run.Config.Validate(); err != nil {
			return nil, fmt.Errorf("run %d (%s): %w", i+1, run.Label, err)
		}
	}
	return &sc, nil
}

// RunScenario solves every run in order and stops at the first failure,
// returning the outcomes completed so far.
func RunScenario(ctx context.Context, sc *Scenario, registry *experiment.Registry, logger *slog.Logger) ([]*experiment.Outcome, error) {
	outcomes := make([]*experiment.Outcome, 0, len(sc.Runs))

	for i, run := range sc.Runs {
		logger.Info("scenario step", "scenario", sc.Name, "step", i+1, "of", len(sc.Runs), "label", run.Label)

		out, err := experiment.New(run.Config, registry, logger).Run(ctx)
		if err != nil {
			return outcomes, fmt.Errorf("step %d (%s): %w", i+1, run.Label, err)
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}

// Sweep solves Base once per value of Param. Param is a model parameter
// name or SweepSteps.
type Sweep struct {
	Base    *config.Config
	Param   string
	Values  []float64
	Workers int
}

type SweepPoint struct {
	Value   float64
	Dt      float64
	Final   dynamo.State
	Metrics map[string]float64
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// RunSweep solves the sweep points concurrently, at most Workers at a time
// (GOMAXPROCS when unset). Points are returned in the order of Values.
func RunSweep(ctx context.Context, sw Sweep, registry *experiment.Registry, logger *slog.Logger) ([]SweepPoint, error) {
	if len(sw.Values) == 0 {
		return nil, fmt.Errorf("%w: sweep over %q has no values", ErrEmptyBatch, sw.Param)
	}
	workers := sw.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	cfgs := make([]*config.Config, len(sw.Values))
	for i, val := range sw.Values {
		cfg, err := sweepConfig(sw.Base, sw.Param, val)
		if err != nil {
			return nil, err
		}
		cfgs[i] = cfg
	}

	points := make([]SweepPoint, len(sw.Values))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, cfg := range cfgs {
		i, cfg := i, cfg
		val := sw.Values[i]
		g.Go(func() error {
			out, err := experiment.New(cfg, registry, logger).Run(gctx)
			if err != nil {
				return fmt.Errorf("%s=%g: %w", sw.Param, val, err)
			}
			points[i] = SweepPoint{
				Value:   val,
				Dt:      out.Solution.Dt,
				Final:   out.Solution.Final(),
				Metrics: out.Metrics,
			}
			logger.Debug("sweep point", "param", sw.Param, "value", val, "final", points[i].Final)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

func sweepConfig(base *config.Config, param string, val float64) (*config.Config, error) {
	cfg := base.Clone()
	if param == SweepSteps {
		if val != math.Trunc(val) || val < 1 {
			return nil, fmt.Errorf("%w: sweep value %g", dynamo.ErrInvalidSteps, val)
		}
		cfg.Steps = int(val)
		return cfg, nil
	}
	if cfg.Params == nil {
		cfg.Params = make(map[string]float64)
	}
	cfg.Params[param] = val
	return cfg, nil
}
