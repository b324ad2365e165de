package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/san-kum/fwdeuler/internal/config"
	"github.com/san-kum/fwdeuler/internal/dynamo"
	"github.com/san-kum/fwdeuler/internal/integrators"
	"github.com/san-kum/fwdeuler/internal/logging"
	"github.com/san-kum/fwdeuler/internal/metrics"
)

// Outcome is a solved problem together with its metrics.
type Outcome struct {
	Config   *config.Config
	Model    Model
	Solution *integrators.Solution
	Metrics  map[string]float64
	Elapsed  time.Duration
}

type Experiment struct {
	cfg      *config.Config
	registry *Registry
	metrics  []metrics.Metric
	logger   *slog.Logger
}

func New(cfg *config.Config, registry *Registry, logger *slog.Logger) *Experiment {
	return &Experiment{
		cfg:      cfg,
		registry: registry,
		metrics:  metrics.Defaults(),
		logger:   logger,
	}
}

// SetMetrics replaces the default metrics.
func (e *Experiment) SetMetrics(ms ...metrics.Metric) {
	e.metrics = ms
}

// Setup builds the model and the integrator with its initial condition.
func (e *Experiment) Setup() (Model, *integrators.Euler, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, nil, err
	}

	dyn, err := e.registry.GetModel(e.cfg.Model)
	if err != nil {
		return nil, nil, err
	}

	// Sorted so that a bad parameter is reported deterministically.
	names := make([]string, 0, len(e.cfg.Params))
	for name := range e.cfg.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := dyn.SetParam(name, e.cfg.Params[name]); err != nil {
			return nil, nil, fmt.Errorf("model %s: %w", e.cfg.Model, err)
		}
	}

	ic := e.cfg.InitialCondition.Values
	if len(ic) == 0 {
		ic = dyn.DefaultState()
	}
	if len(ic) != dyn.StateDim() {
		return nil, nil, fmt.Errorf("%w: model %s has %d state components, initial condition has %d",
			dynamo.ErrDimensionMismatch, e.cfg.Model, dyn.StateDim(), len(ic))
	}

	integ := integrators.New(dyn)
	if dyn.StateDim() == 1 {
		integ.SetScalarInitialCondition(ic[0])
	} else if err := integ.SetInitialCondition(ic); err != nil {
		return nil, nil, err
	}
	return dyn, integ, nil
}

// Run solves the configured problem. The context is only consulted before
// the solve starts; the step loop itself runs to completion.
func (e *Experiment) Run(ctx context.Context) (*Outcome, error) {
	dyn, integ, err := e.Setup()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.logger.Info("solving",
		"model", e.cfg.Model,
		"t0", e.cfg.T0,
		"t_end", e.cfg.TEnd,
		"steps", e.cfg.Steps,
		"dt", e.cfg.Dt(),
		"neq", integ.Dim(),
	)
	e.logger.Debug("parameters", "params", dyn.Params())

	start := time.Now()
	sol, err := integ.Solve(e.cfg.Span(), e.cfg.Steps)
	if err != nil {
		e.logger.Error("solve failed", "model", e.cfg.Model, "err", err)
		return nil, err
	}
	elapsed := time.Since(start)

	if e.logger.Enabled(ctx, logging.LevelTrace) {
		for n := range sol.T {
			e.logger.Log(ctx, logging.LevelTrace, "point", "n", n, "t", sol.T[n], "u", sol.U[n])
		}
	}

	out := &Outcome{
		Config:   e.cfg,
		Model:    dyn,
		Solution: sol,
		Metrics:  metrics.Evaluate(dyn, sol, e.metrics...),
		Elapsed:  elapsed,
	}

	if out.Metrics["stability"] < 1 {
		e.logger.Warn("trajectory left the stable region; reduce dt",
			"model", e.cfg.Model, "dt", sol.Dt, "stability", out.Metrics["stability"])
	}
	e.logger.Info("solved", "model", e.cfg.Model, "points", sol.Len(), "elapsed", elapsed)

	return out, nil
}
