package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/fwdeuler/internal/config"
	"github.com/san-kum/fwdeuler/internal/experiment"
	"github.com/san-kum/fwdeuler/internal/storage"
	"github.com/san-kum/fwdeuler/internal/viz"
	"github.com/spf13/cobra"
)

type runFlags struct {
	t0         float64
	duration   float64
	steps      int
	ic         []float64
	params     []string
	configFile string
	preset     string
	noSave     bool
}

func (a *app) newRunCmd() *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run [model]",
		Short: "solve an initial-value problem and save the trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model := ""
			if len(args) > 0 {
				model = args[0]
			}
			cfg, err := f.resolve(cmd, model)
			if err != nil {
				return err
			}
			return a.run(cmd, cfg, !f.noSave)
		},
	}

	cmd.Flags().Float64Var(&f.t0, "t0", config.DefaultT0, "start time")
	cmd.Flags().Float64Var(&f.duration, "time", config.DefaultTEnd, "end time")
	cmd.Flags().IntVar(&f.steps, "steps", config.DefaultSteps, "number of uniform steps")
	cmd.Flags().Float64SliceVar(&f.ic, "ic", nil, "initial condition (comma separated, repeatable)")
	cmd.Flags().StringArrayVar(&f.params, "param", nil, "model parameter name=value (repeatable)")
	cmd.Flags().StringVar(&f.configFile, "config", "", "problem file (yaml)")
	cmd.Flags().StringVar(&f.preset, "preset", "", "use preset configuration")
	cmd.Flags().BoolVar(&f.noSave, "no-save", false, "do not store the run")

	return cmd
}

// resolve layers the problem definition: model defaults, then the preset,
// then the config file, then any flag given explicitly.
func (f *runFlags) resolve(cmd *cobra.Command, model string) (*config.Config, error) {
	var cfg *config.Config

	switch {
	case f.configFile != "":
		loaded, err := config.Load(f.configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if model != "" && model != loaded.Model {
			return nil, fmt.Errorf("%w: %s describes model %s, not %s",
				config.ErrInvalidConfig, f.configFile, loaded.Model, model)
		}
		cfg = loaded
	case f.preset != "":
		if model == "" {
			model = config.DefaultModel
		}
		preset, err := config.LookupPreset(model, f.preset)
		if err != nil {
			return nil, err
		}
		cfg = preset
	default:
		cfg = config.ForModel(model)
	}

	flags := cmd.Flags()
	if flags.Changed("t0") {
		cfg.T0 = f.t0
	}
	if flags.Changed("time") {
		cfg.TEnd = f.duration
	}
	if flags.Changed("steps") {
		cfg.Steps = f.steps
	}
	if flags.Changed("ic") {
		if len(f.ic) == 1 {
			cfg.InitialCondition = config.Scalar(f.ic[0])
		} else {
			cfg.InitialCondition = config.Vector(f.ic...)
		}
	}
	if len(f.params) > 0 {
		params, err := parseParams(f.params)
		if err != nil {
			return nil, err
		}
		if cfg.Params == nil {
			cfg.Params = make(map[string]float64, len(params))
		}
		for name, val := range params {
			cfg.Params[name] = val
		}
	}
	return cfg, nil
}

func parseParams(pairs []string) (map[string]float64, error) {
	params := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --param %q: expected name=value", pair)
		}
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --param %q: %w", pair, err)
		}
		params[strings.TrimSpace(name)] = val
	}
	return params, nil
}

func (a *app) run(cmd *cobra.Command, cfg *config.Config, save bool) error {
	out := cmd.OutOrStdout()

	outcome, err := experiment.New(cfg, a.registry, a.logger).Run(cmd.Context())
	if err != nil {
		return err
	}
	sol := outcome.Solution

	fmt.Fprintln(out, viz.Header.Render(fmt.Sprintf("%s: %d steps of dt=%g", cfg.Model, sol.Steps(), sol.Dt)))
	fmt.Fprintf(out, "completed in %v\n", outcome.Elapsed)
	fmt.Fprintf(out, "final state at t=%.6g: %v\n", sol.T[sol.Len()-1], []float64(sol.Final()))
	fmt.Fprintln(out, "\nmetrics:")
	fmt.Fprint(out, viz.Metrics(outcome.Metrics))

	if !save {
		return nil
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runID, err := st.Save(cmd.Context(), storage.RunMetadata{
		Model:   cfg.Model,
		T0:      cfg.T0,
		TEnd:    cfg.TEnd,
		Params:  outcome.Model.Params(),
		Metrics: outcome.Metrics,
	}, sol)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nrun id: %s\n", runID)
	return nil
}
