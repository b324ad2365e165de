package main

import (
	"fmt"
	"math"
	"slices"
	"text/tabwriter"

	"github.com/san-kum/fwdeuler/internal/analysis"
	"github.com/san-kum/fwdeuler/internal/config"
	"github.com/san-kum/fwdeuler/internal/dynamo"
	"github.com/san-kum/fwdeuler/internal/experiment"
	"github.com/san-kum/fwdeuler/internal/viz"
	"github.com/spf13/cobra"
)

func (a *app) newConvergeCmd() *cobra.Command {
	var f runFlags
	var steps []int

	cmd := &cobra.Command{
		Use:   "converge [model]",
		Short: "measure the observed order of accuracy against the exact solution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(steps) == 0 {
				return fmt.Errorf("%w: --steps is empty", dynamo.ErrInvalidSteps)
			}
			cfg, err := f.resolve(cmd, args[0])
			if err != nil {
				return err
			}
			// --steps here is the refinement list, not a single count.
			cfg.Steps = slices.Max(steps)

			dyn, _, err := experiment.New(cfg, a.registry, a.logger).Setup()
			if err != nil {
				return err
			}
			sys, ok := dyn.(dynamo.ExactSystem)
			if !ok {
				return fmt.Errorf("%w: model %s", analysis.ErrNoExactSolution, cfg.Model)
			}

			u0 := dynamo.State(cfg.InitialCondition.Values)
			if len(u0) == 0 {
				u0 = dyn.DefaultState()
			}

			a.logger.Info("convergence study", "model", cfg.Model, "steps", steps)
			points, err := analysis.Convergence(sys, u0, cfg.Span(), steps)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, viz.Header.Render(fmt.Sprintf("%s on [%g, %g]", cfg.Model, cfg.T0, cfg.TEnd)))
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STEPS\tDT\tERROR\tMAX ERROR\tORDER")
			for _, p := range points {
				order := "-"
				if !math.IsNaN(p.Order) {
					order = fmt.Sprintf("%.3f", p.Order)
				}
				fmt.Fprintf(w, "%d\t%.4g\t%.6e\t%.6e\t%s\n", p.Steps, p.Dt, p.Error, p.MaxError, order)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nobserved order: %.3f\n", analysis.ObservedOrder(points))
			return nil
		},
	}

	cmd.Flags().IntSliceVar(&steps, "steps", []int{50, 100, 200, 400}, "step counts to compare")
	cmd.Flags().Float64Var(&f.t0, "t0", config.DefaultT0, "start time")
	cmd.Flags().Float64Var(&f.duration, "time", config.DefaultTEnd, "end time")
	cmd.Flags().Float64SliceVar(&f.ic, "ic", nil, "initial condition")
	cmd.Flags().StringArrayVar(&f.params, "param", nil, "model parameter name=value (repeatable)")
	cmd.Flags().StringVar(&f.preset, "preset", "", "use preset configuration")

	return cmd
}

func (a *app) newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Fprintf(out, "no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Fprintf(out, "presets for %s:\n", args[0])
			for _, name := range presets {
				p := config.GetPreset(args[0], name)
				fmt.Fprintf(out, "  %-12s t=[%g, %g] steps=%d\n", name, p.T0, p.TEnd, p.Steps)
			}
			return nil
		},
	}
}

// newDemoCmd solves the undamped pendulum (L=1, theta0=pi/4, omega0=0) on
// [0, 10] with 1000 steps and charts both components.
func (a *app) newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "solve the default pendulum and plot it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			outcome, err := experiment.New(cfg, a.registry, a.logger).Run(cmd.Context())
			if err != nil {
				return err
			}
			sol := outcome.Solution

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, viz.Header.Render("pendulum, forward euler"))
			final := sol.Final()
			fmt.Fprintf(out, "t=%.6g theta=%.6f omega=%.6f\n", sol.T[sol.Len()-1], final[0], final[1])
			if theta, err := sol.Column(0); err == nil {
				fmt.Fprintf(out, "theta %s\n", viz.Sparkline(theta, 60))
			}
			fmt.Fprintln(out)
			for _, graph := range viz.TimeSeries(cfg.Model, sol, 80, 10) {
				fmt.Fprintln(out, graph)
				fmt.Fprintln(out)
			}
			fmt.Fprint(out, viz.Metrics(outcome.Metrics))
			return nil
		},
	}
}
