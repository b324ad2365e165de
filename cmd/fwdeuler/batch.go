package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/san-kum/fwdeuler/internal/automation"
	"github.com/san-kum/fwdeuler/internal/config"
	"github.com/san-kum/fwdeuler/internal/storage"
	"github.com/san-kum/fwdeuler/internal/viz"
	"github.com/spf13/cobra"
)

func (a *app) newScenarioCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "solve every problem listed in a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := automation.LoadScenario(args[0])
			if err != nil {
				return err
			}

			outcomes, err := automation.RunScenario(cmd.Context(), sc, a.registry, a.logger)
			if err != nil {
				return err
			}

			var st *storage.Store
			if save {
				if st, err = a.openStore(); err != nil {
					return err
				}
				defer st.Close()
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, viz.Header.Render("scenario "+sc.Name))
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "LABEL\tMODEL\tSTEPS\tFINAL\tRUN")
			for i, o := range outcomes {
				id := "-"
				if st != nil {
					id, err = st.Save(cmd.Context(), storage.RunMetadata{
						Model:   o.Config.Model,
						T0:      o.Config.T0,
						TEnd:    o.Config.TEnd,
						Params:  o.Model.Params(),
						Metrics: o.Metrics,
					}, o.Solution)
					if err != nil {
						return err
					}
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%.6g\t%s\n",
					sc.Runs[i].Label, o.Config.Model, o.Solution.Steps(), []float64(o.Solution.Final()), id)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "store each run")
	return cmd
}

func (a *app) newSweepCmd() *cobra.Command {
	var f runFlags
	var param string
	var from, to float64
	var count, workers int

	cmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "solve a problem across a range of one parameter or of the step count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := f.resolve(cmd, args[0])
			if err != nil {
				return err
			}

			values := automation.Linspace(from, to, count)
			points, err := automation.RunSweep(cmd.Context(), automation.Sweep{
				Base:    base,
				Param:   param,
				Values:  values,
				Workers: workers,
			}, a.registry, a.logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, viz.Header.Render(fmt.Sprintf("%s: sweep over %s", base.Model, param)))
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "VALUE\tDT\tFINAL\tSTABILITY\tENERGY_DRIFT")
			for _, p := range points {
				fmt.Fprintf(w, "%g\t%.4g\t%.6g\t%.3f\t%.4g\n",
					p.Value, p.Dt, []float64(p.Final), p.Metrics["stability"], p.Metrics["energy_drift"])
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&param, "param", automation.SweepSteps, `swept parameter name, or "steps"`)
	cmd.Flags().Float64Var(&from, "from", 10, "first value")
	cmd.Flags().Float64Var(&to, "to", 1000, "last value")
	cmd.Flags().IntVar(&count, "count", 5, "number of values")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent solves (0 means GOMAXPROCS)")
	cmd.Flags().Float64Var(&f.t0, "t0", config.DefaultT0, "start time")
	cmd.Flags().Float64Var(&f.duration, "time", config.DefaultTEnd, "end time")
	cmd.Flags().IntVar(&f.steps, "steps", config.DefaultSteps, "number of uniform steps")
	cmd.Flags().Float64SliceVar(&f.ic, "ic", nil, "initial condition")
	cmd.Flags().StringVar(&f.preset, "preset", "", "use preset configuration")

	return cmd
}
