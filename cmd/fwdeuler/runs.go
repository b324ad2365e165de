package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/san-kum/fwdeuler/internal/storage"
	"github.com/san-kum/fwdeuler/internal/viz"
	"github.com/spf13/cobra"
)

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "no runs found")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tMODEL\tTIME\tSPAN\tSTEPS\tDT\tSTABILITY")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t[%g, %g]\t%d\t%.4g\t%.3f\n",
					run.ID,
					run.Model,
					run.Timestamp.Local().Format("2006-01-02 15:04:05"),
					run.T0, run.TEnd,
					run.Steps,
					run.Dt,
					run.Metrics["stability"],
				)
			}
			return w.Flush()
		},
	}
}

func (a *app) newPlotCmd() *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot each state component of a run against time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			meta, err := st.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			sol, err := st.LoadTrajectory(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run: %s\n", meta.ID)
			fmt.Fprintf(out, "model: %s\n", meta.Model)
			fmt.Fprintf(out, "samples: %d\n\n", sol.Len())
			for _, graph := range viz.TimeSeries(meta.Model, sol, width, height) {
				fmt.Fprintln(out, graph)
				fmt.Fprintln(out)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 80, "chart width")
	cmd.Flags().IntVar(&height, "height", 10, "chart height")
	return cmd
}

func (a *app) newPhaseCmd() *cobra.Command {
	var xAxis, yAxis int

	cmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot of two state components",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			meta, err := st.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			sol, err := st.LoadTrajectory(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			canvas, err := viz.Phase(sol, xAxis, yAxis, 60, 20)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "phase space plot: %s\n", meta.ID)
			fmt.Fprintf(out, "x-axis: %s, y-axis: %s\n\n",
				viz.ComponentName(meta.Model, xAxis), viz.ComponentName(meta.Model, yAxis))
			fmt.Fprint(out, canvas.String())
			return nil
		},
	}
	cmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	cmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for y-axis")
	return cmd
}

func (a *app) newExportCSVCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run's trajectory to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			sol, err := st.LoadTrajectory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return storage.WriteCSV(cmd.OutOrStdout(), sol)
		},
	}
}

func (a *app) newExportJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run and its trajectory to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			meta, err := st.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			sol, err := st.LoadTrajectory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return storage.ExportJSON(cmd.OutOrStdout(), meta, sol)
		},
	}
}

func (a *app) newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [run_id]...",
		Short: "delete stored runs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			for _, id := range args {
				if err := st.Delete(cmd.Context(), id); err != nil {
					return err
				}
				a.logger.Info("run deleted", "id", id)
			}
			return nil
		},
	}
}
