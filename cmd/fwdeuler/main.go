package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/san-kum/fwdeuler/internal/experiment"
	"github.com/san-kum/fwdeuler/internal/logging"
	"github.com/san-kum/fwdeuler/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries the settings shared by every command.
type app struct {
	v        *viper.Viper
	logger   *slog.Logger
	registry *experiment.Registry
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{
		v:        viper.New(),
		logger:   logging.Discard(),
		registry: experiment.NewRegistry(),
	}

	rootCmd := &cobra.Command{
		Use:          "fwdeuler",
		Short:        "forward euler initial-value problem solver",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.logger = logging.NewLogger(a.v.GetString("log-level"), cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().String("data", ".fwdeuler", "data directory")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error)")

	a.v.SetEnvPrefix("FWDEULER")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	_ = a.v.BindPFlag("data", rootCmd.PersistentFlags().Lookup("data"))
	_ = a.v.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(
		a.newRunCmd(),
		a.newListCmd(),
		a.newPlotCmd(),
		a.newPhaseCmd(),
		a.newExportCSVCmd(),
		a.newExportJSONCmd(),
		a.newRemoveCmd(),
		a.newConvergeCmd(),
		a.newScenarioCmd(),
		a.newSweepCmd(),
		a.newModelsCmd(),
		a.newPresetsCmd(),
		a.newDemoCmd(),
	)
	return rootCmd
}

func (a *app) openStore() (*storage.Store, error) {
	st, err := storage.Open(a.v.GetString("data"), a.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open run store: %w", err)
	}
	return st, nil
}

func (a *app) newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "list available models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range a.registry.ListModels() {
				dyn, err := a.registry.GetModel(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-12s dim=%d params=%v\n", name, dyn.StateDim(), dyn.Params())
			}
			return nil
		},
	}
}
