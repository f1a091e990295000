package main

import (
	"context"
	"time"

	"alcyxob/fitness-tracker/internal/config"
	"alcyxob/fitness-tracker/internal/logging"
	"alcyxob/fitness-tracker/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	configPath string
	seedFile   string
	confirmed  bool

	cfg             config.Config
	tracingShutdown func(context.Context) error

	rootCmd = &cobra.Command{
		Use:   "fitlog",
		Short: "Workout tracker with automatic training plan progression",
		Long: `fitlog stores exercises, training plans and workouts, and suggests
higher targets once a workout met its plan.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			cfg = loaded

			// Only the server logs to stdout; other commands keep it for their output.
			console := cmd.ErrOrStderr()
			if cmd == serveCmd {
				console = cmd.OutOrStdout()
			}
			logging.Setup(logging.LoggerSetupParams{
				LogFileName:   cfg.Log.File,
				LogToStdout:   cfg.Log.Stdout,
				LogLevel:      cfg.Log.Level,
				LogFormatJSON: cfg.Log.JSON,
				Console:       console,
			})

			tracingShutdown, err = tracing.Setup(cmd.Context(), cfg.Tracing, console)
			return err
		},
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API for the UI",
		Args:  cobra.NoArgs,
		RunE:  runServe, // Defined in serve.go
	}

	seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Load the demo exercises and trainings, or those of a TOML file",
		Args:  cobra.NoArgs,
		RunE:  runSeed, // Defined in cmd_data.go
	}

	resetDBCmd = &cobra.Command{
		Use:   "reset-db",
		Short: "Delete all data and recreate empty collections",
		Args:  cobra.NoArgs,
		RunE:  runResetDB, // Defined in cmd_data.go
	}

	analyzeCmd = &cobra.Command{
		Use:   "analyze [workout-id]",
		Short: "Print the suggested plan changes for a stored workout",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze, // Defined in cmd_data.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", ".", "config file, or directory holding config.yaml")

	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "TOML file to load instead of the demo data")
	resetDBCmd.Flags().BoolVar(&confirmed, "yes", false, "confirm that all data will be deleted")

	rootCmd.AddCommand(serveCmd, seedCmd, resetDBCmd, analyzeCmd)
}

// stopTracing flushes pending spans. Safe to call when tracing never started.
func stopTracing() {
	if tracingShutdown == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := tracingShutdown(ctx); err != nil {
		log.WithError(err).Warn("failed to flush traces")
	}
	tracingShutdown = nil
}
