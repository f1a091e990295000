package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"alcyxob/fitness-tracker/internal/seed"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func runSeed(cmd *cobra.Command, _ []string) error {
	data := seed.DefaultData()
	if seedFile != "" {
		loaded, err := seed.LoadTOML(seedFile)
		if err != nil {
			return fmt.Errorf("load %s: %w", seedFile, err)
		}
		data = loaded
	}

	store, err := openStore(cmd.Context(), cfg.Storage)
	if err != nil {
		return err
	}
	defer store.shutdown()

	if err := seed.Seed(cmd.Context(), store.tables, data); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d exercises and %d trainings\n", len(data.Exercises), len(data.Trainings))
	return nil
}

func runResetDB(cmd *cobra.Command, _ []string) error {
	if !confirmed {
		return errors.New("reset-db deletes every exercise, training and workout; pass --yes to confirm")
	}

	store, err := openStore(cmd.Context(), cfg.Storage)
	if err != nil {
		return err
	}
	defer store.shutdown()

	if store.resetter == nil {
		return fmt.Errorf("the %s backend keeps nothing to reset", cfg.Storage.Backend)
	}
	if err := store.resetter.ResetDatabase(cmd.Context()); err != nil {
		return err
	}
	log.WithField("backend", cfg.Storage.Backend).Warn("database reset")
	fmt.Fprintln(cmd.OutOrStdout(), "database reset")
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd.Context(), cfg.Storage)
	if err != nil {
		return err
	}
	defer store.shutdown()

	analysis, err := newControllers(store.tables).progression.Suggest(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
