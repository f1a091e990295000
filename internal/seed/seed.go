// Package seed loads exercises and trainings into a store, either the built-in
// demo set or a TOML file.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"

	log "github.com/sirupsen/logrus"
)

//go:embed demo.toml
var demoTOML []byte

// Data is a set of records to load.
type Data struct {
	Exercises []domain.Exercise
	Trainings []domain.Training
}

// DefaultData returns the built-in demo set.
func DefaultData() Data {
	data, err := DecodeTOML(bytes.NewReader(demoTOML))
	if err != nil {
		panic(fmt.Sprintf("built-in demo data is invalid: %s", err))
	}
	return data
}

// Seed puts every record of data into store. Records with an existing ID are replaced.
func Seed(ctx context.Context, store *repository.Store, data Data) error {
	for _, ex := range data.Exercises {
		if _, err := store.Exercises.Put(ctx, ex); err != nil {
			return fmt.Errorf("seed exercise %s: %w", ex.ID, err)
		}
	}
	for _, tr := range data.Trainings {
		if _, err := store.Trainings.Put(ctx, tr); err != nil {
			return fmt.Errorf("seed training %s: %w", tr.ID, err)
		}
	}

	log.WithFields(log.Fields{
		"exercises": len(data.Exercises),
		"trainings": len(data.Trainings),
	}).Info("store seeded")
	return nil
}

// SeedIfEmpty seeds only when the store holds no exercises and no trainings.
// It reports whether anything was written.
func SeedIfEmpty(ctx context.Context, store *repository.Store, data Data) (bool, error) {
	exercises, err := store.Exercises.List(ctx)
	if err != nil {
		return false, err
	}
	trainings, err := store.Trainings.List(ctx)
	if err != nil {
		return false, err
	}
	if len(exercises) > 0 || len(trainings) > 0 {
		return false, nil
	}
	if err := Seed(ctx, store, data); err != nil {
		return false, err
	}
	return true, nil
}
