package main

import (
	"context"
	"fmt"

	"alcyxob/fitness-tracker/internal/config"
	"alcyxob/fitness-tracker/internal/controller"
	"alcyxob/fitness-tracker/internal/repository"
	"alcyxob/fitness-tracker/internal/repository/badger"
	"alcyxob/fitness-tracker/internal/repository/memory"
	"alcyxob/fitness-tracker/internal/repository/mongo"

	log "github.com/sirupsen/logrus"
)

// openedStore is a ready store plus what is needed to shut it down.
type openedStore struct {
	tables   *repository.Store
	resetter repository.Resetter // nil for the memory backend
	close    func() error
}

func openStore(ctx context.Context, sc config.StorageConfig) (*openedStore, error) {
	switch sc.Backend {
	case config.BackendMemory:
		return &openedStore{
			tables: memory.NewStore(),
			close:  func() error { return nil },
		}, nil

	case config.BackendBadger:
		bc := badger.DefaultConfig(sc.Badger.Path)
		bc.SyncWrites = sc.Badger.SyncWrites
		bc.GCInterval = sc.Badger.GCInterval
		bc.Logger = log.WithField("component", "badger")
		store := badger.New(bc)
		if err := store.Open(ctx); err != nil {
			return nil, err
		}
		log.WithField("path", sc.Badger.Path).Info("badger store opened")
		return &openedStore{tables: store.Tables(), resetter: store, close: store.Close}, nil

	case config.BackendMongo:
		store := mongo.New(mongo.Config{URI: sc.Mongo.URI, Name: sc.Mongo.Name})
		if err := store.Open(ctx); err != nil {
			return nil, fmt.Errorf("could not connect to MongoDB: %w", err)
		}
		log.WithField("database", sc.Mongo.Name).Info("mongo store opened")
		return &openedStore{tables: store.Tables(), resetter: store, close: store.Close}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", sc.Backend)
	}
}

func (s *openedStore) shutdown() {
	if err := s.close(); err != nil {
		log.WithError(err).Error("failed to close store")
	}
}

// controllers wires the controller layer over tables.
type controllers struct {
	exercises   *controller.ExerciseController
	trainings   *controller.TrainingController
	workouts    *controller.WorkoutController
	progression *controller.ProgressionService
}

func newControllers(tables *repository.Store) controllers {
	exercises := controller.NewExerciseController(tables.Exercises)
	trainings := controller.NewTrainingController(tables.Trainings)
	workouts := controller.NewWorkoutController(tables.Workouts, trainings)
	return controllers{
		exercises:   exercises,
		trainings:   trainings,
		workouts:    workouts,
		progression: controller.NewProgressionService(exercises, trainings, workouts),
	}
}
