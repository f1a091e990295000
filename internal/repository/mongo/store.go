// Package mongo is the MongoDB Store backend.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"alcyxob/fitness-tracker/internal/repository"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/multierr"
)

const (
	metaCollectionName = "meta"
	versionDocID       = "version"
)

// Config holds the connection settings.
type Config struct {
	URI  string
	Name string
}

// Store owns the client connection. It starts closed; Open makes it ready.
type Store struct {
	cfg Config

	mu     sync.RWMutex
	client *mongo.Client
	db     *mongo.Database
}

type versionDoc struct {
	ID      string `bson:"_id"`
	Version int    `bson:"version"`
}

// New creates a store that is not yet connected.
func New(cfg Config) *Store {
	return &Store{cfg: cfg}
}

// Open connects and bootstraps collections for the current StoreVersion.
func (s *Store) Open(ctx context.Context) error {
	if s.cfg.URI == "" || s.cfg.Name == "" {
		return errors.New("mongo uri and database name are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return nil
	}

	client, err := ConnectDB(ctx, s.cfg.URI)
	if err != nil {
		return err
	}
	db := client.Database(s.cfg.Name)
	if err := bootstrap(ctx, db); err != nil {
		return multierr.Append(fmt.Errorf("bootstrap collections: %w", err), DisconnectDB(client))
	}

	s.client = client
	s.db = db
	return nil
}

// Ready reports whether the store is connected.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db != nil
}

// Close disconnects. Safe to call on a closed store.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return nil
	}
	err := DisconnectDB(s.client)
	s.client = nil
	s.db = nil
	return err
}

// ResetDatabase drops every collection and recreates them empty.
func (s *Store) ResetDatabase(ctx context.Context) error {
	db, err := s.database()
	if err != nil {
		return err
	}

	var dropErr error
	for _, name := range append([]string{metaCollectionName}, repository.Collections...) {
		dropErr = multierr.Append(dropErr, db.Collection(name).Drop(ctx))
	}
	if dropErr != nil {
		return fmt.Errorf("drop collections: %w", dropErr)
	}
	return bootstrap(ctx, db)
}

// Version returns the persisted store version.
func (s *Store) Version(ctx context.Context) (int, error) {
	db, err := s.database()
	if err != nil {
		return 0, err
	}
	return readVersion(ctx, db)
}

// Tables returns the repository.Store view over this database.
func (s *Store) Tables() *repository.Store {
	return &repository.Store{
		Exercises: newExerciseTable(s),
		Trainings: newTrainingTable(s),
		Workouts:  newWorkoutTable(s),
	}
}

func (s *Store) database() (*mongo.Database, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, repository.ErrNotReady
	}
	return s.db, nil
}

func bootstrap(ctx context.Context, db *mongo.Database) error {
	version, err := readVersion(ctx, db)
	if err != nil {
		return err
	}
	if version >= repository.StoreVersion {
		return nil
	}

	for _, name := range repository.Collections {
		if err := db.CreateCollection(ctx, name); err != nil && !isNamespaceExists(err) {
			return fmt.Errorf("create collection %s: %w", name, err)
		}
	}
	if err := EnsureExerciseIndexes(ctx, db.Collection(exerciseCollectionName)); err != nil {
		return fmt.Errorf("exercise indexes: %w", err)
	}
	if err := EnsureTrainingIndexes(ctx, db.Collection(trainingCollectionName)); err != nil {
		return fmt.Errorf("training indexes: %w", err)
	}
	if err := EnsureWorkoutIndexes(ctx, db.Collection(workoutCollectionName)); err != nil {
		return fmt.Errorf("workout indexes: %w", err)
	}

	_, err = db.Collection(metaCollectionName).ReplaceOne(ctx,
		bson.M{"_id": versionDocID},
		versionDoc{ID: versionDocID, Version: repository.StoreVersion},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"database": db.Name(),
		"from":     version,
		"to":       repository.StoreVersion,
	}).Info("mongo store collections created")
	return nil
}

func readVersion(ctx context.Context, db *mongo.Database) (int, error) {
	var doc versionDoc
	err := db.Collection(metaCollectionName).FindOne(ctx, bson.M{"_id": versionDocID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return doc.Version, nil
}

func isNamespaceExists(err error) bool {
	var cmdErr mongo.CommandError
	return errors.As(err, &cmdErr) && cmdErr.Name == "NamespaceExists"
}
