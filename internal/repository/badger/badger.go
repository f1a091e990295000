// Package badger is the durable local Store backend, built on BadgerDB.
//
// Key layout:
//
//	meta/version                 store version (decimal)
//	meta/collection/<name>       collection marker, written on (re)creation
//	<collection>/<id>            JSON record
package badger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

var (
	versionKey       = []byte("meta/version")
	collectionPrefix = "meta/collection/"
)

// Config holds configuration for the BadgerDB-backed store.
type Config struct {
	// Path is the directory for database files. Ignored when InMemory is true.
	Path string

	// InMemory keeps everything in RAM. Useful for testing.
	InMemory bool

	SyncWrites bool

	// GCInterval is how often value log GC runs. Zero disables it.
	GCInterval     time.Duration
	GCDiscardRatio float64

	// Logger receives BadgerDB's internal logs. Nil silences them.
	Logger *logrus.Entry
}

// DefaultConfig returns production defaults for a database at path.
func DefaultConfig(path string) Config {
	return Config{
		Path:           path,
		SyncWrites:     true,
		GCInterval:     5 * time.Minute,
		GCDiscardRatio: 0.5,
	}
}

// InMemoryConfig returns a configuration for tests.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// Store owns the database handle. It starts closed; Open makes it ready.
type Store struct {
	cfg Config

	mu    sync.RWMutex
	db    *badger.DB
	gc    *gcRunner
	ready bool
}

// New creates a store that is not yet open.
func New(cfg Config) *Store {
	return &Store{cfg: cfg}
}

// Open opens the database and bootstraps collections for the current StoreVersion.
// Calling Open on an open store is a no-op.
func (s *Store) Open(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}

	var opts badger.Options
	if s.cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if s.cfg.Path == "" {
			return errors.New("path is required for persistent database")
		}
		if err := os.MkdirAll(s.cfg.Path, 0750); err != nil {
			return fmt.Errorf("create database directory %s: %w", s.cfg.Path, err)
		}
		opts = badger.DefaultOptions(s.cfg.Path)
	}
	opts = opts.WithSyncWrites(s.cfg.SyncWrites).WithNumVersionsToKeep(1)
	if s.cfg.Logger != nil {
		opts = opts.WithLogger(s.cfg.Logger)
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("open badger database: %w", err)
	}
	if err := bootstrap(db); err != nil {
		return multierr.Append(fmt.Errorf("bootstrap collections: %w", err), db.Close())
	}

	s.db = db
	s.startGC()
	s.ready = true
	return nil
}

// startGC and stopGC must be called with mu held for writing.
func (s *Store) startGC() {
	if s.cfg.GCInterval > 0 && !s.cfg.InMemory {
		s.gc = newGCRunner(s.db, s.cfg.GCInterval, s.cfg.GCDiscardRatio)
		s.gc.start()
	}
}

func (s *Store) stopGC() {
	if s.gc != nil {
		s.gc.stop()
		s.gc = nil
	}
}

// Ready reports whether the store is open.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Close stops GC and closes the database. Safe to call on a closed store.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return nil
	}
	s.ready = false

	s.stopGC()
	var err error
	if !s.cfg.InMemory {
		err = s.db.Sync()
	}
	err = multierr.Append(err, s.db.Close())
	s.db = nil
	return err
}

// ResetDatabase drops every collection and recreates empty storage.
func (s *Store) ResetDatabase(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return repository.ErrNotReady
	}

	// DropAll must not overlap a value log GC run.
	s.stopGC()
	defer s.startGC()

	if err := s.db.DropAll(); err != nil {
		return fmt.Errorf("drop all: %w", err)
	}
	return bootstrap(s.db)
}

// Version returns the persisted store version.
func (s *Store) Version(ctx context.Context) (int, error) {
	var version int
	err := s.view(ctx, func(txn *badger.Txn) error {
		var err error
		version, err = readVersion(txn)
		return err
	})
	return version, err
}

// Tables returns the repository.Store view over this database.
func (s *Store) Tables() *repository.Store {
	return &repository.Store{
		Exercises: newTable[domain.Exercise](s, repository.ExercisesCollection),
		Trainings: newTable[domain.Training](s, repository.TrainingsCollection),
		Workouts:  newTable[domain.Workout](s, repository.WorkoutsCollection),
	}
}

func (s *Store) view(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready {
		return repository.ErrNotReady
	}
	return s.db.View(fn)
}

func (s *Store) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready {
		return repository.ErrNotReady
	}
	return s.db.Update(fn)
}

// bootstrap (re)creates collection markers when the persisted version is older
// than repository.StoreVersion. Records are left as they are.
func bootstrap(db *badger.DB) error {
	return db.Update(func(txn *badger.Txn) error {
		version, err := readVersion(txn)
		if err != nil {
			return err
		}
		if version >= repository.StoreVersion {
			return nil
		}

		current := []byte(strconv.Itoa(repository.StoreVersion))
		for _, name := range repository.Collections {
			if err := txn.Set([]byte(collectionPrefix+name), current); err != nil {
				return err
			}
		}
		if err := txn.Set(versionKey, current); err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"from": version,
			"to":   repository.StoreVersion,
		}).Info("badger store collections created")
		return nil
	})
}

func readVersion(txn *badger.Txn) (int, error) {
	item, err := txn.Get(versionKey)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	raw, err := item.ValueCopy(nil)
	if err != nil {
		return 0, err
	}
	version, err := strconv.Atoi(string(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: version %q", repository.ErrCorrupt, raw)
	}
	return version, nil
}
