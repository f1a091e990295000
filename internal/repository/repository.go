package repository

import (
	"alcyxob/fitness-tracker/internal/domain" // Import our defined domain models
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// StoreVersion is bumped whenever collections must be (re)created on durable
// backends. There is no data migration between versions.
const StoreVersion = 1

// Collection names, shared by every backend.
const (
	ExercisesCollection = "exercises"
	TrainingsCollection = "trainings"
	WorkoutsCollection  = "workouts"
)

// Collections lists every collection a Store holds.
var Collections = []string{ExercisesCollection, TrainingsCollection, WorkoutsCollection}

// Error constants for repository layer
var (
	ErrNotReady = RepositoryError("store is not open")
	ErrCorrupt  = RepositoryError("stored record cannot be decoded")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

//go:generate mockgen -source=$GOFILE -destination=../controller/mocks_test.go -package=controller

// Table is the uniform CRUD contract over one named collection.
//
// Get reports absence through its boolean result, never through an error.
// Put creates or replaces by identifier (last write wins) and assigns a fresh
// identifier when the item has none. Remove of a missing id is not an error.
type Table[T domain.Record[T]] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, bool, error)
	Put(ctx context.Context, item T) (T, error)
	Remove(ctx context.Context, id string) error
}

// Store groups the three collections behind one injectable object.
type Store struct {
	Exercises Table[domain.Exercise]
	Trainings Table[domain.Training]
	Workouts  Table[domain.Workout]
}

// Resetter is implemented by durable backends that can wipe and recreate
// all collections. Only used for recovery and debugging.
type Resetter interface {
	ResetDatabase(ctx context.Context) error
}

// NewID returns a fresh random identifier.
func NewID() string {
	return uuid.NewString()
}

// EnsureID returns item unchanged if it has an identifier, otherwise a copy with a new one.
func EnsureID[T domain.Record[T]](item T) T {
	if item.GetID() != "" {
		return item
	}
	return item.WithID(NewID())
}

// Encode serializes a record to its JSON stored form.
func Encode[T domain.Record[T]](item T) ([]byte, error) {
	data, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("encode %q: %w", item.GetID(), err)
	}
	return data, nil
}

// Decode parses a JSON stored form.
func Decode[T domain.Record[T]](data []byte) (T, error) {
	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return item, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return item, nil
}
