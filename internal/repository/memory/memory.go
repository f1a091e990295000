// Package memory is a volatile Store backend, used for tests and demo data.
package memory

import (
	"context"
	"sort"
	"sync"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
)

// Table keeps records in their encoded form so callers never share memory with the store.
type Table[T domain.Record[T]] struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewTable[T domain.Record[T]]() *Table[T] {
	return &Table[T]{records: make(map[string][]byte)}
}

// NewStore returns a ready, empty in-memory Store.
func NewStore() *repository.Store {
	return &repository.Store{
		Exercises: NewTable[domain.Exercise](),
		Trainings: NewTable[domain.Training](),
		Workouts:  NewTable[domain.Workout](),
	}
}

func (t *Table[T]) List(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := make([]string, 0, len(t.records))
	for id := range t.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	items := make([]T, 0, len(ids))
	for _, id := range ids {
		item, err := repository.Decode[T](t.records[id])
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (t *Table[T]) Get(ctx context.Context, id string) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	t.mu.RLock()
	data, ok := t.records[id]
	t.mu.RUnlock()
	if !ok {
		return zero, false, nil
	}

	item, err := repository.Decode[T](data)
	if err != nil {
		return zero, false, err
	}
	return item, true, nil
}

func (t *Table[T]) Put(ctx context.Context, item T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	item = repository.EnsureID(item)
	data, err := repository.Encode(item)
	if err != nil {
		return zero, err
	}

	t.mu.Lock()
	t.records[item.GetID()] = data
	t.mu.Unlock()

	return repository.Decode[T](data)
}

func (t *Table[T]) Remove(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	delete(t.records, id)
	t.mu.Unlock()
	return nil
}

// Len returns the number of stored records.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.records)
}
