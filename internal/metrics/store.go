package metrics

import (
	"context"
	"time"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
)

// InstrumentStore wraps every table of store so each call is counted and timed.
func InstrumentStore(store *repository.Store, m *Manager) *repository.Store {
	return &repository.Store{
		Exercises: instrument(store.Exercises, repository.ExercisesCollection, m),
		Trainings: instrument(store.Trainings, repository.TrainingsCollection, m),
		Workouts:  instrument(store.Workouts, repository.WorkoutsCollection, m),
	}
}

type instrumentedTable[T domain.Record[T]] struct {
	next       repository.Table[T]
	collection string
	m          *Manager
}

func instrument[T domain.Record[T]](next repository.Table[T], collection string, m *Manager) repository.Table[T] {
	return &instrumentedTable[T]{next: next, collection: collection, m: m}
}

func (t *instrumentedTable[T]) observe(op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	t.m.CounterStoreOps.WithLabelValues(t.collection, op, status).Inc()
	t.m.HistogramStoreOpDuration.WithLabelValues(t.collection, op).Observe(time.Since(start).Seconds())
}

func (t *instrumentedTable[T]) List(ctx context.Context) ([]T, error) {
	start := time.Now()
	items, err := t.next.List(ctx)
	t.observe("list", start, err)
	return items, err
}

func (t *instrumentedTable[T]) Get(ctx context.Context, id string) (T, bool, error) {
	start := time.Now()
	item, found, err := t.next.Get(ctx, id)
	t.observe("get", start, err)
	return item, found, err
}

func (t *instrumentedTable[T]) Put(ctx context.Context, item T) (T, error) {
	start := time.Now()
	stored, err := t.next.Put(ctx, item)
	t.observe("put", start, err)
	return stored, err
}

func (t *instrumentedTable[T]) Remove(ctx context.Context, id string) error {
	start := time.Now()
	err := t.next.Remove(ctx, id)
	t.observe("remove", start, err)
	return err
}
