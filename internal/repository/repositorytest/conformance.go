// Package repositorytest holds the behaviour every repository.Store backend must share.
package repositorytest

import (
	"context"
	"testing"
	"time"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SampleExercise returns a weight exercise with a random name and no ID.
func SampleExercise() domain.Exercise {
	ex, _ := domain.NewWeightExercise(gofakeit.Noun() + " press").
		WithProgress(domain.WeightProgress{LastKnownWeightKg: domain.Float(60)})
	ex.Description = gofakeit.Sentence(6)
	return ex
}

// SampleTraining returns a two-exercise plan with no ID.
func SampleTraining() domain.Training {
	return domain.Training{
		Name: gofakeit.Adjective() + " day",
		Exercises: []domain.TrainingExercise{
			{
				Exercise:        SampleExercise().WithID("ex-bench"),
				PlannedSets:     3,
				PlannedReps:     []int{8, 8, 6},
				PlannedWeightKg: []float64{60, 60, 65},
			},
			{
				Exercise:    domain.NewRepsExercise("Pull-up").WithID("ex-pullup"),
				PlannedSets: 2,
				PlannedReps: []int{6, 6},
			},
		},
		Notes: gofakeit.Sentence(4),
	}
}

// SampleWorkout returns a one-exercise workout with no ID.
func SampleWorkout() domain.Workout {
	date := time.Date(2024, 3, 14, 18, 30, 0, 0, time.UTC)
	return domain.Workout{
		Name:            gofakeit.Adjective() + " session",
		Date:            date,
		DurationMinutes: domain.Int(55),
		TrainingID:      "tr-1",
		CreatedAt:       date,
		UpdatedAt:       date,
		Exercises: []domain.WorkoutExercise{{
			Exercise:        SampleExercise().WithID("ex-bench"),
			PlannedSets:     2,
			PlannedReps:     8,
			PlannedWeightKg: domain.Float(60),
			Sets: []domain.WorkoutSet{
				{Reps: 8, WeightKg: domain.Float(60)},
				{Reps: 7, WeightKg: domain.Float(60), Notes: "grip slipped"},
			},
		}},
	}
}

// RunStoreTests exercises the Table contract on every collection of the store returned by newStore.
// newStore is called once per subtest and must return an empty, ready store.
func RunStoreTests(t *testing.T, newStore func(t *testing.T) *repository.Store) {
	t.Run("exercises", func(t *testing.T) {
		runTableTests(t, func(t *testing.T) repository.Table[domain.Exercise] { return newStore(t).Exercises }, SampleExercise)
	})
	t.Run("trainings", func(t *testing.T) {
		runTableTests(t, func(t *testing.T) repository.Table[domain.Training] { return newStore(t).Trainings }, SampleTraining)
	})
	t.Run("workouts", func(t *testing.T) {
		runTableTests(t, func(t *testing.T) repository.Table[domain.Workout] { return newStore(t).Workouts }, SampleWorkout)
	})
}

func runTableTests[T domain.Record[T]](t *testing.T, newTable func(t *testing.T) repository.Table[T], sample func() T) {
	ctx := context.Background()

	t.Run("put assigns id and get returns stored form", func(t *testing.T) {
		table := newTable(t)

		stored, err := table.Put(ctx, sample())
		require.NoError(t, err)
		require.NotEmpty(t, stored.GetID())

		got, found, err := table.Get(ctx, stored.GetID())
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, stored, got)
	})

	t.Run("put keeps existing id and replaces", func(t *testing.T) {
		table := newTable(t)

		first, err := table.Put(ctx, sample().WithID("fixed-id"))
		require.NoError(t, err)
		assert.Equal(t, "fixed-id", first.GetID())

		second, err := table.Put(ctx, sample().WithID("fixed-id"))
		require.NoError(t, err)

		items, err := table.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, second, items[0])
	})

	t.Run("get missing is absent, not an error", func(t *testing.T) {
		table := newTable(t)

		_, found, err := table.Get(ctx, "does-not-exist")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		table := newTable(t)

		stored, err := table.Put(ctx, sample())
		require.NoError(t, err)

		require.NoError(t, table.Remove(ctx, stored.GetID()))
		_, found, err := table.Get(ctx, stored.GetID())
		require.NoError(t, err)
		assert.False(t, found)

		require.NoError(t, table.Remove(ctx, stored.GetID()))
		require.NoError(t, table.Remove(ctx, "never-existed"))
	})

	t.Run("list returns all items", func(t *testing.T) {
		table := newTable(t)

		ids := map[string]bool{}
		for i := 0; i < 3; i++ {
			stored, err := table.Put(ctx, sample())
			require.NoError(t, err)
			ids[stored.GetID()] = true
		}

		items, err := table.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 3)
		for _, item := range items {
			assert.True(t, ids[item.GetID()])
		}
	})
}
