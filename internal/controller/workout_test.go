package controller

import (
	"context"
	"testing"
	"time"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository/memory"
	"alcyxob/fitness-tracker/internal/repository/repositorytest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	exercises   *ExerciseController
	trainings   *TrainingController
	workouts    *WorkoutController
	progression *ProgressionService
	clock       time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{clock: time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC)}
	f.exercises = NewExerciseController(store.Exercises)
	f.trainings = NewTrainingController(store.Trainings)
	f.workouts = NewWorkoutController(store.Workouts, f.trainings)
	f.workouts.now = func() time.Time { return f.clock }
	f.progression = NewProgressionService(f.exercises, f.trainings, f.workouts)
	return f
}

func TestWorkoutController_StampsTimestamps(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	draft := repositorytest.SampleWorkout()
	draft.CreatedAt = time.Time{}
	draft.UpdatedAt = time.Time{}
	created, err := f.workouts.Create(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, f.clock, created.CreatedAt)
	assert.Equal(t, f.clock, created.UpdatedAt)

	createdAt := f.clock
	f.clock = f.clock.Add(time.Hour)
	created.Notes = "felt strong"
	created.CreatedAt = time.Time{}
	updated, err := f.workouts.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, createdAt, updated.CreatedAt)
	assert.Equal(t, f.clock, updated.UpdatedAt)
}

func TestWorkoutController_StartFromTraining(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	training, err := f.trainings.Create(ctx, repositorytest.SampleTraining())
	require.NoError(t, err)

	date := time.Date(2024, 5, 2, 18, 0, 0, 0, time.UTC)
	workout, err := f.workouts.StartFromTraining(ctx, training.ID, date)
	require.NoError(t, err)

	assert.NotEmpty(t, workout.ID)
	assert.Equal(t, training.ID, workout.TrainingID)
	assert.Equal(t, training.Name, workout.Name)
	assert.Equal(t, date, workout.Date)
	require.Len(t, workout.Exercises, 2)

	bench := workout.Exercises[0]
	assert.Equal(t, training.Exercises[0].Exercise, bench.Exercise)
	assert.Equal(t, 3, bench.PlannedSets)
	assert.Equal(t, 8, bench.PlannedReps)
	require.NotNil(t, bench.PlannedWeightKg)
	assert.Equal(t, 60.0, *bench.PlannedWeightKg)
	assert.Nil(t, bench.PlannedSeconds)
	assert.Empty(t, bench.Sets)

	pullUp := workout.Exercises[1]
	assert.Equal(t, 6, pullUp.PlannedReps)
	assert.Nil(t, pullUp.PlannedWeightKg)

	_, ok := f.workouts.Cached(workout.ID)
	assert.True(t, ok)
}

func TestWorkoutController_StartFromMissingTraining(t *testing.T) {
	f := newFixture(t)

	_, err := f.workouts.StartFromTraining(context.Background(), "gone", time.Now())
	require.ErrorIs(t, err, ErrNoTraining)
	assert.Empty(t, f.workouts.Items())
}

func TestWorkoutController_Complete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	draft := domain.Workout{
		Name: "Evening",
		Exercises: []domain.WorkoutExercise{
			{
				Exercise:        domain.NewWeightExercise("Squat").WithID("ex-squat"),
				PlannedSets:     2,
				PlannedReps:     5,
				PlannedWeightKg: domain.Float(100),
				Sets: []domain.WorkoutSet{
					{Reps: 5, WeightKg: domain.Float(100)},
					{Reps: 5, WeightKg: domain.Float(100)},
				},
			},
			{
				Exercise:       domain.NewTimeExercise("Plank").WithID("ex-plank"),
				PlannedSets:    1,
				PlannedSeconds: domain.Int(60),
				Sets:           []domain.WorkoutSet{{Seconds: domain.Int(45)}},
			},
		},
	}
	created, err := f.workouts.Create(ctx, draft)
	require.NoError(t, err)

	f.clock = f.clock.Add(90 * time.Minute)
	completed, err := f.workouts.Complete(ctx, created.ID)
	require.NoError(t, err)

	assert.True(t, completed.Completed)
	require.NotNil(t, completed.CompletedAt)
	assert.Equal(t, f.clock, *completed.CompletedAt)
	assert.True(t, completed.Exercises[0].PlannedAchieved)
	assert.False(t, completed.Exercises[1].PlannedAchieved)
	assert.True(t, completed.Incomplete)

	_, err = f.workouts.Complete(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}
