package controller

import (
	"context"
	"fmt"
	"time"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"alcyxob/fitness-tracker/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type WorkoutController struct {
	*Controller[domain.Workout]

	trainings *TrainingController
	now       func() time.Time
}

func NewWorkoutController(table repository.Table[domain.Workout], trainings *TrainingController) *WorkoutController {
	wc := &WorkoutController{
		Controller: New[domain.Workout](repository.WorkoutsCollection, table),
		trainings:  trainings,
		now:        time.Now,
	}
	wc.validate = validateWorkout
	wc.prepareCreate = func(draft domain.Workout) domain.Workout {
		now := wc.now().UTC()
		draft.CreatedAt = now
		draft.UpdatedAt = now
		if draft.Date.IsZero() {
			draft.Date = now
		}
		return draft
	}
	wc.prepareUpdate = func(stored, draft domain.Workout) (domain.Workout, error) {
		draft.CreatedAt = stored.CreatedAt
		draft.UpdatedAt = wc.now().UTC()
		return draft, nil
	}
	return wc
}

func validateWorkout(w domain.Workout) error {
	for i, we := range w.Exercises {
		if err := validateExercise(we.Exercise); err != nil {
			return fmt.Errorf("workout exercise %d: %w", i, err)
		}
	}
	return nil
}

// StartFromTraining creates a workout pre-filled from the stored training.
// The per-set plan is flattened to the values of the first set.
func (wc *WorkoutController) StartFromTraining(ctx context.Context, trainingID string, date time.Time) (_ domain.Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workoutController.startFromTraining")
	span.SetAttributes(attribute.String("trainingId", trainingID))
	defer tracing.EndSpanWithErrCheck(span, &err)

	training, found, err := wc.trainings.FindByID(ctx, trainingID)
	if err != nil {
		return domain.Workout{}, err
	}
	if !found {
		return domain.Workout{}, wc.fail(fmt.Errorf("training %s: %w", trainingID, ErrNoTraining))
	}

	workout := domain.Workout{
		Name:        training.Name,
		Description: training.Description,
		Date:        date,
		TrainingID:  training.ID,
		Exercises:   make([]domain.WorkoutExercise, 0, len(training.Exercises)),
	}
	for _, te := range training.Exercises {
		workout.Exercises = append(workout.Exercises, flattenPlan(te))
	}
	return wc.Create(ctx, workout)
}

func flattenPlan(te domain.TrainingExercise) domain.WorkoutExercise {
	we := domain.WorkoutExercise{
		Exercise:    te.Exercise.Clone(),
		PlannedSets: te.PlannedSets,
		Sets:        []domain.WorkoutSet{},
	}
	if len(te.PlannedReps) > 0 {
		we.PlannedReps = te.PlannedReps[0]
	}
	if len(te.PlannedWeightKg) > 0 {
		we.PlannedWeightKg = domain.Float(te.PlannedWeightKg[0])
	}
	if len(te.PlannedSeconds) > 0 {
		we.PlannedSeconds = domain.Int(te.PlannedSeconds[0])
	}
	return we
}

// Complete marks the workout finished and records, per exercise, whether the plan was met.
func (wc *WorkoutController) Complete(ctx context.Context, id string) (_ domain.Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workoutController.complete")
	span.SetAttributes(attribute.String("id", id))
	defer tracing.EndSpanWithErrCheck(span, &err)

	workout, found, err := wc.FindByID(ctx, id)
	if err != nil {
		return domain.Workout{}, err
	}
	if !found {
		return domain.Workout{}, wc.fail(fmt.Errorf("workout %s: %w", id, ErrNotFound))
	}

	completedAt := wc.now().UTC()
	workout.Completed = true
	workout.CompletedAt = &completedAt
	workout.Incomplete = false
	for i := range workout.Exercises {
		achieved := workout.Exercises[i].MeetsPlan()
		workout.Exercises[i].PlannedAchieved = achieved
		if !achieved {
			workout.Incomplete = true
		}
	}

	log.WithFields(log.Fields{
		"id":         id,
		"incomplete": workout.Incomplete,
	}).Debug("workout completed")
	return wc.Update(ctx, workout)
}
