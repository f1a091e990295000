package controller

import (
	"context"
	"fmt"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/progression"
	"alcyxob/fitness-tracker/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

// ProgressionService turns a finished workout into suggested plan changes and,
// once the user confirms them, writes them back.
type ProgressionService struct {
	exercises *ExerciseController
	trainings *TrainingController
	workouts  *WorkoutController
}

func NewProgressionService(exercises *ExerciseController, trainings *TrainingController, workouts *WorkoutController) *ProgressionService {
	return &ProgressionService{
		exercises: exercises,
		trainings: trainings,
		workouts:  workouts,
	}
}

// Suggest analyzes the stored workout. Nothing is written.
func (s *ProgressionService) Suggest(ctx context.Context, workoutID string) (_ progression.PerformanceAnalysis, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progressionService.suggest")
	span.SetAttributes(attribute.String("workoutId", workoutID))
	defer tracing.EndSpanWithErrCheck(span, &err)

	workout, err := s.workout(ctx, workoutID)
	if err != nil {
		return progression.PerformanceAnalysis{}, err
	}
	analysis := progression.AnalyzePerformance(workout.Exercises)
	span.SetAttributes(attribute.Int("suggestions", len(analysis.ExercisesToUpdate)))
	return analysis, nil
}

// Apply writes an accepted analysis into the training the workout was based on.
// The training is saved first, then each updated exercise whose canonical record
// still exists. These are separate writes: a failure after the training was saved
// leaves the training updated.
func (s *ProgressionService) Apply(ctx context.Context, workoutID string, analysis progression.PerformanceAnalysis) (_ progression.PlanUpdate, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progressionService.apply")
	span.SetAttributes(attribute.String("workoutId", workoutID))
	defer tracing.EndSpanWithErrCheck(span, &err)

	workout, err := s.workout(ctx, workoutID)
	if err != nil {
		return progression.PlanUpdate{}, err
	}
	if workout.TrainingID == "" {
		return progression.PlanUpdate{}, fmt.Errorf("workout %s: %w", workoutID, ErrNoTraining)
	}
	training, found, err := s.trainings.FindByID(ctx, workout.TrainingID)
	if err != nil {
		return progression.PlanUpdate{}, err
	}
	if !found {
		return progression.PlanUpdate{}, fmt.Errorf("workout %s, training %s: %w", workoutID, workout.TrainingID, ErrNoTraining)
	}

	update := progression.ApplyAnalysisToTraining(training, analysis)
	if len(update.Skipped) > 0 {
		log.WithFields(log.Fields{
			"training": training.ID,
			"skipped":  update.Skipped,
		}).Info("suggestions no longer match the training, skipped")
	}
	if len(update.Exercises) == 0 {
		return update, nil
	}

	saved, err := s.trainings.Update(ctx, update.Training)
	if err != nil {
		return progression.PlanUpdate{}, err
	}
	update.Training = saved

	var exErr error
	for _, ex := range update.Exercises {
		exErr = multierr.Append(exErr, s.refreshExercise(ctx, ex))
	}
	if exErr != nil {
		return update, fmt.Errorf("training %s saved, exercises not fully updated: %w", saved.ID, exErr)
	}
	return update, nil
}

// refreshExercise copies the new last-known value onto the canonical exercise.
// A copy whose canonical exercise was deleted is left alone.
func (s *ProgressionService) refreshExercise(ctx context.Context, updated domain.Exercise) error {
	canonical, found, err := s.exercises.FindByID(ctx, updated.ID)
	if err != nil {
		return err
	}
	if !found {
		log.WithField("exercise", updated.ID).Debug("canonical exercise is gone, keeping the plan copy only")
		return nil
	}
	refreshed, err := canonical.WithProgress(updated.Progress)
	if err != nil {
		return fmt.Errorf("exercise %s: %w", updated.ID, err)
	}
	_, err = s.exercises.Update(ctx, refreshed)
	return err
}

func (s *ProgressionService) workout(ctx context.Context, id string) (domain.Workout, error) {
	workout, found, err := s.workouts.FindByID(ctx, id)
	if err != nil {
		return domain.Workout{}, err
	}
	if !found {
		return domain.Workout{}, fmt.Errorf("workout %s: %w", id, ErrNotFound)
	}
	return workout, nil
}
