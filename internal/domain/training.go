// internal/domain/training.go
package domain

import (
	"errors"
	"fmt"
)

var ErrPlanShape = errors.New("invalid planned targets")

// Training is a reusable plan: an ordered list of exercises with per-set targets.
type Training struct {
	ID          string             `json:"id" bson:"_id"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Exercises   []TrainingExercise `json:"exercises" bson:"exercises"`
	Notes       string             `json:"notes,omitempty" bson:"notes,omitempty"`
}

// TrainingExercise carries a denormalized copy of the Exercise plus the planned targets.
// Every per-set slice that is present has length PlannedSets. Weight exercises may carry
// PlannedWeightKg, time exercises PlannedSeconds, reps exercises neither.
type TrainingExercise struct {
	Exercise        Exercise  `json:"exercise" bson:"exercise"`
	PlannedSets     int       `json:"plannedSets" bson:"plannedSets"`
	PlannedReps     []int     `json:"plannedReps" bson:"plannedReps"`
	PlannedWeightKg []float64 `json:"plannedWeightKg,omitempty" bson:"plannedWeightKg,omitempty"`
	PlannedSeconds  []int     `json:"plannedSeconds,omitempty" bson:"plannedSeconds,omitempty"`
}

func (t Training) GetID() string { return t.ID }

func (t Training) WithID(id string) Training {
	out := t.Clone()
	out.ID = id
	return out
}

func (t Training) Clone() Training {
	out := t
	if t.Exercises != nil {
		out.Exercises = make([]TrainingExercise, len(t.Exercises))
		for i, te := range t.Exercises {
			out.Exercises[i] = te.Clone()
		}
	}
	return out
}

func (te TrainingExercise) Clone() TrainingExercise {
	out := te
	out.Exercise = te.Exercise.Clone()
	out.PlannedReps = cloneSlice(te.PlannedReps)
	out.PlannedWeightKg = cloneSlice(te.PlannedWeightKg)
	out.PlannedSeconds = cloneSlice(te.PlannedSeconds)
	return out
}

// Validate checks the planned-target shape invariants of every exercise in the plan.
func (t Training) Validate() error {
	for i, te := range t.Exercises {
		if err := te.Validate(); err != nil {
			return fmt.Errorf("exercise %d: %w", i, err)
		}
	}
	return nil
}

func (te TrainingExercise) Validate() error {
	if te.PlannedSets < 0 {
		return fmt.Errorf("%w: negative set count %d", ErrPlanShape, te.PlannedSets)
	}
	if len(te.PlannedReps) != te.PlannedSets {
		return fmt.Errorf("%w: %d planned reps for %d sets", ErrPlanShape, len(te.PlannedReps), te.PlannedSets)
	}
	if te.PlannedWeightKg != nil && len(te.PlannedWeightKg) != te.PlannedSets {
		return fmt.Errorf("%w: %d planned weights for %d sets", ErrPlanShape, len(te.PlannedWeightKg), te.PlannedSets)
	}
	if te.PlannedSeconds != nil && len(te.PlannedSeconds) != te.PlannedSets {
		return fmt.Errorf("%w: %d planned durations for %d sets", ErrPlanShape, len(te.PlannedSeconds), te.PlannedSets)
	}

	switch te.Exercise.Kind() {
	case KindWeight:
		if te.PlannedSeconds != nil {
			return fmt.Errorf("%w: weight exercise with planned durations", ErrPlanShape)
		}
	case KindTime:
		if te.PlannedWeightKg != nil {
			return fmt.Errorf("%w: time exercise with planned weights", ErrPlanShape)
		}
	case KindReps:
		if te.PlannedWeightKg != nil || te.PlannedSeconds != nil {
			return fmt.Errorf("%w: reps exercise with planned weights or durations", ErrPlanShape)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, te.Exercise.Kind())
	}
	return nil
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
