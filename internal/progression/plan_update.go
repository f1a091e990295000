package progression

import (
	"alcyxob/fitness-tracker/internal/domain"
)

// PlanUpdate is the result of applying an analysis to a Training.
type PlanUpdate struct {
	Training  domain.Training   `json:"training"`
	Exercises []domain.Exercise `json:"exercises"` // updated denormalized copies, one per applied suggestion
	Skipped   []int             `json:"skipped,omitempty"`
}

// ApplyAnalysisToTraining returns a copy of training with the suggested targets
// written into the TrainingExercise at each suggestion's index. Suggestions whose
// index is out of range, or whose dimension no longer matches the exercise at that
// index, are skipped. The input training is never modified.
func ApplyAnalysisToTraining(training domain.Training, analysis PerformanceAnalysis) PlanUpdate {
	result := PlanUpdate{
		Training:  training.Clone(),
		Exercises: []domain.Exercise{},
	}

	for _, suggestion := range analysis.ExercisesToUpdate {
		idx := suggestion.ExerciseIndex
		if idx < 0 || idx >= len(result.Training.Exercises) {
			result.Skipped = append(result.Skipped, idx)
			continue
		}

		te := &result.Training.Exercises[idx]
		exercise, ok := applySuggestion(te, suggestion)
		if !ok {
			result.Skipped = append(result.Skipped, idx)
			continue
		}
		te.Exercise = exercise
		result.Exercises = append(result.Exercises, exercise.Clone())
	}

	return result
}

// applySuggestion rewrites te's planned targets in place (te belongs to the cloned
// training) and returns the exercise copy with its last-known value updated.
func applySuggestion(te *domain.TrainingExercise, suggestion ExerciseUpdate) (domain.Exercise, bool) {
	if te.Exercise.Kind() != suggestion.Dimension() {
		return domain.Exercise{}, false
	}

	var progress domain.Progress
	switch te.Exercise.Progress.(type) {
	case domain.WeightProgress:
		te.PlannedWeightKg = fill(te.PlannedSets, *suggestion.SuggestedWeight)
		progress = domain.WeightProgress{LastKnownWeightKg: domain.Float(*suggestion.SuggestedWeight)}
	case domain.TimeProgress:
		te.PlannedSeconds = fill(te.PlannedSets, *suggestion.SuggestedSeconds)
		progress = domain.TimeProgress{LastKnownDurationSeconds: domain.Int(*suggestion.SuggestedSeconds)}
	case domain.RepsProgress:
		te.PlannedReps = fill(te.PlannedSets, *suggestion.SuggestedReps)
		progress = domain.RepsProgress{LastKnownReps: domain.Int(*suggestion.SuggestedReps)}
	default:
		return domain.Exercise{}, false
	}

	exercise, err := te.Exercise.WithProgress(progress)
	if err != nil {
		return domain.Exercise{}, false
	}
	return exercise, true
}

func fill[T any](n int, v T) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = v
	}
	return out
}
