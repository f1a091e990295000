// Package progression decides, from a performed workout, which planned targets
// should go up, and rewrites a Training accordingly.
package progression

import (
	"math"

	"alcyxob/fitness-tracker/internal/domain"
)

const (
	loadStepRatio  = 0.05 // weight and duration grow by 5%...
	minLoadStep    = 2.5  // ...but by at least 2.5 kg / 2.5 s
	repsStepRatio  = 0.10
	minRepsStep    = 1
	weightDecimals = 10 // weights are rounded to 0.1 kg
)

// PerformanceAnalysis is the outcome of AnalyzePerformance.
type PerformanceAnalysis struct {
	ShouldUpdatePlannedValues bool             `json:"shouldUpdatePlannedValues"`
	ExercisesToUpdate         []ExerciseUpdate `json:"exercisesToUpdate"`
}

// ExerciseUpdate is a suggestion for one exercise. Exactly one of the Suggested*
// fields is set, matching the kind of Exercise.
type ExerciseUpdate struct {
	ExerciseIndex    int             `json:"exerciseIndex"`
	Exercise         domain.Exercise `json:"exercise"`
	SuggestedWeight  *float64        `json:"suggestedWeight,omitempty"`
	SuggestedSeconds *int            `json:"suggestedTime,omitempty"`
	SuggestedReps    *int            `json:"suggestedReps,omitempty"`
}

// Dimension returns the kind of target this update raises, or "" when none is set.
func (u ExerciseUpdate) Dimension() domain.ExerciseKind {
	switch {
	case u.SuggestedWeight != nil:
		return domain.KindWeight
	case u.SuggestedSeconds != nil:
		return domain.KindTime
	case u.SuggestedReps != nil:
		return domain.KindReps
	}
	return ""
}

// AnalyzePerformance inspects the last performed set of every exercise and
// suggests a higher target when it met or beat the plan. Exercises without sets
// are skipped. The input is not modified.
func AnalyzePerformance(exercises []domain.WorkoutExercise) PerformanceAnalysis {
	analysis := PerformanceAnalysis{
		ExercisesToUpdate: []ExerciseUpdate{},
	}

	for i, we := range exercises {
		last, ok := we.LastSet()
		if !ok {
			continue
		}

		update, ok := analyzeExercise(we, last)
		if !ok {
			continue
		}
		update.ExerciseIndex = i
		update.Exercise = we.Exercise.Clone()
		analysis.ExercisesToUpdate = append(analysis.ExercisesToUpdate, update)
	}

	analysis.ShouldUpdatePlannedValues = len(analysis.ExercisesToUpdate) > 0
	return analysis
}

func analyzeExercise(we domain.WorkoutExercise, last domain.WorkoutSet) (ExerciseUpdate, bool) {
	if last.Reps < we.PlannedReps {
		return ExerciseUpdate{}, false
	}

	switch we.Exercise.Progress.(type) {
	case domain.WeightProgress:
		if we.PlannedWeightKg == nil || last.WeightKg == nil || *last.WeightKg < *we.PlannedWeightKg {
			return ExerciseUpdate{}, false
		}
		return ExerciseUpdate{SuggestedWeight: domain.Float(NextWeight(*we.PlannedWeightKg))}, true
	case domain.TimeProgress:
		if we.PlannedSeconds == nil || last.Seconds == nil || *last.Seconds < *we.PlannedSeconds {
			return ExerciseUpdate{}, false
		}
		return ExerciseUpdate{SuggestedSeconds: domain.Int(NextSeconds(*we.PlannedSeconds))}, true
	case domain.RepsProgress:
		return ExerciseUpdate{SuggestedReps: domain.Int(NextReps(we.PlannedReps))}, true
	default:
		return ExerciseUpdate{}, false
	}
}

// NextWeight is planned + max(5%, 2.5 kg), rounded to 0.1 kg.
func NextWeight(plannedKg float64) float64 {
	next := plannedKg + math.Max(plannedKg*loadStepRatio, minLoadStep)
	return math.Round(next*weightDecimals) / weightDecimals
}

// NextSeconds is planned + max(5%, 2.5 s), rounded to a whole second.
func NextSeconds(planned int) int {
	next := float64(planned) + math.Max(float64(planned)*loadStepRatio, minLoadStep)
	return int(math.Round(next))
}

// NextReps is planned + max(round(10%), 1).
func NextReps(planned int) int {
	step := int(math.Round(float64(planned) * repsStepRatio))
	return planned + max(step, minRepsStep)
}
