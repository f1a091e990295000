// internal/domain/workout.go
package domain

import "time"

// Workout is the record of an actual session, optionally based on a Training.
type Workout struct {
	ID              string            `json:"id" bson:"_id"`
	Name            string            `json:"name" bson:"name"`
	Description     string            `json:"description,omitempty" bson:"description,omitempty"`
	Date            time.Time         `json:"date" bson:"date"`
	DurationMinutes *int              `json:"durationMinutes,omitempty" bson:"durationMinutes,omitempty"`
	Exercises       []WorkoutExercise `json:"exercises" bson:"exercises"`
	Notes           string            `json:"notes,omitempty" bson:"notes,omitempty"`
	TrainingID      string            `json:"trainingId,omitempty" bson:"trainingId,omitempty"` // Training this session was based on
	CreatedAt       time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt" bson:"updatedAt"`
	CompletedAt     *time.Time        `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	Completed       bool              `json:"completed" bson:"completed"`
	Incomplete      bool              `json:"incomplete" bson:"incomplete"`
}

// WorkoutExercise holds one scalar planned target per exercise (unlike TrainingExercise,
// which plans per set) and the sets actually performed.
type WorkoutExercise struct {
	Exercise        Exercise     `json:"exercise" bson:"exercise"`
	PlannedSets     int          `json:"plannedSets" bson:"plannedSets"`
	PlannedReps     int          `json:"plannedReps" bson:"plannedReps"`
	PlannedWeightKg *float64     `json:"plannedWeightKg,omitempty" bson:"plannedWeightKg,omitempty"`
	PlannedSeconds  *int         `json:"plannedSeconds,omitempty" bson:"plannedSeconds,omitempty"`
	Sets            []WorkoutSet `json:"sets" bson:"sets"`
	PlannedAchieved bool         `json:"plannedAchieved" bson:"plannedAchieved"`
}

// WorkoutSet is one performed set.
type WorkoutSet struct {
	Reps     int      `json:"reps" bson:"reps"`
	WeightKg *float64 `json:"weightKg,omitempty" bson:"weightKg,omitempty"`
	Seconds  *int     `json:"seconds,omitempty" bson:"seconds,omitempty"`
	Notes    string   `json:"notes,omitempty" bson:"notes,omitempty"`
}

func (w Workout) GetID() string { return w.ID }

func (w Workout) WithID(id string) Workout {
	out := w.Clone()
	out.ID = id
	return out
}

func (w Workout) Clone() Workout {
	out := w
	out.DurationMinutes = clonePtr(w.DurationMinutes)
	out.CompletedAt = clonePtr(w.CompletedAt)
	if w.Exercises != nil {
		out.Exercises = make([]WorkoutExercise, len(w.Exercises))
		for i, we := range w.Exercises {
			out.Exercises[i] = we.Clone()
		}
	}
	return out
}

func (we WorkoutExercise) Clone() WorkoutExercise {
	out := we
	out.Exercise = we.Exercise.Clone()
	out.PlannedWeightKg = clonePtr(we.PlannedWeightKg)
	out.PlannedSeconds = clonePtr(we.PlannedSeconds)
	if we.Sets != nil {
		out.Sets = make([]WorkoutSet, len(we.Sets))
		for i, s := range we.Sets {
			out.Sets[i] = WorkoutSet{
				Reps:     s.Reps,
				WeightKg: clonePtr(s.WeightKg),
				Seconds:  clonePtr(s.Seconds),
				Notes:    s.Notes,
			}
		}
	}
	return out
}

// LastSet returns the most recently recorded set.
func (we WorkoutExercise) LastSet() (WorkoutSet, bool) {
	if len(we.Sets) == 0 {
		return WorkoutSet{}, false
	}
	return we.Sets[len(we.Sets)-1], true
}

// MeetsPlan reports whether at least the planned number of sets was performed and
// every performed set reached the planned reps and, where planned, weight or duration.
func (we WorkoutExercise) MeetsPlan() bool {
	if len(we.Sets) == 0 || len(we.Sets) < we.PlannedSets {
		return false
	}
	for _, s := range we.Sets {
		if s.Reps < we.PlannedReps {
			return false
		}
		switch we.Exercise.Kind() {
		case KindWeight:
			if we.PlannedWeightKg != nil && (s.WeightKg == nil || *s.WeightKg < *we.PlannedWeightKg) {
				return false
			}
		case KindTime:
			if we.PlannedSeconds != nil && (s.Seconds == nil || *s.Seconds < *we.PlannedSeconds) {
				return false
			}
		case KindReps:
		default:
			return false
		}
	}
	return true
}
