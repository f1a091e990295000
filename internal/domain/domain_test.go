package domain_test

import (
	"encoding/json"
	"testing"

	"alcyxob/fitness-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestExercise_JSONWireForm(t *testing.T) {
	ex, err := domain.NewWeightExercise("Bench press").
		WithProgress(domain.WeightProgress{LastKnownWeightKg: domain.Float(80)})
	require.NoError(t, err)
	ex = ex.WithID("ex-1")

	data, err := json.Marshal(ex)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"ex-1","name":"Bench press","kind":"weight","lastKnownWeight":80}`, string(data))

	var decoded domain.Exercise
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, ex, decoded)
}

func TestExercise_DecodeRejectsCrossKindFields(t *testing.T) {
	var ex domain.Exercise
	err := json.Unmarshal([]byte(`{"id":"x","name":"Plank","kind":"time","lastKnownWeight":10}`), &ex)
	require.ErrorIs(t, err, domain.ErrKindMismatch)

	err = json.Unmarshal([]byte(`{"id":"x","name":"Plank","kind":"cardio"}`), &ex)
	require.ErrorIs(t, err, domain.ErrUnknownKind)
}

func TestExercise_BSONRoundTrip(t *testing.T) {
	ex, err := domain.NewTimeExercise("Plank").
		WithProgress(domain.TimeProgress{LastKnownDurationSeconds: domain.Int(60)})
	require.NoError(t, err)
	ex = ex.WithID("ex-2")

	training := domain.Training{
		ID:   "tr-1",
		Name: "Core",
		Exercises: []domain.TrainingExercise{{
			Exercise:       ex,
			PlannedSets:    2,
			PlannedReps:    []int{1, 1},
			PlannedSeconds: []int{60, 60},
		}},
	}

	data, err := bson.Marshal(training)
	require.NoError(t, err)

	var decoded domain.Training
	require.NoError(t, bson.Unmarshal(data, &decoded))
	assert.Equal(t, training, decoded)
}

func TestExercise_WithProgressKeepsKind(t *testing.T) {
	ex := domain.NewRepsExercise("Pull-up")

	_, err := ex.WithProgress(domain.WeightProgress{LastKnownWeightKg: domain.Float(5)})
	require.ErrorIs(t, err, domain.ErrKindMismatch)

	updated, err := ex.WithProgress(domain.RepsProgress{LastKnownReps: domain.Int(12)})
	require.NoError(t, err)
	assert.Equal(t, domain.KindReps, updated.Kind())
	assert.Nil(t, ex.Progress.(domain.RepsProgress).LastKnownReps, "original must stay untouched")
}

func TestTraining_CloneIsDeep(t *testing.T) {
	original := domain.Training{
		Exercises: []domain.TrainingExercise{{
			Exercise:        domain.NewWeightExercise("Squat"),
			PlannedSets:     1,
			PlannedReps:     []int{5},
			PlannedWeightKg: []float64{100},
		}},
	}
	clone := original.Clone()
	clone.Exercises[0].PlannedWeightKg[0] = 105
	clone.Exercises[0].PlannedReps[0] = 6

	assert.Equal(t, 100.0, original.Exercises[0].PlannedWeightKg[0])
	assert.Equal(t, 5, original.Exercises[0].PlannedReps[0])
}

func TestTrainingExercise_Validate(t *testing.T) {
	tests := []struct {
		name    string
		te      domain.TrainingExercise
		wantErr bool
	}{
		{
			name: "weight plan",
			te: domain.TrainingExercise{
				Exercise: domain.NewWeightExercise("Squat"), PlannedSets: 2,
				PlannedReps: []int{5, 5}, PlannedWeightKg: []float64{100, 100},
			},
		},
		{
			name: "reps length mismatch",
			te: domain.TrainingExercise{
				Exercise: domain.NewRepsExercise("Push-up"), PlannedSets: 3,
				PlannedReps: []int{10, 10},
			},
			wantErr: true,
		},
		{
			name: "weight exercise with durations",
			te: domain.TrainingExercise{
				Exercise: domain.NewWeightExercise("Squat"), PlannedSets: 1,
				PlannedReps: []int{5}, PlannedSeconds: []int{30},
			},
			wantErr: true,
		},
		{
			name: "reps exercise with weights",
			te: domain.TrainingExercise{
				Exercise: domain.NewRepsExercise("Dip"), PlannedSets: 1,
				PlannedReps: []int{8}, PlannedWeightKg: []float64{10},
			},
			wantErr: true,
		},
		{
			name: "time plan with short durations",
			te: domain.TrainingExercise{
				Exercise: domain.NewTimeExercise("Plank"), PlannedSets: 2,
				PlannedReps: []int{1, 1}, PlannedSeconds: []int{45},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.te.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrPlanShape)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWorkoutExercise_MeetsPlan(t *testing.T) {
	we := domain.WorkoutExercise{
		Exercise:        domain.NewWeightExercise("Deadlift"),
		PlannedSets:     2,
		PlannedReps:     5,
		PlannedWeightKg: domain.Float(120),
		Sets: []domain.WorkoutSet{
			{Reps: 5, WeightKg: domain.Float(120)},
			{Reps: 5, WeightKg: domain.Float(122.5)},
		},
	}
	assert.True(t, we.MeetsPlan())

	we.Sets[0].WeightKg = domain.Float(117.5)
	assert.False(t, we.MeetsPlan())

	we.Sets = we.Sets[1:]
	assert.False(t, we.MeetsPlan(), "fewer sets than planned")

	last, ok := we.LastSet()
	require.True(t, ok)
	assert.Equal(t, 5, last.Reps)
}
