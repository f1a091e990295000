package seed

import (
	"fmt"
	"io"
	"os"

	"alcyxob/fitness-tracker/internal/domain"

	"github.com/BurntSushi/toml"
)

// For TOML parsing only

type FileTOML struct {
	Exercises []ExerciseTOML `toml:"exercise"`
	Trainings []TrainingTOML `toml:"training"`
}

type ExerciseTOML struct {
	ID               string   `toml:"id"`
	Name             string   `toml:"name"`
	Description      string   `toml:"description"`
	Kind             string   `toml:"kind"`
	Video            string   `toml:"video"`
	LastKnownWeight  *float64 `toml:"last_known_weight"`
	LastKnownSeconds *int     `toml:"last_known_seconds"`
	LastKnownReps    *int     `toml:"last_known_reps"`
}

type TrainingTOML struct {
	ID          string        `toml:"id"`
	Name        string        `toml:"name"`
	Description string        `toml:"description"`
	Notes       string        `toml:"notes"`
	Exercises   []PlannedTOML `toml:"exercise"`
}

// PlannedTOML refers to an exercise of the same file by ID.
type PlannedTOML struct {
	Exercise string    `toml:"exercise"`
	Sets     int       `toml:"sets"`
	Reps     []int     `toml:"reps"`
	WeightKg []float64 `toml:"weight_kg"`
	Seconds  []int     `toml:"seconds"`
}

// LoadTOML reads a data file.
func LoadTOML(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, err
	}
	defer f.Close()
	return DecodeTOML(f)
}

// DecodeTOML parses a data file and checks it against the domain rules.
func DecodeTOML(r io.Reader) (Data, error) {
	var file FileTOML
	md, err := toml.NewDecoder(r).Decode(&file)
	if err != nil {
		return Data{}, fmt.Errorf("parse toml: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Data{}, fmt.Errorf("unknown keys: %v", undecoded)
	}
	return file.toData()
}

func (f FileTOML) toData() (Data, error) {
	data := Data{
		Exercises: make([]domain.Exercise, 0, len(f.Exercises)),
		Trainings: make([]domain.Training, 0, len(f.Trainings)),
	}

	byID := make(map[string]domain.Exercise, len(f.Exercises))
	for i, et := range f.Exercises {
		ex, err := et.toExercise()
		if err != nil {
			return Data{}, fmt.Errorf("exercise %d (%s): %w", i, et.ID, err)
		}
		if _, dup := byID[ex.ID]; dup {
			return Data{}, fmt.Errorf("exercise %d: duplicate id %q", i, ex.ID)
		}
		byID[ex.ID] = ex
		data.Exercises = append(data.Exercises, ex)
	}

	for i, tt := range f.Trainings {
		training := domain.Training{
			ID:          tt.ID,
			Name:        tt.Name,
			Description: tt.Description,
			Notes:       tt.Notes,
			Exercises:   make([]domain.TrainingExercise, 0, len(tt.Exercises)),
		}
		for j, pt := range tt.Exercises {
			ex, ok := byID[pt.Exercise]
			if !ok {
				return Data{}, fmt.Errorf("training %d exercise %d: unknown exercise %q", i, j, pt.Exercise)
			}
			reps := pt.Reps
			if len(reps) == 0 {
				// timed exercises usually plan no reps
				reps = make([]int, pt.Sets)
			}
			training.Exercises = append(training.Exercises, domain.TrainingExercise{
				Exercise:        ex.Clone(),
				PlannedSets:     pt.Sets,
				PlannedReps:     reps,
				PlannedWeightKg: pt.WeightKg,
				PlannedSeconds:  pt.Seconds,
			})
		}
		if err := training.Validate(); err != nil {
			return Data{}, fmt.Errorf("training %d (%s): %w", i, tt.ID, err)
		}
		data.Trainings = append(data.Trainings, training)
	}

	return data, nil
}

func (et ExerciseTOML) toExercise() (domain.Exercise, error) {
	var (
		ex       domain.Exercise
		progress domain.Progress
		extra    bool
	)
	switch domain.ExerciseKind(et.Kind) {
	case domain.KindWeight:
		ex = domain.NewWeightExercise(et.Name)
		progress = domain.WeightProgress{LastKnownWeightKg: et.LastKnownWeight}
		extra = et.LastKnownSeconds != nil || et.LastKnownReps != nil
	case domain.KindTime:
		ex = domain.NewTimeExercise(et.Name)
		progress = domain.TimeProgress{LastKnownDurationSeconds: et.LastKnownSeconds}
		extra = et.LastKnownWeight != nil || et.LastKnownReps != nil
	case domain.KindReps:
		ex = domain.NewRepsExercise(et.Name)
		progress = domain.RepsProgress{LastKnownReps: et.LastKnownReps}
		extra = et.LastKnownWeight != nil || et.LastKnownSeconds != nil
	default:
		return domain.Exercise{}, fmt.Errorf("%w: %q", domain.ErrUnknownKind, et.Kind)
	}
	if extra {
		return domain.Exercise{}, fmt.Errorf("%w: last known value does not match kind %q", domain.ErrKindMismatch, et.Kind)
	}

	ex, err := ex.WithProgress(progress)
	if err != nil {
		return domain.Exercise{}, err
	}
	ex.ID = et.ID
	ex.Description = et.Description
	ex.VideoRef = et.Video
	return ex, nil
}
