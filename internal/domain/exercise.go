// internal/domain/exercise.go
package domain

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// ExerciseKind is the performance dimension an Exercise is tracked by.
type ExerciseKind string

const (
	KindWeight ExerciseKind = "weight"
	KindTime   ExerciseKind = "time"
	KindReps   ExerciseKind = "reps"
)

var (
	ErrUnknownKind  = errors.New("unknown exercise kind")
	ErrKindMismatch = errors.New("progression field does not match exercise kind")
)

// Valid reports whether k is one of the known kinds.
func (k ExerciseKind) Valid() bool {
	switch k {
	case KindWeight, KindTime, KindReps:
		return true
	}
	return false
}

// Progress is the kind-specific "last known performance" of an Exercise.
// The set of implementations is closed: WeightProgress, TimeProgress and RepsProgress.
type Progress interface {
	Kind() ExerciseKind
	cloneProgress() Progress
}

// WeightProgress tracks the last known working weight, in kilograms.
type WeightProgress struct {
	LastKnownWeightKg *float64
}

// TimeProgress tracks the last known hold/work duration, in seconds.
type TimeProgress struct {
	LastKnownDurationSeconds *int
}

// RepsProgress tracks the last known rep count for bodyweight-style movements.
type RepsProgress struct {
	LastKnownReps *int
}

func (WeightProgress) Kind() ExerciseKind { return KindWeight }
func (TimeProgress) Kind() ExerciseKind   { return KindTime }
func (RepsProgress) Kind() ExerciseKind   { return KindReps }

func (p WeightProgress) cloneProgress() Progress {
	return WeightProgress{LastKnownWeightKg: clonePtr(p.LastKnownWeightKg)}
}

func (p TimeProgress) cloneProgress() Progress {
	return TimeProgress{LastKnownDurationSeconds: clonePtr(p.LastKnownDurationSeconds)}
}

func (p RepsProgress) cloneProgress() Progress {
	return RepsProgress{LastKnownReps: clonePtr(p.LastKnownReps)}
}

// Exercise represents a single movement definition in the library.
// Its kind is fixed at construction; use one of the New*Exercise constructors.
type Exercise struct {
	ID          string
	Name        string
	Description string
	VideoRef    string // Optional demonstration video: a URL or an object-storage key
	Progress    Progress
}

func NewWeightExercise(name string) Exercise {
	return Exercise{Name: name, Progress: WeightProgress{}}
}

func NewTimeExercise(name string) Exercise {
	return Exercise{Name: name, Progress: TimeProgress{}}
}

func NewRepsExercise(name string) Exercise {
	return Exercise{Name: name, Progress: RepsProgress{}}
}

// Kind returns the exercise kind, or "" for a zero Exercise.
func (e Exercise) Kind() ExerciseKind {
	if e.Progress == nil {
		return ""
	}
	return e.Progress.Kind()
}

// WithProgress returns a copy of e carrying p. The kind of p must match the kind of e.
func (e Exercise) WithProgress(p Progress) (Exercise, error) {
	if p == nil || p.Kind() != e.Kind() {
		return Exercise{}, fmt.Errorf("%w: exercise %q is %q", ErrKindMismatch, e.ID, e.Kind())
	}
	out := e.Clone()
	out.Progress = p.cloneProgress()
	return out, nil
}

func (e Exercise) GetID() string { return e.ID }

func (e Exercise) WithID(id string) Exercise {
	out := e.Clone()
	out.ID = id
	return out
}

func (e Exercise) Clone() Exercise {
	out := e
	if e.Progress != nil {
		out.Progress = e.Progress.cloneProgress()
	}
	return out
}

// exerciseRecord is the stored/wire form of an Exercise. At most one of the
// lastKnown* fields is set and it must match Kind.
type exerciseRecord struct {
	ID                       string       `json:"id" bson:"_id"`
	Name                     string       `json:"name" bson:"name"`
	Description              string       `json:"description,omitempty" bson:"description,omitempty"`
	VideoRef                 string       `json:"videoRef,omitempty" bson:"videoRef,omitempty"`
	Kind                     ExerciseKind `json:"kind" bson:"kind"`
	LastKnownWeight          *float64     `json:"lastKnownWeight,omitempty" bson:"lastKnownWeight,omitempty"`
	LastKnownDurationSeconds *int         `json:"lastKnownDurationSeconds,omitempty" bson:"lastKnownDurationSeconds,omitempty"`
	LastKnownReps            *int         `json:"lastKnownReps,omitempty" bson:"lastKnownReps,omitempty"`
}

func (e Exercise) record() (exerciseRecord, error) {
	r := exerciseRecord{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		VideoRef:    e.VideoRef,
	}
	switch p := e.Progress.(type) {
	case WeightProgress:
		r.Kind = KindWeight
		r.LastKnownWeight = p.LastKnownWeightKg
	case TimeProgress:
		r.Kind = KindTime
		r.LastKnownDurationSeconds = p.LastKnownDurationSeconds
	case RepsProgress:
		r.Kind = KindReps
		r.LastKnownReps = p.LastKnownReps
	default:
		return exerciseRecord{}, fmt.Errorf("%w: exercise %q has no progress variant", ErrUnknownKind, e.ID)
	}
	return r, nil
}

func (r exerciseRecord) exercise() (Exercise, error) {
	e := Exercise{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		VideoRef:    r.VideoRef,
	}
	switch r.Kind {
	case KindWeight:
		if r.LastKnownDurationSeconds != nil || r.LastKnownReps != nil {
			return Exercise{}, fmt.Errorf("%w: weight exercise %q", ErrKindMismatch, r.ID)
		}
		e.Progress = WeightProgress{LastKnownWeightKg: r.LastKnownWeight}
	case KindTime:
		if r.LastKnownWeight != nil || r.LastKnownReps != nil {
			return Exercise{}, fmt.Errorf("%w: time exercise %q", ErrKindMismatch, r.ID)
		}
		e.Progress = TimeProgress{LastKnownDurationSeconds: r.LastKnownDurationSeconds}
	case KindReps:
		if r.LastKnownWeight != nil || r.LastKnownDurationSeconds != nil {
			return Exercise{}, fmt.Errorf("%w: reps exercise %q", ErrKindMismatch, r.ID)
		}
		e.Progress = RepsProgress{LastKnownReps: r.LastKnownReps}
	default:
		return Exercise{}, fmt.Errorf("%w: %q", ErrUnknownKind, r.Kind)
	}
	return e, nil
}

func (e Exercise) MarshalJSON() ([]byte, error) {
	r, err := e.record()
	if err != nil {
		return nil, err
	}
	return json.Marshal(r)
}

func (e *Exercise) UnmarshalJSON(data []byte) error {
	var r exerciseRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	decoded, err := r.exercise()
	if err != nil {
		return err
	}
	*e = decoded
	return nil
}

func (e Exercise) MarshalBSON() ([]byte, error) {
	r, err := e.record()
	if err != nil {
		return nil, err
	}
	return bson.Marshal(r)
}

func (e *Exercise) UnmarshalBSON(data []byte) error {
	var r exerciseRecord
	if err := bson.Unmarshal(data, &r); err != nil {
		return err
	}
	decoded, err := r.exercise()
	if err != nil {
		return err
	}
	*e = decoded
	return nil
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
