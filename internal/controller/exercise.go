package controller

import (
	"fmt"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
)

type ExerciseController struct {
	*Controller[domain.Exercise]
}

func NewExerciseController(table repository.Table[domain.Exercise]) *ExerciseController {
	c := New[domain.Exercise](repository.ExercisesCollection, table)
	c.validate = validateExercise
	c.prepareUpdate = func(stored, draft domain.Exercise) (domain.Exercise, error) {
		return draft, keepKind(stored, draft)
	}
	c.checkReplace = keepKind
	return &ExerciseController{Controller: c}
}

// keepKind rejects a draft that would change the kind of a stored exercise.
func keepKind(stored, draft domain.Exercise) error {
	if stored.Kind() != draft.Kind() {
		return fmt.Errorf("%w: %s is %s, not %s", ErrKindImmutable, stored.ID, stored.Kind(), draft.Kind())
	}
	return nil
}

func validateExercise(e domain.Exercise) error {
	if !e.Kind().Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownKind, e.Kind())
	}
	return nil
}
