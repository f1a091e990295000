package controller

import (
	"fmt"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
)

type TrainingController struct {
	*Controller[domain.Training]
}

func NewTrainingController(table repository.Table[domain.Training]) *TrainingController {
	c := New[domain.Training](repository.TrainingsCollection, table)
	c.validate = func(t domain.Training) error {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("training %s: %w", t.ID, err)
		}
		return nil
	}
	return &TrainingController{Controller: c}
}
