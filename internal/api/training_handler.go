package api

import (
	"net/http"
	"time"

	"alcyxob/fitness-tracker/internal/controller"
	"alcyxob/fitness-tracker/internal/domain"

	"github.com/gin-gonic/gin"
)

type TrainingHandler struct {
	recordHandler[domain.Training]

	workouts *controller.WorkoutController
}

func NewTrainingHandler(trainings *controller.TrainingController, workouts *controller.WorkoutController) *TrainingHandler {
	h := &TrainingHandler{workouts: workouts}
	h.ctrl = trainings.Controller
	h.checkDraft = func(t domain.Training) string { return requireName(t.Name) }
	return h
}

// StartWorkoutRequest optionally dates the new session; it defaults to now.
type StartWorkoutRequest struct {
	Date *time.Time `json:"date"`
}

// StartWorkout creates a workout from the training in the path.
func (h *TrainingHandler) StartWorkout(c *gin.Context) {
	var req StartWorkoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
			return
		}
	}
	date := time.Now().UTC()
	if req.Date != nil {
		date = *req.Date
	}

	workout, err := h.workouts.StartFromTraining(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, workout)
}
