package api

import (
	"net/http"

	"alcyxob/fitness-tracker/internal/controller"
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/progression"

	"github.com/gin-gonic/gin"
)

type WorkoutHandler struct {
	recordHandler[domain.Workout]

	workouts    *controller.WorkoutController
	progression *controller.ProgressionService
}

func NewWorkoutHandler(workouts *controller.WorkoutController, progression *controller.ProgressionService) *WorkoutHandler {
	h := &WorkoutHandler{
		workouts:    workouts,
		progression: progression,
	}
	h.ctrl = workouts.Controller
	return h
}

func (h *WorkoutHandler) Complete(c *gin.Context) {
	workout, err := h.workouts.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

// Analysis returns the suggested plan changes for a workout. Nothing is written.
func (h *WorkoutHandler) Analysis(c *gin.Context) {
	analysis, err := h.progression.Suggest(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// ApplyProgression writes the suggestions the user accepted. The body is the
// analysis as returned by Analysis, possibly with entries removed.
func (h *WorkoutHandler) ApplyProgression(c *gin.Context) {
	var analysis progression.PerformanceAnalysis
	if err := c.ShouldBindJSON(&analysis); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	update, err := h.progression.Apply(c.Request.Context(), c.Param("id"), analysis)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, update)
}

// AnalyzeRequest carries the exercises of an unsaved workout.
type AnalyzeRequest struct {
	Exercises []domain.WorkoutExercise `json:"exercises"`
}

// Analyze runs the analysis on the request body without touching the store.
func Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, progression.AnalyzePerformance(req.Exercises))
}
