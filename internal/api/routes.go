package api

import (
	"net/http"
	"time"

	"alcyxob/fitness-tracker/internal/controller"
	"alcyxob/fitness-tracker/internal/metrics"
	"alcyxob/fitness-tracker/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Dependencies is everything the routes are served from.
type Dependencies struct {
	Exercises   *controller.ExerciseController
	Trainings   *controller.TrainingController
	Workouts    *controller.WorkoutController
	Progression *controller.ProgressionService

	Videos         storage.FileStorage // optional
	VideoURLExpiry time.Duration

	Metrics  *metrics.Manager    // optional
	Registry prometheus.Gatherer // serves /metrics when set
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	router.Use(otelgin.Middleware("fitlog"))
	router.Use(RequestLogger())
	if deps.Metrics != nil {
		router.Use(RequestMetrics(deps.Metrics))
	}

	exerciseHandler := NewExerciseHandler(deps.Exercises, deps.Videos, deps.VideoURLExpiry)
	trainingHandler := NewTrainingHandler(deps.Trainings, deps.Workouts)
	workoutHandler := NewWorkoutHandler(deps.Workouts, deps.Progression)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if deps.Registry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	apiV1 := router.Group("/api/v1")
	{
		// --- Exercise Routes ---
		exerciseGroup := apiV1.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.list)
			exerciseGroup.POST("", exerciseHandler.create)
			exerciseGroup.GET("/:id", exerciseHandler.get)
			exerciseGroup.PUT("/:id", exerciseHandler.update)
			exerciseGroup.DELETE("/:id", exerciseHandler.DeleteExercise)
			exerciseGroup.POST("/:id/video/upload-url", exerciseHandler.CreateVideoUploadURL)
			exerciseGroup.GET("/:id/video", exerciseHandler.GetVideoURL)
		}

		// --- Training Routes ---
		trainingGroup := apiV1.Group("/trainings")
		{
			trainingHandler.register(trainingGroup)
			trainingGroup.POST("/:id/workouts", trainingHandler.StartWorkout)
		}

		// --- Workout Routes ---
		workoutGroup := apiV1.Group("/workouts")
		{
			workoutHandler.register(workoutGroup)
			workoutGroup.POST("/:id/complete", workoutHandler.Complete)
			workoutGroup.GET("/:id/analysis", workoutHandler.Analysis)
			workoutGroup.POST("/:id/progression", workoutHandler.ApplyProgression)
		}

		apiV1.POST("/analysis", Analyze)
	}
}
