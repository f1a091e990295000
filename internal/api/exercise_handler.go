package api

import (
	"net/http"
	"time"

	"alcyxob/fitness-tracker/internal/controller"
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/storage"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ExerciseHandler serves exercises and their demonstration videos.
type ExerciseHandler struct {
	recordHandler[domain.Exercise]

	exercises *controller.ExerciseController
	videos    storage.FileStorage // nil when video storage is disabled
	urlExpiry time.Duration
}

func NewExerciseHandler(exercises *controller.ExerciseController, videos storage.FileStorage, urlExpiry time.Duration) *ExerciseHandler {
	h := &ExerciseHandler{
		exercises: exercises,
		videos:    videos,
		urlExpiry: urlExpiry,
	}
	h.ctrl = exercises.Controller
	h.checkDraft = func(e domain.Exercise) string { return requireName(e.Name) }
	return h
}

// VideoUploadRequest asks for a presigned upload URL.
type VideoUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

// VideoUploadResponse tells the client where to PUT the file.
type VideoUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
	ExpiresIn int    `json:"expiresIn"` // seconds
}

// DeleteExercise removes the exercise and, when it owns a stored video, the video object.
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	id := c.Param("id")
	exercise, found, err := h.exercises.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.exercises.Remove(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	if found && h.videos != nil && exercise.VideoRef != "" && !storage.IsExternalURL(exercise.VideoRef) {
		// The exercise is gone either way; a leftover object is only logged.
		if err := h.videos.DeleteObject(c.Request.Context(), exercise.VideoRef); err != nil {
			log.WithField("exercise", id).WithError(err).Warn("video object not deleted")
		}
	}
	c.Status(http.StatusNoContent)
}

// CreateVideoUploadURL issues a presigned PUT URL and points the exercise at the new object.
func (h *ExerciseHandler) CreateVideoUploadURL(c *gin.Context) {
	if h.videos == nil {
		abortWithError(c, http.StatusNotImplemented, "video storage is not configured")
		return
	}
	var req VideoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")
	exercise, found, err := h.exercises.FindByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		abortWithError(c, http.StatusNotFound, "not found: "+id)
		return
	}

	key, err := storage.VideoKey(id, req.ContentType)
	if err != nil {
		respondError(c, err)
		return
	}
	url, err := h.videos.GeneratePresignedUploadURL(ctx, key, req.ContentType, h.urlExpiry)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create upload URL")
		return
	}

	exercise.VideoRef = key
	if _, err := h.exercises.Update(ctx, exercise); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, VideoUploadResponse{
		UploadURL: url,
		ObjectKey: key,
		ExpiresIn: int(h.expiry().Seconds()),
	})
}

// GetVideoURL returns a URL the client can play the demonstration video from.
func (h *ExerciseHandler) GetVideoURL(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	exercise, found, err := h.exercises.FindByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !found || exercise.VideoRef == "" {
		abortWithError(c, http.StatusNotFound, "no video for exercise "+id)
		return
	}

	if storage.IsExternalURL(exercise.VideoRef) {
		c.JSON(http.StatusOK, gin.H{"url": exercise.VideoRef})
		return
	}
	if h.videos == nil {
		abortWithError(c, http.StatusNotImplemented, "video storage is not configured")
		return
	}
	url, err := h.videos.GeneratePresignedDownloadURL(ctx, exercise.VideoRef, h.urlExpiry)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create download URL")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url, "expiresIn": int(h.expiry().Seconds())})
}

func (h *ExerciseHandler) expiry() time.Duration {
	if h.urlExpiry <= 0 {
		return storage.DefaultPresignedURLExpiry
	}
	return h.urlExpiry
}
