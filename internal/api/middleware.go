package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"alcyxob/fitness-tracker/internal/controller"
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/metrics"
	"alcyxob/fitness-tracker/internal/storage"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// respondError maps a controller or domain error to its HTTP status.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.WithField("path", c.FullPath()).WithError(err).Error("request failed")
	}
	abortWithError(c, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, controller.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, controller.ErrKindImmutable):
		return http.StatusConflict
	case errors.Is(err, controller.ErrNoTraining):
		return http.StatusUnprocessableEntity
	case errors.Is(err, controller.ErrMissingID),
		errors.Is(err, domain.ErrPlanShape),
		errors.Is(err, domain.ErrUnknownKind),
		errors.Is(err, domain.ErrKindMismatch),
		errors.Is(err, storage.ErrUnsupportedContentType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// RequestLogger logs every request through logrus.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("request served")
		} else {
			entry.Debug("request served")
		}
	}
}

// RequestMetrics counts requests and observes their latency per route.
func RequestMetrics(m *metrics.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.CounterRequests.WithLabelValues(c.Request.Method, status).Inc()
		m.HistogramRequestDuration.WithLabelValues(route, c.Request.Method, status).Observe(time.Since(start).Seconds())
	}
}
