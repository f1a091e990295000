package api

import (
	"net/http"
	"sync/atomic"

	"alcyxob/fitness-tracker/internal/controller"
	"alcyxob/fitness-tracker/internal/domain"

	"github.com/gin-gonic/gin"
)

// recordHandler serves the five CRUD routes of one collection.
type recordHandler[T domain.Record[T]] struct {
	ctrl   *controller.Controller[T]
	loaded atomic.Bool

	// checkDraft rejects request bodies the UI should never send
	checkDraft func(T) string
}

// list serves from the cache, loading the collection on the first call.
func (h *recordHandler[T]) list(c *gin.Context) {
	if !h.loaded.Load() {
		if _, err := h.ctrl.LoadAll(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		h.loaded.Store(true)
	}
	c.JSON(http.StatusOK, h.ctrl.Items())
}

func (h *recordHandler[T]) get(c *gin.Context) {
	id := c.Param("id")
	item, found, err := h.ctrl.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		abortWithError(c, http.StatusNotFound, "not found: "+id)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *recordHandler[T]) create(c *gin.Context) {
	draft, ok := h.bind(c)
	if !ok {
		return
	}
	created, err := h.ctrl.Create(c.Request.Context(), draft)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *recordHandler[T]) update(c *gin.Context) {
	draft, ok := h.bind(c)
	if !ok {
		return
	}
	// The path is authoritative for the identifier.
	updated, err := h.ctrl.Update(c.Request.Context(), draft.WithID(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *recordHandler[T]) remove(c *gin.Context) {
	if err := h.ctrl.Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *recordHandler[T]) bind(c *gin.Context) (T, bool) {
	var draft T
	if err := c.ShouldBindJSON(&draft); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return draft, false
	}
	if h.checkDraft != nil {
		if msg := h.checkDraft(draft); msg != "" {
			abortWithError(c, http.StatusBadRequest, "Validation error: "+msg)
			return draft, false
		}
	}
	return draft, true
}

func (h *recordHandler[T]) register(group *gin.RouterGroup) {
	group.GET("", h.list)
	group.POST("", h.create)
	group.GET("/:id", h.get)
	group.PUT("/:id", h.update)
	group.DELETE("/:id", h.remove)
}

func requireName(name string) string {
	if name == "" {
		return "name is required"
	}
	return ""
}
