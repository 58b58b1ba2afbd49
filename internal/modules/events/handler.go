package events

import (
	"errors"
	"net/http"

	"clubdesk/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/events", h.List)
	rg.GET("/events/:id", h.Get)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/events", h.Create)
	rg.PUT("/events/:id", h.Update)
	rg.DELETE("/events/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to list events")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"events": list})
}

func (h *Handler) Get(c *gin.Context) {
	ev, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Failed to load event")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"event": ev})
}

func (h *Handler) Create(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	ev, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "Failed to create event")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"event": ev})
}

func (h *Handler) Update(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	ev, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err, "Failed to update event")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"event": ev})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "Failed to delete event")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid event")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Event not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
