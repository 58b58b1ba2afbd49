package booking

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
	rg.GET("/bookings", h.List)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.Create)
	rg.POST("/bookings/delete", h.Delete)
	rg.POST("/bookings/duplicate", h.Duplicate)
	rg.POST("/bookings/update", h.Update)
}

func (h *Handler) List(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing date query parameter")
		return
	}

	entries, err := h.service.List(c.Request.Context(), date)
	if err != nil {
		h.fail(c, err, "Failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": entries})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	keys, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "Failed to create booking")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"keys": keys})
}

func (h *Handler) Delete(c *gin.Context) {
	var req DeleteBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.Keys); err != nil {
		h.fail(c, err, "Failed to delete booking")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": len(req.Keys)})
}

func (h *Handler) Duplicate(c *gin.Context) {
	var req DuplicateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	keys, err := h.service.Duplicate(c.Request.Context(), req.Keys, req.TargetDate)
	if err != nil {
		h.fail(c, err, "Failed to duplicate booking")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"keys": keys})
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	keys, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "Failed to update booking")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"keys": keys})
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking request")
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", "One or more slots are already booked")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking no longer exists")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
