package schedule

import (
	"errors"
	"net/http"
	"strconv"

	"clubdesk/internal/domain"
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
	rg.GET("/schedule/:week", h.Week)
	rg.GET("/vacations/:year", h.Vacations)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.PUT("/schedule/:week", h.SetWeek)
	rg.DELETE("/schedule/:week", h.DeleteWeek)
	rg.POST("/schedule/:week/swap", h.Swap)
	rg.PUT("/schedule/:week/role", h.SetRole)
	rg.PUT("/schedule/:week/days/:day", h.SetDayOverride)
	rg.DELETE("/schedule/:week/days/:day", h.ClearDayOverride)
	rg.POST("/schedule/:week/tasks", h.AddTask)
	rg.POST("/tasks/toggle", h.ToggleTask)
	rg.PUT("/vacations/:year/dates/:date", h.SetVacation)
	rg.DELETE("/vacations/:year/dates/:date", h.RemoveVacation)
}

func (h *Handler) Week(c *gin.Context) {
	view, err := h.service.Week(c.Request.Context(), c.Param("week"))
	if err != nil {
		h.fail(c, err, "Failed to load week schedule")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"week": view})
}

func (h *Handler) SetWeek(c *gin.Context) {
	var req SetWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if err := h.service.SetWeek(c.Request.Context(), c.Param("week"), req); err != nil {
		h.fail(c, err, "Failed to save week schedule")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"week_id": c.Param("week")})
}

func (h *Handler) DeleteWeek(c *gin.Context) {
	if err := h.service.DeleteWeek(c.Request.Context(), c.Param("week")); err != nil {
		h.fail(c, err, "Failed to reset week schedule")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"week_id": c.Param("week")})
}

func (h *Handler) Swap(c *gin.Context) {
	if err := h.service.Swap(c.Request.Context(), c.Param("week")); err != nil {
		h.fail(c, err, "Failed to swap shifts")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"week_id": c.Param("week")})
}

func (h *Handler) SetRole(c *gin.Context) {
	var req SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	err := h.service.SetRole(c.Request.Context(), c.Param("week"), domain.ShiftRole(req.Role), req.Worker)
	if err != nil {
		h.fail(c, err, "Failed to assign shift")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"week_id": c.Param("week")})
}

func (h *Handler) SetDayOverride(c *gin.Context) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid day index")
		return
	}
	var req SetDayOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	ov := domain.DayOverride{Morning: req.Morning, Evening: req.Evening}
	if err := h.service.SetDayOverride(c.Request.Context(), c.Param("week"), day, ov); err != nil {
		h.fail(c, err, "Failed to save day override")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"week_id": c.Param("week"), "day": day})
}

func (h *Handler) ClearDayOverride(c *gin.Context) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid day index")
		return
	}
	if err := h.service.ClearDayOverride(c.Request.Context(), c.Param("week"), day); err != nil {
		h.fail(c, err, "Failed to clear day override")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"week_id": c.Param("week"), "day": day})
}

func (h *Handler) AddTask(c *gin.Context) {
	var req AddTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	task, err := h.service.AddTask(c.Request.Context(), c.Param("week"), req)
	if err != nil {
		h.fail(c, err, "Failed to add task")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"task": task})
}

func (h *Handler) ToggleTask(c *gin.Context) {
	var req ToggleTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if err := h.service.ToggleTask(c.Request.Context(), req); err != nil {
		h.fail(c, err, "Failed to toggle task")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"task_id": req.TaskID})
}

func (h *Handler) Vacations(c *gin.Context) {
	doc, err := h.service.Vacations(c.Request.Context(), c.Param("year"))
	if err != nil {
		h.fail(c, err, "Failed to load vacations")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"vacations": doc})
}

func (h *Handler) SetVacation(c *gin.Context) {
	var req SetVacationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	err := h.service.SetVacation(c.Request.Context(), c.Param("year"), c.Param("date"), req.Worker)
	if err != nil {
		h.fail(c, err, "Failed to record vacation day")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"date": c.Param("date"), "worker": req.Worker})
}

func (h *Handler) RemoveVacation(c *gin.Context) {
	err := h.service.RemoveVacation(c.Request.Context(), c.Param("year"), c.Param("date"))
	if err != nil {
		h.fail(c, err, "Failed to remove vacation day")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"date": c.Param("date")})
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid schedule request")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Not found")
	case errors.Is(err, ErrDateTaken):
		response.Error(c, http.StatusConflict, "VACATION_DATE_TAKEN", "Another worker already has this date")
	case errors.Is(err, ErrVacationLimit):
		response.Error(c, http.StatusBadRequest, "VACATION_LIMIT", "Vacation day limit reached for this worker")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
