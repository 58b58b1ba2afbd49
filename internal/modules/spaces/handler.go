package spaces

import (
	"net/http"

	"clubdesk/internal/domain"
	"clubdesk/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler serves the static space catalog the booking forms render.
type Handler struct {
	spaces []domain.Space
	groups []domain.SpaceGroup
}

func NewHandler(spaces []domain.Space, groups []domain.SpaceGroup) *Handler {
	return &Handler{spaces: spaces, groups: groups}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/spaces", h.List)
}

func (h *Handler) List(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"spaces": h.spaces,
		"groups": h.groups,
	})
}
