package events

import "clubdesk/internal/domain"

type EventRequest struct {
	Name      string        `json:"name" binding:"required"`
	StartDate string        `json:"start_date" binding:"required"`
	EndDate   string        `json:"end_date" binding:"required"`
	StartTime string        `json:"start_time"`
	EndTime   string        `json:"end_time"`
	SpaceIDs  []string      `json:"space_ids"`
	Tasks     []domain.Task `json:"tasks"`
}
