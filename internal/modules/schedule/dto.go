package schedule

import "clubdesk/internal/domain"

// PeriodView is the effective state of one half-day period after week
// overrides, day overrides and the vacation overlay are applied.
type PeriodView struct {
	Worker     string `json:"worker"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Active     bool   `json:"active"`
	Overridden bool   `json:"overridden"`
	OnVacation bool   `json:"on_vacation"`
}

type DayView struct {
	Date    string     `json:"date"`
	Morning PeriodView `json:"morning"`
	Evening PeriodView `json:"evening"`
}

type WeekView struct {
	WeekID       string                `json:"week_id"`
	Morning      string                `json:"morning"`
	Evening      string                `json:"evening"`
	Overridden   bool                  `json:"overridden"`
	Observations string                `json:"observations,omitempty"`
	Days         []DayView             `json:"days"`
	Tasks        []domain.CombinedTask `json:"tasks"`
}

type SetWeekRequest struct {
	Morning      string `json:"morning" binding:"required"`
	Evening      string `json:"evening" binding:"required"`
	Observations string `json:"observations"`
}

type SetRoleRequest struct {
	Role   string `json:"role" binding:"required"`
	Worker string `json:"worker" binding:"required"`
}

type SetDayOverrideRequest struct {
	Morning domain.ShiftPeriod `json:"morning"`
	Evening domain.ShiftPeriod `json:"evening"`
}

type AddTaskRequest struct {
	Text       string   `json:"text" binding:"required"`
	AssignedTo []string `json:"assigned_to"`
}

type ToggleTaskRequest struct {
	Collection string `json:"collection" binding:"required"`
	ParentID   string `json:"parent_id" binding:"required"`
	TaskID     string `json:"task_id" binding:"required"`
}

type SetVacationRequest struct {
	Worker string `json:"worker" binding:"required"`
}
