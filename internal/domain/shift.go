package domain

type ShiftRole string

const (
	RoleMorning ShiftRole = "morning"
	RoleEvening ShiftRole = "evening"
)

// ShiftPeriod describes one half-day period of a single day.
type ShiftPeriod struct {
	Active bool   `json:"active"`
	Worker string `json:"worker"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// DayOverride replaces the week-level assignment for one day.
// Day indexes run 0 (Monday) through 6 (Sunday).
type DayOverride struct {
	Morning ShiftPeriod `json:"morning"`
	Evening ShiftPeriod `json:"evening"`
}

// ShiftAssignment is the persisted override for one ISO week. A week without
// a stored record still has an implicit assignment computed from the default
// rotation; deleting the record returns the week to that state.
type ShiftAssignment struct {
	WeekID         string              `json:"week_id"`
	Morning        string              `json:"morning"`
	Evening        string              `json:"evening"`
	DailyOverrides map[int]DayOverride `json:"daily_overrides,omitempty"`
	Observations   string              `json:"observations,omitempty"`
	Tasks          []Task              `json:"tasks,omitempty"`
}
