package domain

// SpecialEvent is an independent entity overlapping the booking/shift
// timeline. Dates are YYYY-MM-DD strings, times optional HH:mm.
type SpecialEvent struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	StartTime string   `json:"start_time,omitempty"`
	EndTime   string   `json:"end_time,omitempty"`
	SpaceIDs  []string `json:"space_ids,omitempty"`
	Tasks     []Task   `json:"tasks,omitempty"`
}
