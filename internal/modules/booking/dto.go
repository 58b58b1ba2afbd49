package booking

// RepeatSpec describes how a booking repeats. Weekday indexes follow
// time.Weekday: 0 is Sunday.
type RepeatSpec struct {
	Rule     string `json:"rule"`
	EndDate  string `json:"end_date"`
	Weekdays []int  `json:"weekdays"`
}

type CreateBookingRequest struct {
	SpaceIDs     []string    `json:"space_ids" binding:"required"`
	Date         string      `json:"date" binding:"required"`
	StartTime    string      `json:"start_time" binding:"required"`
	EndTime      string      `json:"end_time" binding:"required"`
	Name         string      `json:"name"`
	Observations string      `json:"observations"`
	Repeat       *RepeatSpec `json:"repeat"`
}

type DeleteBookingRequest struct {
	Keys []string `json:"keys" binding:"required"`
}

type DuplicateBookingRequest struct {
	Keys       []string `json:"keys" binding:"required"`
	TargetDate string   `json:"target_date" binding:"required"`
}

// UpdateBookingRequest replaces the slots in Keys with a fresh single-day
// booking described by the remaining fields.
type UpdateBookingRequest struct {
	Keys         []string `json:"keys" binding:"required"`
	SpaceIDs     []string `json:"space_ids" binding:"required"`
	Date         string   `json:"date" binding:"required"`
	StartTime    string   `json:"start_time" binding:"required"`
	EndTime      string   `json:"end_time" binding:"required"`
	Name         string   `json:"name"`
	Observations string   `json:"observations"`
}
