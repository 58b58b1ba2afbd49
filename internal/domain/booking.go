package domain

// SlotDetails is the payload stored under one half-hour slot key. One logical
// booking is physically N slot records sharing identical details.
type SlotDetails struct {
	Name         string `json:"name"`
	Observations string `json:"observations,omitempty"`
}

// ConsolidatedBooking is a derived, read-only calendar entry. Keys always
// reconstructs exactly the underlying slot records, so deleting or duplicating
// an entry stays transactionally coupled to its slots.
type ConsolidatedBooking struct {
	Date      string      `json:"date"`
	StartTime string      `json:"start_time"`
	EndTime   string      `json:"end_time"`
	Space     string      `json:"space"`
	Details   SlotDetails `json:"details"`
	Keys      []string    `json:"keys"`
}

// Space is a bookable unit of the facility, defined in configuration.
type Space struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SpaceGroup names a fixed set of spaces that, when all booked together for
// the same time range and name, collapse into a single labelled entry.
// Groups are evaluated in configuration order, most inclusive first.
type SpaceGroup struct {
	Label    string   `json:"label"`
	SpaceIDs []string `json:"space_ids"`
}
