package domain

// VacationYear maps each vacation date (YYYY-MM-DD) to the worker taking it.
// The map guarantees at most one worker per date; the per-worker yearly cap
// is enforced by the schedule service before any write.
type VacationYear struct {
	Year  string            `json:"year"`
	Dates map[string]string `json:"dates"`
}
