package domain

// Collection discriminators route a task-completion toggle to the document
// that owns the task.
const (
	CollectionShifts = "shiftAssignments"
	CollectionEvents = "specialEvents"
)

// Task origins as seen in the combined week list.
const (
	TaskSourceShift = "shift"
	TaskSourceEvent = "event"
)

// Symbolic assignee tokens. They resolve to the effective morning/evening
// worker of the displayed week; any other token is a literal worker name.
const (
	AssigneeMorning = "MORNING"
	AssigneeEvening = "EVENING"
)

type Task struct {
	ID           string   `json:"id"`
	Text         string   `json:"text"`
	AssignedTo   []string `json:"assigned_to,omitempty"`
	Completed    bool     `json:"completed"`
	RecurrenceID string   `json:"recurrence_id,omitempty"`
}

// CombinedTask tags a task with the collection it came from so the UI can
// route completion toggles back to the right parent document.
type CombinedTask struct {
	Task
	Source    string `json:"source"`
	ParentID  string `json:"parent_id"`
	EventName string `json:"event_name,omitempty"`
}
