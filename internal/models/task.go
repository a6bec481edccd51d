package models

type TaskStatus string

const (
	TaskBacklog    TaskStatus = "backlog"
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskBlocked    TaskStatus = "blocked"
	TaskDone       TaskStatus = "done"
	TaskCancelled  TaskStatus = "cancelled"
	TaskArchived   TaskStatus = "archived"
)

// Terminal reports whether the status removes a task from allocation.
func (s TaskStatus) Terminal() bool {
	switch s {
	case TaskDone, TaskCancelled, TaskArchived:
		return true
	default:
		return false
	}
}

// Task is a one-off work item.
type Task struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Status         TaskStatus `json:"status"`
	Priority       Priority   `json:"priority"`
	EstimatedMin   int        `json:"estimated_min,omitempty"` // 0 means default
	DueDate        string     `json:"due_date,omitempty"`      // YYYY-MM-DD
	ScheduledDate  string     `json:"scheduled_date,omitempty"`
	ScheduledStart string     `json:"scheduled_start,omitempty"` // HH:MM
	ScheduledEnd   string     `json:"scheduled_end,omitempty"`   // HH:MM
	DeletedAt      *string    `json:"deleted_at,omitempty"`      // RFC3339 timestamp
}

// Duration returns the task's scheduling duration in minutes,
// falling back to the given default when no estimate is set.
func (t Task) Duration(defaultMin int) int {
	if t.EstimatedMin > 0 {
		return t.EstimatedMin
	}
	return defaultMin
}

// Open reports whether the task is eligible for allocation.
func (t Task) Open() bool {
	return t.DeletedAt == nil && !t.Status.Terminal()
}
