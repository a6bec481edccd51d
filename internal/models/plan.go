package models

type ItemType string

const (
	ItemRoutine ItemType = "routine"
	ItemTask    ItemType = "task"
)

// PlanSlot is one placed item in a day plan. Times are HH:MM.
type PlanSlot struct {
	ItemType  ItemType `json:"item_type"`
	ItemID    string   `json:"item_id"`
	Start     string   `json:"start"`
	End       string   `json:"end"`
	Fixed     bool     `json:"fixed"`
	Reasoning string   `json:"reasoning,omitempty"`
}

// UnscheduledItem records an item the allocator could not place and why.
// Unplaceable items are data, not errors; the pipeline continues past them.
type UnscheduledItem struct {
	ItemID   string   `json:"item_id"`
	ItemType ItemType `json:"item_type"`
	Reason   string   `json:"reason"`
}

// DayPlan is the full allocation output for one date.
type DayPlan struct {
	Date        string            `json:"date"` // YYYY-MM-DD
	Slots       []PlanSlot        `json:"slots"`
	Unscheduled []UnscheduledItem `json:"unscheduled,omitempty"`
	Summary     string            `json:"summary,omitempty"`
	CreatedAt   string            `json:"created_at,omitempty"` // RFC3339 timestamp
	DeletedAt   *string           `json:"deleted_at,omitempty"`
}
