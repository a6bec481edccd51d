package models

type RecurrenceType string

const (
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
	RecurrenceCustom  RecurrenceType = "custom"
)

// Recurrence describes when a routine repeats, anchored at the routine's
// creation date.
type Recurrence struct {
	Type            RecurrenceType `json:"type"`
	Interval        int            `json:"interval"`
	ExcludeWeekends bool           `json:"exclude_weekends,omitempty"`
	DaysOfWeek      []int          `json:"days_of_week,omitempty"`  // 0=Sunday .. 6=Saturday
	DaysOfMonth     []int          `json:"days_of_month,omitempty"` // 1-31
}

// TimeWindow is a half-open [Start,End) window within a day, HH:MM format.
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// TargetValue is an optional numeric goal attached to a routine,
// e.g. 2 liters or 10000 steps.
type TargetValue struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Constraints is the single canonical shape for routine scheduling
// constraints. Legacy representations (bare duration numbers, loose
// time-window maps) are normalized into this struct at the storage
// boundary; the engine never sees anything else.
type Constraints struct {
	Window      *TimeWindow  `json:"window,omitempty"`
	Target      *TargetValue `json:"target,omitempty"`
	DurationMin int          `json:"duration_min,omitempty"` // 0 means default
}

// Routine is a recurring activity template. Occurrences are materialized
// from it one calendar date at a time.
type Routine struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Domain      string      `json:"domain,omitempty"` // free-form grouping label
	Active      bool        `json:"active"`
	Priority    Priority    `json:"priority"`
	Flexible    bool        `json:"flexible"`
	Constraints Constraints `json:"constraints"`
	Recurrence  Recurrence  `json:"recurrence"`
	CreatedAt   string      `json:"created_at"`           // YYYY-MM-DD, recurrence anchor
	DeletedAt   *string     `json:"deleted_at,omitempty"` // RFC3339 timestamp
}

// Duration returns the routine's scheduling duration in minutes,
// falling back to the given default when no duration is set.
func (r Routine) Duration(defaultMin int) int {
	if r.Constraints.DurationMin > 0 {
		return r.Constraints.DurationMin
	}
	return defaultMin
}
