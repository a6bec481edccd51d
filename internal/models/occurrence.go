package models

type OccurrenceStatus string

const (
	OccurrencePending   OccurrenceStatus = "pending"
	OccurrenceCompleted OccurrenceStatus = "completed"
	OccurrenceSkipped   OccurrenceStatus = "skipped"
)

// Occurrence is one calendar date's materialization of a Routine.
// At most one occurrence exists per (RoutineID, Date) pair; the generator
// enforces this and the storage layer backstops it with a unique index.
type Occurrence struct {
	ID        string           `json:"id"`
	RoutineID string           `json:"routine_id"`
	Date      string           `json:"date"` // YYYY-MM-DD
	Status    OccurrenceStatus `json:"status"`
	Start     string           `json:"start,omitempty"` // HH:MM, set once placed
	End       string           `json:"end,omitempty"`   // HH:MM
}
