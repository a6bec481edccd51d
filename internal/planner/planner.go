// Package planner allocates a day's due routine occurrences and open tasks
// into non-overlapping time slots. The built-in Greedy allocator is
// deterministic and always available; an external augmentation service can
// substitute for it behind the same Allocator contract (see the augment
// subpackage).
package planner

import (
	"context"

	"github.com/jdmerritt/planweave/internal/models"
)

// RoutineItem pairs a due occurrence with its definition so the allocator
// can read constraints without a storage round trip.
type RoutineItem struct {
	Occurrence models.Occurrence `json:"occurrence"`
	Routine    models.Routine    `json:"routine"`
}

// Request carries everything the allocator needs for one date.
// DayStart/DayEnd and Busy are minutes from midnight.
type Request struct {
	Date     string        `json:"date"`
	Routines []RoutineItem `json:"routines"`
	Tasks    []models.Task `json:"tasks"`
	Busy     []Interval    `json:"busy,omitempty"`
	DayStart int           `json:"day_start"`
	DayEnd   int           `json:"day_end"`
	Lunch    *Interval     `json:"lunch,omitempty"`
}

// Result is the allocation output: an ordered slot list, the items that
// could not be placed, and a one-line summary.
type Result struct {
	Slots       []models.PlanSlot        `json:"slots"`
	Unscheduled []models.UnscheduledItem `json:"unscheduled"`
	Summary     string                   `json:"summary"`
}

// Allocator is the slot-placement contract. Implementations must honor the
// same output invariants: pairwise-disjoint slots within day bounds, and an
// unscheduled entry for every input item not placed.
type Allocator interface {
	Allocate(ctx context.Context, req Request) (Result, error)
}
