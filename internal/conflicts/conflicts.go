// Package conflicts finds overlapping placements after manual rescheduling.
// It runs over whatever timed events the caller hands it, independent of
// how those events were originally allocated.
package conflicts

import (
	"sort"
)

// Event is a timed calendar entry. Start/End are minutes from midnight.
// All-day events carry no meaningful times and are excluded from detection.
type Event struct {
	ID     string
	Title  string
	Date   string // YYYY-MM-DD
	Start  int
	End    int
	AllDay bool
}

// Conflict reports one overlapping pair and the size of the overlap.
type Conflict struct {
	EventA         string `json:"event_a"`
	EventB         string `json:"event_b"`
	OverlapMinutes int    `json:"overlap_minutes"`
	Date           string `json:"date"`
}

// Detect returns every overlapping pair among the timed events, each
// unordered pair at most once. The result is independent of input order.
func Detect(events []Event) []Conflict {
	timed := make([]Event, 0, len(events))
	for _, e := range events {
		if e.AllDay || e.Start >= e.End {
			continue
		}
		timed = append(timed, e)
	}

	// Deterministic order: by start, then ID so equal starts cannot flip
	// pair orientation between runs.
	sort.Slice(timed, func(i, j int) bool {
		if timed[i].Start != timed[j].Start {
			return timed[i].Start < timed[j].Start
		}
		return timed[i].ID < timed[j].ID
	})

	var out []Conflict
	for i := 0; i < len(timed); i++ {
		// Once a later event starts at or after this one ends, nothing
		// further in the sorted order can overlap it.
		for j := i + 1; j < len(timed) && timed[j].Start < timed[i].End; j++ {
			overlap := min(timed[i].End, timed[j].End) - max(timed[i].Start, timed[j].Start)
			if overlap <= 0 {
				continue
			}
			out = append(out, Conflict{
				EventA:         timed[i].ID,
				EventB:         timed[j].ID,
				OverlapMinutes: overlap,
				Date:           timed[i].Date,
			})
		}
	}
	return out
}
