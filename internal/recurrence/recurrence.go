package recurrence

import (
	"fmt"
	"time"

	"github.com/jdmerritt/planweave/internal/models"
)

// Validate rejects malformed recurrence descriptors before any evaluation.
// Descriptors are never silently coerced into something evaluable.
func Validate(r models.Recurrence) error {
	switch r.Type {
	case models.RecurrenceDaily, models.RecurrenceWeekly, models.RecurrenceMonthly, models.RecurrenceCustom:
	default:
		return fmt.Errorf("unknown recurrence type %q", r.Type)
	}

	if r.Interval < 1 {
		return fmt.Errorf("recurrence interval must be at least 1, got %d", r.Interval)
	}

	if r.DaysOfWeek != nil {
		if len(r.DaysOfWeek) == 0 {
			return fmt.Errorf("days_of_week must not be empty when present")
		}
		for _, d := range r.DaysOfWeek {
			if d < 0 || d > 6 {
				return fmt.Errorf("days_of_week value %d out of range 0-6", d)
			}
		}
	}

	if r.DaysOfMonth != nil {
		if len(r.DaysOfMonth) == 0 {
			return fmt.Errorf("days_of_month must not be empty when present")
		}
		for _, d := range r.DaysOfMonth {
			if d < 1 || d > 31 {
				return fmt.Errorf("days_of_month value %d out of range 1-31", d)
			}
		}
	}

	return nil
}

// OccursOn reports whether a routine with the given recurrence, anchored at
// anchor (its creation date), is due on target. Both dates must already be
// normalized to the same local calendar day; no timezone conversion happens
// here.
func OccursOn(r models.Recurrence, anchor, target time.Time) (bool, error) {
	if err := Validate(r); err != nil {
		return false, err
	}

	days := daysBetween(anchor, target)

	switch r.Type {
	case models.RecurrenceDaily, models.RecurrenceCustom:
		// Custom intentionally shares daily semantics; see DESIGN.md.
		if days%r.Interval != 0 {
			return false, nil
		}
		if r.ExcludeWeekends && isWeekend(target) {
			return false, nil
		}
		return true, nil

	case models.RecurrenceWeekly:
		if r.Interval > 1 && floorDiv(days, 7)%r.Interval != 0 {
			return false, nil
		}
		if len(r.DaysOfWeek) > 0 {
			return containsInt(r.DaysOfWeek, int(target.Weekday())), nil
		}
		return target.Weekday() == anchor.Weekday(), nil

	case models.RecurrenceMonthly:
		if r.Interval > 1 {
			months := (target.Year()-anchor.Year())*12 + int(target.Month()) - int(anchor.Month())
			if months%r.Interval != 0 {
				return false, nil
			}
		}
		if len(r.DaysOfMonth) > 0 {
			return containsInt(r.DaysOfMonth, target.Day()), nil
		}
		return target.Day() == anchor.Day(), nil
	}

	return false, nil
}

// daysBetween returns whole calendar days from a to b. Both inputs are
// truncated to midnight first so partial-day timestamps cannot skew the count.
func daysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// floorDiv divides rounding toward negative infinity, so week counts stay
// consistent when the target date precedes the anchor.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
