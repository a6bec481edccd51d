package recurrence

import (
	"testing"
	"time"

	"github.com/jdmerritt/planweave/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustOccur(t *testing.T, r models.Recurrence, anchor, target time.Time, want bool) {
	t.Helper()
	got, err := OccursOn(r, anchor, target)
	if err != nil {
		t.Fatalf("OccursOn(%s -> %s) returned error: %v", anchor.Format("2006-01-02"), target.Format("2006-01-02"), err)
	}
	if got != want {
		t.Errorf("OccursOn(%s -> %s) = %v, want %v", anchor.Format("2006-01-02"), target.Format("2006-01-02"), got, want)
	}
}

func TestOccursOn_DailyEveryOtherDay(t *testing.T) {
	r := models.Recurrence{Type: models.RecurrenceDaily, Interval: 2}
	anchor := date(2025, time.March, 1) // Saturday

	mustOccur(t, r, anchor, date(2025, time.March, 1), true)
	mustOccur(t, r, anchor, date(2025, time.March, 2), false)
	mustOccur(t, r, anchor, date(2025, time.March, 3), true)
	mustOccur(t, r, anchor, date(2025, time.March, 5), true)
	mustOccur(t, r, anchor, date(2025, time.March, 6), false)
}

func TestOccursOn_DailyExcludeWeekends(t *testing.T) {
	r := models.Recurrence{Type: models.RecurrenceDaily, Interval: 1, ExcludeWeekends: true}
	anchor := date(2025, time.March, 3) // Monday

	mustOccur(t, r, anchor, date(2025, time.March, 7), true)  // Friday
	mustOccur(t, r, anchor, date(2025, time.March, 8), false) // Saturday
	mustOccur(t, r, anchor, date(2025, time.March, 9), false) // Sunday
	mustOccur(t, r, anchor, date(2025, time.March, 10), true) // Monday
}

func TestOccursOn_WeeklyOnListedDays(t *testing.T) {
	// Monday, Wednesday, Friday regardless of the anchor's own weekday.
	r := models.Recurrence{Type: models.RecurrenceWeekly, Interval: 1, DaysOfWeek: []int{1, 3, 5}}
	anchor := date(2025, time.March, 4) // Tuesday

	mustOccur(t, r, anchor, date(2025, time.March, 10), true)  // Monday
	mustOccur(t, r, anchor, date(2025, time.March, 11), false) // Tuesday
	mustOccur(t, r, anchor, date(2025, time.March, 12), true)  // Wednesday
	mustOccur(t, r, anchor, date(2025, time.March, 14), true)  // Friday
	mustOccur(t, r, anchor, date(2025, time.March, 15), false) // Saturday
}

func TestOccursOn_WeeklyDefaultsToAnchorWeekday(t *testing.T) {
	r := models.Recurrence{Type: models.RecurrenceWeekly, Interval: 1}
	anchor := date(2025, time.March, 4) // Tuesday

	mustOccur(t, r, anchor, date(2025, time.March, 11), true)
	mustOccur(t, r, anchor, date(2025, time.March, 12), false)
	mustOccur(t, r, anchor, date(2025, time.March, 18), true)
}

func TestOccursOn_BiweeklySkipsOffWeeks(t *testing.T) {
	r := models.Recurrence{Type: models.RecurrenceWeekly, Interval: 2, DaysOfWeek: []int{2}}
	anchor := date(2025, time.March, 4) // Tuesday

	mustOccur(t, r, anchor, date(2025, time.March, 4), true)
	mustOccur(t, r, anchor, date(2025, time.March, 11), false) // off week
	mustOccur(t, r, anchor, date(2025, time.March, 18), true)
	mustOccur(t, r, anchor, date(2025, time.March, 25), false)
}

func TestOccursOn_MonthlyOnListedDays(t *testing.T) {
	r := models.Recurrence{Type: models.RecurrenceMonthly, Interval: 1, DaysOfMonth: []int{1, 15}}
	anchor := date(2025, time.January, 10)

	mustOccur(t, r, anchor, date(2025, time.February, 1), true)
	mustOccur(t, r, anchor, date(2025, time.February, 15), true)
	mustOccur(t, r, anchor, date(2025, time.February, 10), false)
}

func TestOccursOn_MonthlyDefaultsToAnchorDay(t *testing.T) {
	r := models.Recurrence{Type: models.RecurrenceMonthly, Interval: 1}
	anchor := date(2025, time.January, 10)

	mustOccur(t, r, anchor, date(2025, time.February, 10), true)
	mustOccur(t, r, anchor, date(2025, time.February, 11), false)
	mustOccur(t, r, anchor, date(2025, time.June, 10), true)
}

func TestOccursOn_QuarterlyInterval(t *testing.T) {
	r := models.Recurrence{Type: models.RecurrenceMonthly, Interval: 3}
	anchor := date(2025, time.January, 15)

	mustOccur(t, r, anchor, date(2025, time.April, 15), true)
	mustOccur(t, r, anchor, date(2025, time.May, 15), false)
	mustOccur(t, r, anchor, date(2025, time.July, 15), true)
}

func TestOccursOn_CustomSharesDailySemantics(t *testing.T) {
	daily := models.Recurrence{Type: models.RecurrenceDaily, Interval: 3}
	custom := models.Recurrence{Type: models.RecurrenceCustom, Interval: 3}
	anchor := date(2025, time.March, 1)

	for d := 0; d < 10; d++ {
		target := anchor.AddDate(0, 0, d)
		wantDaily, err := OccursOn(daily, anchor, target)
		if err != nil {
			t.Fatal(err)
		}
		gotCustom, err := OccursOn(custom, anchor, target)
		if err != nil {
			t.Fatal(err)
		}
		if wantDaily != gotCustom {
			t.Errorf("custom diverged from daily on %s: daily=%v custom=%v",
				target.Format("2006-01-02"), wantDaily, gotCustom)
		}
	}
}

func TestOccursOn_AnchorDateAlwaysMatchesDaily(t *testing.T) {
	for _, interval := range []int{1, 2, 7, 30} {
		r := models.Recurrence{Type: models.RecurrenceDaily, Interval: interval}
		anchor := date(2025, time.March, 3) // Monday, avoids weekend interference
		mustOccur(t, r, anchor, anchor, true)
	}
}

func TestValidate_RejectsMalformedDescriptors(t *testing.T) {
	cases := []struct {
		name string
		rec  models.Recurrence
	}{
		{"unknown type", models.Recurrence{Type: "yearly", Interval: 1}},
		{"zero interval", models.Recurrence{Type: models.RecurrenceDaily, Interval: 0}},
		{"negative interval", models.Recurrence{Type: models.RecurrenceWeekly, Interval: -1}},
		{"empty days_of_week", models.Recurrence{Type: models.RecurrenceWeekly, Interval: 1, DaysOfWeek: []int{}}},
		{"weekday out of range", models.Recurrence{Type: models.RecurrenceWeekly, Interval: 1, DaysOfWeek: []int{7}}},
		{"empty days_of_month", models.Recurrence{Type: models.RecurrenceMonthly, Interval: 1, DaysOfMonth: []int{}}},
		{"month day out of range", models.Recurrence{Type: models.RecurrenceMonthly, Interval: 1, DaysOfMonth: []int{0}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := Validate(tc.rec); err == nil {
				t.Errorf("Validate accepted malformed descriptor %+v", tc.rec)
			}
			if _, err := OccursOn(tc.rec, date(2025, time.March, 1), date(2025, time.March, 2)); err == nil {
				t.Errorf("OccursOn evaluated malformed descriptor %+v", tc.rec)
			}
		})
	}
}

func TestOccursOn_TargetBeforeAnchor(t *testing.T) {
	r := models.Recurrence{Type: models.RecurrenceWeekly, Interval: 2, DaysOfWeek: []int{2}}
	anchor := date(2025, time.March, 4) // Tuesday

	// Two weeks before the anchor is still an on-week.
	mustOccur(t, r, anchor, date(2025, time.February, 18), true)
	mustOccur(t, r, anchor, date(2025, time.February, 25), false)
}
