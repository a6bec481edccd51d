package conflicts

import (
	"testing"
)

func TestDetect_ReportsOverlapMinutes(t *testing.T) {
	events := []Event{
		{ID: "a", Title: "Standup", Date: "2025-03-10", Start: 9 * 60, End: 9*60 + 30},
		{ID: "b", Title: "Review", Date: "2025-03-10", Start: 9*60 + 15, End: 10 * 60},
	}

	found := Detect(events)
	if len(found) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(found))
	}
	c := found[0]
	if c.EventA != "a" || c.EventB != "b" {
		t.Errorf("conflict pair = (%s, %s), want (a, b)", c.EventA, c.EventB)
	}
	if c.OverlapMinutes != 15 {
		t.Errorf("overlap = %d minutes, want 15", c.OverlapMinutes)
	}
	if c.Date != "2025-03-10" {
		t.Errorf("conflict date = %q", c.Date)
	}
}

func TestDetect_NoConflictForAdjacentEvents(t *testing.T) {
	// Half-open intervals: one ending exactly when the next starts is fine.
	events := []Event{
		{ID: "a", Start: 9 * 60, End: 10 * 60},
		{ID: "b", Start: 10 * 60, End: 11 * 60},
	}

	if found := Detect(events); len(found) != 0 {
		t.Errorf("expected no conflicts for adjacent events, got %d", len(found))
	}
}

func TestDetect_IndependentOfInputOrder(t *testing.T) {
	forward := []Event{
		{ID: "a", Start: 9 * 60, End: 10 * 60},
		{ID: "b", Start: 9*60 + 30, End: 10*60 + 30},
		{ID: "c", Start: 14 * 60, End: 15 * 60},
	}
	reversed := []Event{forward[2], forward[1], forward[0]}

	f1, f2 := Detect(forward), Detect(reversed)
	if len(f1) != 1 || len(f2) != 1 {
		t.Fatalf("expected exactly 1 conflict each, got %d and %d", len(f1), len(f2))
	}
	if f1[0] != f2[0] {
		t.Errorf("conflict differs by input order: %+v vs %+v", f1[0], f2[0])
	}
}

func TestDetect_EachPairReportedOnce(t *testing.T) {
	// Three mutually overlapping events produce exactly three pairs.
	events := []Event{
		{ID: "a", Start: 9 * 60, End: 11 * 60},
		{ID: "b", Start: 9*60 + 30, End: 10*60 + 30},
		{ID: "c", Start: 10 * 60, End: 12 * 60},
	}

	found := Detect(events)
	if len(found) != 3 {
		t.Fatalf("expected 3 conflicts, got %d", len(found))
	}

	seen := make(map[[2]string]bool)
	for _, c := range found {
		key := [2]string{c.EventA, c.EventB}
		if seen[key] {
			t.Errorf("pair %v reported twice", key)
		}
		seen[key] = true
	}
}

func TestDetect_ExcludesAllDayAndInvalidEvents(t *testing.T) {
	events := []Event{
		{ID: "allday", Start: 0, End: 24 * 60, AllDay: true},
		{ID: "empty", Start: 10 * 60, End: 10 * 60},
		{ID: "inverted", Start: 11 * 60, End: 10 * 60},
		{ID: "real", Start: 9 * 60, End: 17 * 60},
	}

	if found := Detect(events); len(found) != 0 {
		t.Errorf("expected no conflicts, got %+v", found)
	}
}

func TestDetect_EmptyInput(t *testing.T) {
	if found := Detect(nil); len(found) != 0 {
		t.Errorf("expected no conflicts for empty input, got %d", len(found))
	}
}
