package plans

import (
	"testing"

	"github.com/jdmerritt/planweave/internal/models"
)

func TestMergeSlots_CountsPinnedInSummary(t *testing.T) {
	allocated := []models.PlanSlot{
		{ItemType: models.ItemRoutine, ItemID: "occ-1", Start: "08:00", End: "08:30"},
		{ItemType: models.ItemTask, ItemID: "t1", Start: "10:00", End: "11:00"},
	}
	pinned := []models.PlanSlot{
		{ItemType: models.ItemTask, ItemID: "t2", Start: "09:00", End: "09:30", Fixed: true, Reasoning: "manually placed"},
	}

	merged := mergeSlots(allocated, pinned)
	if len(merged) != 3 {
		t.Fatalf("merged %d slots, want 3", len(merged))
	}
	for i := 1; i < len(merged); i++ {
		if merged[i-1].Start > merged[i].Start {
			t.Errorf("merged slots out of order: %s after %s", merged[i].Start, merged[i-1].Start)
		}
	}

	got := planSummary(len(merged), 1)
	want := "Placed 3 of 4 items (1 unscheduled)"
	if got != want {
		t.Errorf("summary = %q, want %q", got, want)
	}
}

func TestPinnedInterval(t *testing.T) {
	iv, ok := pinnedInterval("09:00", "09:45")
	if !ok || iv.Start != 540 || iv.End != 585 {
		t.Errorf("pinnedInterval = %+v (ok=%v)", iv, ok)
	}

	cases := [][2]string{
		{"", ""},
		{"09:00", ""},
		{"", "09:45"},
		{"9am", "10am"},
		{"10:00", "09:00"},
		{"09:00", "09:00"},
	}
	for _, tc := range cases {
		if _, ok := pinnedInterval(tc[0], tc[1]); ok {
			t.Errorf("pinnedInterval(%q, %q) accepted invalid placement", tc[0], tc[1])
		}
	}
}
