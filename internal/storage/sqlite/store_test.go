package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/jdmerritt/planweave/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "planweave.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRoutine(id string) models.Routine {
	return models.Routine{
		ID:       id,
		Name:     "Morning stretch",
		Domain:   "health",
		Active:   true,
		Priority: models.PriorityHigh,
		Flexible: true,
		Constraints: models.Constraints{
			Window:      &models.TimeWindow{Start: "07:00", End: "08:00"},
			DurationMin: 20,
		},
		Recurrence: models.Recurrence{
			Type:       models.RecurrenceWeekly,
			Interval:   1,
			DaysOfWeek: []int{1, 3, 5},
		},
		CreatedAt: "2025-03-01",
	}
}

func TestInit_SeedsDefaultSettings(t *testing.T) {
	store := newTestStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.DayStart != "07:00" || settings.DayEnd != "22:00" {
		t.Errorf("default day bounds = %s-%s", settings.DayStart, settings.DayEnd)
	}
	if settings.PlannerMode != models.PlannerBuiltin {
		t.Errorf("default planner mode = %q", settings.PlannerMode)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	store := newTestStore(t)

	in := models.Settings{
		DayStart:          "08:00",
		DayEnd:            "20:00",
		LunchStart:        "12:30",
		LunchDurationMin:  45,
		Timezone:          "America/New_York",
		PlannerMode:       models.PlannerAugmented,
		AugmentURL:        "http://localhost:9999/allocate",
		AugmentTimeoutSec: 5,
	}
	if err := store.SaveSettings(in); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	out, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if out != in {
		t.Errorf("settings round trip mismatch:\n got %+v\nwant %+v", out, in)
	}
}

func TestRoutineRoundTrip(t *testing.T) {
	store := newTestStore(t)

	in := sampleRoutine("r1")
	if err := store.AddRoutine(in); err != nil {
		t.Fatalf("AddRoutine failed: %v", err)
	}

	out, err := store.GetRoutine("r1")
	if err != nil {
		t.Fatalf("GetRoutine failed: %v", err)
	}
	if out.Name != in.Name || out.Domain != in.Domain || out.Priority != in.Priority || !out.Flexible {
		t.Errorf("routine fields changed: %+v", out)
	}
	if out.Constraints.Window == nil || *out.Constraints.Window != *in.Constraints.Window {
		t.Errorf("window changed: %+v", out.Constraints.Window)
	}
	if out.Constraints.DurationMin != 20 {
		t.Errorf("duration = %d, want 20", out.Constraints.DurationMin)
	}
	if len(out.Recurrence.DaysOfWeek) != 3 {
		t.Errorf("days_of_week = %v", out.Recurrence.DaysOfWeek)
	}
}

func TestRoutineSoftDelete(t *testing.T) {
	store := newTestStore(t)

	if err := store.AddRoutine(sampleRoutine("r1")); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteRoutine("r1"); err != nil {
		t.Fatalf("DeleteRoutine failed: %v", err)
	}

	if _, err := store.GetRoutine("r1"); err == nil {
		t.Error("GetRoutine returned a deleted routine")
	}

	visible, err := store.GetAllRoutines(false)
	if err != nil {
		t.Fatal(err)
	}
	if len(visible) != 0 {
		t.Errorf("deleted routine visible in default listing: %d", len(visible))
	}

	all, err := store.GetAllRoutines(true)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[0].DeletedAt == nil {
		t.Errorf("deleted routine missing from includeDeleted listing: %+v", all)
	}

	active, err := store.GetActiveRoutines()
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 0 {
		t.Error("deleted routine still counted as active")
	}

	if err := store.DeleteRoutine("r1"); err == nil {
		t.Error("second delete of the same routine should fail")
	}
}

func TestAddOccurrence_DuplicatePairIgnored(t *testing.T) {
	store := newTestStore(t)
	if err := store.AddRoutine(sampleRoutine("r1")); err != nil {
		t.Fatal(err)
	}

	first := models.Occurrence{ID: "o1", RoutineID: "r1", Date: "2025-03-10", Status: models.OccurrencePending}
	if err := store.AddOccurrence(first); err != nil {
		t.Fatalf("AddOccurrence failed: %v", err)
	}

	// Same (routine, date) under a different ID: the unique index absorbs it.
	dup := models.Occurrence{ID: "o2", RoutineID: "r1", Date: "2025-03-10", Status: models.OccurrencePending}
	if err := store.AddOccurrence(dup); err != nil {
		t.Fatalf("duplicate AddOccurrence should be silently ignored, got: %v", err)
	}

	occurrences, err := store.GetOccurrencesForDate("2025-03-10")
	if err != nil {
		t.Fatal(err)
	}
	if len(occurrences) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(occurrences))
	}
	if occurrences[0].ID != "o1" {
		t.Errorf("surviving occurrence = %s, want o1", occurrences[0].ID)
	}
}

func TestOccurrenceStatusAndTimes(t *testing.T) {
	store := newTestStore(t)
	if err := store.AddRoutine(sampleRoutine("r1")); err != nil {
		t.Fatal(err)
	}
	occ := models.Occurrence{ID: "o1", RoutineID: "r1", Date: "2025-03-10", Status: models.OccurrencePending}
	if err := store.AddOccurrence(occ); err != nil {
		t.Fatal(err)
	}

	if err := store.UpdateOccurrenceStatus("o1", models.OccurrenceCompleted); err != nil {
		t.Fatalf("UpdateOccurrenceStatus failed: %v", err)
	}
	if err := store.UpdateOccurrenceTimes("o1", "07:00", "07:20"); err != nil {
		t.Fatalf("UpdateOccurrenceTimes failed: %v", err)
	}

	got, err := store.GetOccurrence("o1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.OccurrenceCompleted || got.Start != "07:00" || got.End != "07:20" {
		t.Errorf("occurrence = %+v", got)
	}

	if err := store.UpdateOccurrenceStatus("missing", models.OccurrenceSkipped); err == nil {
		t.Error("expected error for unknown occurrence")
	}
}

func TestScanRoutine_NormalizesLegacyConstraints(t *testing.T) {
	store := newTestStore(t)

	// Simulate a row written by an older version: bare duration number and
	// startTime/endTime window keys.
	_, err := store.GetDB().Exec(`
		INSERT INTO routines (id, name, domain, active, priority, flexible, constraints,
			recurrence_type, recurrence_interval, exclude_weekends, days_of_week, days_of_month,
			created_at, deleted_at)
		VALUES ('legacy', 'Old rows', '', 1, 'medium', 1,
			'{"window":{"startTime":"06:30","endTime":"07:15"},"duration":20}',
			'daily', 1, 0, NULL, NULL, '2025-01-01', NULL)`)
	if err != nil {
		t.Fatalf("raw insert failed: %v", err)
	}

	r, err := store.GetRoutine("legacy")
	if err != nil {
		t.Fatalf("GetRoutine failed: %v", err)
	}
	if r.Constraints.Window == nil || r.Constraints.Window.Start != "06:30" || r.Constraints.Window.End != "07:15" {
		t.Errorf("legacy window not normalized: %+v", r.Constraints.Window)
	}
	if r.Constraints.DurationMin != 20 {
		t.Errorf("legacy duration not normalized: %d", r.Constraints.DurationMin)
	}
}

func TestTaskRoundTripAndOpenFilter(t *testing.T) {
	store := newTestStore(t)

	todo := models.Task{ID: "t1", Title: "Report", Status: models.TaskTodo, Priority: models.PriorityHigh, EstimatedMin: 60, DueDate: "2025-03-12"}
	done := models.Task{ID: "t2", Title: "Old", Status: models.TaskDone, Priority: models.PriorityLow}
	for _, task := range []models.Task{todo, done} {
		if err := store.AddTask(task); err != nil {
			t.Fatalf("AddTask failed: %v", err)
		}
	}

	open, err := store.GetOpenTasks()
	if err != nil {
		t.Fatal(err)
	}
	if len(open) != 1 || open[0].ID != "t1" {
		t.Errorf("GetOpenTasks = %+v, want only t1", open)
	}

	if err := store.DeleteTask("t1"); err != nil {
		t.Fatal(err)
	}
	open, err = store.GetOpenTasks()
	if err != nil {
		t.Fatal(err)
	}
	if len(open) != 0 {
		t.Error("soft-deleted task still open")
	}
}

func TestPlanRoundTrip(t *testing.T) {
	store := newTestStore(t)

	plan := models.DayPlan{
		Date: "2025-03-10",
		Slots: []models.PlanSlot{
			{ItemType: models.ItemRoutine, ItemID: "o1", Start: "07:00", End: "07:30", Fixed: true, Reasoning: "fixed routine placed in declared window 07:00-08:00"},
			{ItemType: models.ItemTask, ItemID: "t1", Start: "08:00", End: "09:00", Reasoning: "high priority task in first free slot"},
		},
		Unscheduled: []models.UnscheduledItem{
			{ItemID: "t2", ItemType: models.ItemTask, Reason: "day fully booked"},
		},
		Summary: "Placed 2 of 3 items (1 unscheduled)",
	}
	if err := store.SavePlan(plan); err != nil {
		t.Fatalf("SavePlan failed: %v", err)
	}

	got, err := store.GetPlan("2025-03-10")
	if err != nil {
		t.Fatalf("GetPlan failed: %v", err)
	}
	if len(got.Slots) != 2 || got.Slots[0].ItemID != "o1" || !got.Slots[0].Fixed {
		t.Errorf("slots changed: %+v", got.Slots)
	}
	if len(got.Unscheduled) != 1 || got.Unscheduled[0].Reason != "day fully booked" {
		t.Errorf("unscheduled changed: %+v", got.Unscheduled)
	}
	if got.Summary != plan.Summary {
		t.Errorf("summary = %q", got.Summary)
	}

	// Replanning the same date replaces the stored plan wholesale.
	plan.Slots = plan.Slots[:1]
	plan.Unscheduled = nil
	plan.Summary = "Placed 1 of 1 items (0 unscheduled)"
	if err := store.SavePlan(plan); err != nil {
		t.Fatalf("second SavePlan failed: %v", err)
	}
	got, err = store.GetPlan("2025-03-10")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Slots) != 1 || len(got.Unscheduled) != 0 {
		t.Errorf("replan did not replace stored plan: %+v", got)
	}

	if err := store.DeletePlan("2025-03-10"); err != nil {
		t.Fatalf("DeletePlan failed: %v", err)
	}
	if _, err := store.GetPlan("2025-03-10"); err == nil {
		t.Error("GetPlan returned a deleted plan")
	}
}

func TestLoad_RequiresInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("Load of a nonexistent database should fail")
	}
}
