package generator

import (
	"errors"
	"testing"

	"github.com/jdmerritt/planweave/internal/models"
)

type fakeStore struct {
	routines    []models.Routine
	occurrences []models.Occurrence

	routinesErr error
	addErr      error
	addCalls    int
}

func (f *fakeStore) GetActiveRoutines() ([]models.Routine, error) {
	return f.routines, f.routinesErr
}

func (f *fakeStore) GetOccurrencesForDate(date string) ([]models.Occurrence, error) {
	var out []models.Occurrence
	for _, o := range f.occurrences {
		if o.Date == date {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeStore) AddOccurrence(o models.Occurrence) error {
	f.addCalls++
	if f.addErr != nil {
		return f.addErr
	}
	f.occurrences = append(f.occurrences, o)
	return nil
}

func dailyRoutine(id, name string) models.Routine {
	return models.Routine{
		ID:        id,
		Name:      name,
		Active:    true,
		Priority:  models.PriorityMedium,
		CreatedAt: "2025-03-01",
		Recurrence: models.Recurrence{
			Type:     models.RecurrenceDaily,
			Interval: 1,
		},
	}
}

func TestDiff_EmitsPendingOccurrencesForDueRoutines(t *testing.T) {
	routines := []models.Routine{dailyRoutine("r1", "Stretch"), dailyRoutine("r2", "Journal")}

	created, err := Diff(routines, "2025-03-10", nil)
	if err != nil {
		t.Fatalf("Diff returned error: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 occurrences, got %d", len(created))
	}
	for _, occ := range created {
		if occ.Status != models.OccurrencePending {
			t.Errorf("occurrence for %s has status %q, want pending", occ.RoutineID, occ.Status)
		}
		if occ.Date != "2025-03-10" {
			t.Errorf("occurrence for %s has date %q", occ.RoutineID, occ.Date)
		}
		if occ.ID == "" {
			t.Error("occurrence missing ID")
		}
	}
}

func TestDiff_SkipsInactiveAndDeletedRoutines(t *testing.T) {
	inactive := dailyRoutine("r1", "Paused")
	inactive.Active = false

	deletedAt := "2025-03-05T10:00:00Z"
	deleted := dailyRoutine("r2", "Gone")
	deleted.DeletedAt = &deletedAt

	created, err := Diff([]models.Routine{inactive, deleted}, "2025-03-10", nil)
	if err != nil {
		t.Fatalf("Diff returned error: %v", err)
	}
	if len(created) != 0 {
		t.Errorf("expected no occurrences, got %d", len(created))
	}
}

func TestDiff_SubtractsExistingOccurrences(t *testing.T) {
	routines := []models.Routine{dailyRoutine("r1", "Stretch"), dailyRoutine("r2", "Journal")}
	existing := []models.Occurrence{
		{ID: "o1", RoutineID: "r1", Date: "2025-03-10", Status: models.OccurrenceCompleted},
	}

	created, err := Diff(routines, "2025-03-10", existing)
	if err != nil {
		t.Fatalf("Diff returned error: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(created))
	}
	if created[0].RoutineID != "r2" {
		t.Errorf("expected occurrence for r2, got %s", created[0].RoutineID)
	}
}

func TestDiff_InvalidDescriptorIsError(t *testing.T) {
	bad := dailyRoutine("r1", "Broken")
	bad.Recurrence.Interval = 0

	if _, err := Diff([]models.Routine{bad}, "2025-03-10", nil); err == nil {
		t.Error("expected error for invalid recurrence descriptor")
	}
}

func TestDiff_InvalidDateIsError(t *testing.T) {
	if _, err := Diff([]models.Routine{dailyRoutine("r1", "X")}, "03/10/2025", nil); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestGenerateForDate_IsIdempotent(t *testing.T) {
	store := &fakeStore{routines: []models.Routine{dailyRoutine("r1", "Stretch")}}
	gen := New(store, t.TempDir())

	first, err := gen.GenerateForDate("2025-03-10")
	if err != nil {
		t.Fatalf("first generation failed: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected 1 occurrence on first run, got %d", len(first))
	}

	second, err := gen.GenerateForDate("2025-03-10")
	if err != nil {
		t.Fatalf("second generation failed: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("expected 0 occurrences on rerun, got %d", len(second))
	}
	if len(store.occurrences) != 1 {
		t.Errorf("store holds %d occurrences, want 1", len(store.occurrences))
	}
}

func TestGenerateForDate_IndependentDates(t *testing.T) {
	store := &fakeStore{routines: []models.Routine{dailyRoutine("r1", "Stretch")}}
	gen := New(store, t.TempDir())

	for _, date := range []string{"2025-03-10", "2025-03-11"} {
		created, err := gen.GenerateForDate(date)
		if err != nil {
			t.Fatalf("generation for %s failed: %v", date, err)
		}
		if len(created) != 1 {
			t.Errorf("expected 1 occurrence for %s, got %d", date, len(created))
		}
	}
}

func TestGenerateForDate_PersistenceFailurePropagates(t *testing.T) {
	wantErr := errors.New("disk full")
	store := &fakeStore{
		routines: []models.Routine{dailyRoutine("r1", "Stretch"), dailyRoutine("r2", "Journal")},
		addErr:   wantErr,
	}
	gen := New(store, t.TempDir())

	_, err := gen.GenerateForDate("2025-03-10")
	if err == nil {
		t.Fatal("expected persistence error to propagate")
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("error %v does not wrap the storage failure", err)
	}
	if store.addCalls != 1 {
		t.Errorf("expected generation to stop after first failed insert, got %d calls", store.addCalls)
	}
}

func TestGenerateForDate_LoadFailurePropagates(t *testing.T) {
	store := &fakeStore{routinesErr: errors.New("connection refused")}
	gen := New(store, t.TempDir())

	if _, err := gen.GenerateForDate("2025-03-10"); err == nil {
		t.Error("expected load failure to propagate")
	}
}
