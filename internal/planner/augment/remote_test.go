package augment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jdmerritt/planweave/internal/models"
	"github.com/jdmerritt/planweave/internal/planner"
)

func testRequest() planner.Request {
	return planner.Request{
		Date:     "2025-03-10",
		DayStart: 7 * 60,
		DayEnd:   22 * 60,
		Routines: []planner.RoutineItem{
			{
				Occurrence: models.Occurrence{ID: "occ-1", RoutineID: "r1", Date: "2025-03-10"},
				Routine: models.Routine{
					ID: "r1", Name: "Stretch", Flexible: true, Priority: models.PriorityMedium,
					Constraints: models.Constraints{DurationMin: 30},
				},
			},
		},
		Tasks: []models.Task{
			{ID: "t1", Title: "Report", Status: models.TaskTodo, Priority: models.PriorityHigh, EstimatedMin: 60},
		},
	}
}

func serveResult(t *testing.T, res planner.Result) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var req planner.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("server could not decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(res)
	}))
}

func TestRemote_UsesValidResponse(t *testing.T) {
	want := planner.Result{
		Slots: []models.PlanSlot{
			{ItemType: models.ItemRoutine, ItemID: "occ-1", Start: "08:00", End: "08:30", Reasoning: "service placed"},
			{ItemType: models.ItemTask, ItemID: "t1", Start: "09:00", End: "10:00", Reasoning: "service placed"},
		},
		Unscheduled: []models.UnscheduledItem{},
		Summary:     "Placed 2 of 2 items (0 unscheduled)",
	}
	srv := serveResult(t, want)
	defer srv.Close()

	remote := New(srv.URL, 2*time.Second, planner.NewGreedy())
	got, err := remote.Allocate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Allocate returned error: %v", err)
	}
	if len(got.Slots) != 2 || got.Slots[0].ItemID != "occ-1" || got.Slots[1].ItemID != "t1" {
		t.Errorf("remote result not used: %+v", got.Slots)
	}
	if got.Slots[0].Reasoning != "service placed" {
		t.Errorf("reasoning lost: %q", got.Slots[0].Reasoning)
	}
}

func TestRemote_FallsBackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	remote := New(srv.URL, 2*time.Second, planner.NewGreedy())
	res, err := remote.Allocate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("fallback should absorb the server error, got: %v", err)
	}
	if len(res.Slots) != 2 {
		t.Errorf("fallback allocator placed %d slots, want 2", len(res.Slots))
	}
}

func TestRemote_FallsBackOnMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"slots": "not a list"`))
	}))
	defer srv.Close()

	remote := New(srv.URL, 2*time.Second, planner.NewGreedy())
	res, err := remote.Allocate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("fallback should absorb the decode error, got: %v", err)
	}
	if len(res.Slots) == 0 {
		t.Error("fallback allocator produced no slots")
	}
}

func TestRemote_FallsBackOnUnknownFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"slots": [], "unscheduled": [], "summary": "", "extra": true}`))
	}))
	defer srv.Close()

	remote := New(srv.URL, 2*time.Second, planner.NewGreedy())
	res, err := remote.Allocate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("fallback should absorb the strict-decode error, got: %v", err)
	}
	if len(res.Slots) != 2 {
		t.Errorf("fallback allocator placed %d slots, want 2", len(res.Slots))
	}
}

func TestRemote_FallsBackOnTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	remote := New(srv.URL, 20*time.Millisecond, planner.NewGreedy())
	res, err := remote.Allocate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("fallback should absorb the timeout, got: %v", err)
	}
	if len(res.Slots) != 2 {
		t.Errorf("fallback allocator placed %d slots, want 2", len(res.Slots))
	}
}

func TestRemote_FallsBackOnUnreachableService(t *testing.T) {
	remote := New("http://127.0.0.1:1", 200*time.Millisecond, planner.NewGreedy())
	res, err := remote.Allocate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("fallback should absorb the connection error, got: %v", err)
	}
	if len(res.Slots) != 2 {
		t.Errorf("fallback allocator placed %d slots, want 2", len(res.Slots))
	}
}

func TestRemote_RejectsContractViolations(t *testing.T) {
	cases := []struct {
		name string
		res  planner.Result
	}{
		{
			"unknown item",
			planner.Result{Slots: []models.PlanSlot{
				{ItemType: models.ItemTask, ItemID: "ghost", Start: "08:00", End: "09:00"},
			}},
		},
		{
			"wrong item type",
			planner.Result{Slots: []models.PlanSlot{
				{ItemType: models.ItemTask, ItemID: "occ-1", Start: "08:00", End: "08:30"},
			}},
		},
		{
			"double placement",
			planner.Result{Slots: []models.PlanSlot{
				{ItemType: models.ItemTask, ItemID: "t1", Start: "08:00", End: "09:00"},
				{ItemType: models.ItemTask, ItemID: "t1", Start: "10:00", End: "11:00"},
			}},
		},
		{
			"unparseable time",
			planner.Result{Slots: []models.PlanSlot{
				{ItemType: models.ItemTask, ItemID: "t1", Start: "8am", End: "9am"},
			}},
		},
		{
			"outside day bounds",
			planner.Result{Slots: []models.PlanSlot{
				{ItemType: models.ItemTask, ItemID: "t1", Start: "06:00", End: "07:00"},
			}},
		},
		{
			"overlapping slots",
			planner.Result{Slots: []models.PlanSlot{
				{ItemType: models.ItemTask, ItemID: "t1", Start: "08:00", End: "09:00"},
				{ItemType: models.ItemRoutine, ItemID: "occ-1", Start: "08:30", End: "09:00"},
			}},
		},
		{
			"unscheduled without reason",
			planner.Result{Unscheduled: []models.UnscheduledItem{
				{ItemID: "t1", ItemType: models.ItemTask, Reason: ""},
			}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := serveResult(t, tc.res)
			defer srv.Close()

			remote := New(srv.URL, 2*time.Second, planner.NewGreedy())
			res, err := remote.Allocate(context.Background(), testRequest())
			if err != nil {
				t.Fatalf("fallback should absorb the contract violation, got: %v", err)
			}
			// The fallback result is a full greedy allocation, not the
			// rejected remote payload.
			if len(res.Slots) != 2 {
				t.Errorf("fallback allocator placed %d slots, want 2", len(res.Slots))
			}
		})
	}
}

func TestRemote_RejectsDroppedItems(t *testing.T) {
	cases := []struct {
		name string
		res  planner.Result
	}{
		{
			"empty result for non-empty request",
			planner.Result{
				Slots:       []models.PlanSlot{},
				Unscheduled: []models.UnscheduledItem{},
				Summary:     "Placed 0 of 0 items (0 unscheduled)",
			},
		},
		{
			"task placed but routine dropped",
			planner.Result{
				Slots: []models.PlanSlot{
					{ItemType: models.ItemTask, ItemID: "t1", Start: "08:00", End: "09:00"},
				},
				Unscheduled: []models.UnscheduledItem{},
				Summary:     "Placed 1 of 1 items (0 unscheduled)",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := serveResult(t, tc.res)
			defer srv.Close()

			remote := New(srv.URL, 2*time.Second, planner.NewGreedy())
			res, err := remote.Allocate(context.Background(), testRequest())
			if err != nil {
				t.Fatalf("fallback should absorb the contract violation, got: %v", err)
			}
			// Every request item must come back placed or unscheduled; a
			// response that drops items is replaced by a full greedy run.
			if len(res.Slots)+len(res.Unscheduled) != 2 {
				t.Errorf("result covers %d of 2 items: %+v", len(res.Slots)+len(res.Unscheduled), res)
			}
			if len(res.Slots) != 2 {
				t.Errorf("fallback allocator placed %d slots, want 2", len(res.Slots))
			}
		})
	}
}

func TestRemote_RejectsSlotOverlappingBusy(t *testing.T) {
	req := testRequest()
	req.Busy = []planner.Interval{{Start: 8 * 60, End: 9 * 60}}

	srv := serveResult(t, planner.Result{Slots: []models.PlanSlot{
		{ItemType: models.ItemTask, ItemID: "t1", Start: "08:30", End: "09:30"},
	}})
	defer srv.Close()

	remote := New(srv.URL, 2*time.Second, planner.NewGreedy())
	res, err := remote.Allocate(context.Background(), req)
	if err != nil {
		t.Fatalf("fallback should absorb the contract violation, got: %v", err)
	}
	for _, s := range res.Slots {
		if s.Start == "08:30" && s.ItemID == "t1" {
			t.Error("remote slot overlapping busy interval was accepted")
		}
	}
}
