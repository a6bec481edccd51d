package planner

import (
	"context"
	"fmt"
	"sort"

	"github.com/jdmerritt/planweave/internal/constants"
	"github.com/jdmerritt/planweave/internal/models"
	"github.com/jdmerritt/planweave/internal/utils"
)

// Greedy is the built-in deterministic allocator. Placement is first-fit in
// fixed 15-minute steps; ties between equal-priority items keep input order.
type Greedy struct{}

func NewGreedy() *Greedy {
	return &Greedy{}
}

func (g *Greedy) Allocate(_ context.Context, req Request) (Result, error) {
	res := Result{
		Slots:       []models.PlanSlot{},
		Unscheduled: []models.UnscheduledItem{},
	}

	day := Interval{Start: req.DayStart, End: req.DayEnd}
	if !day.Valid() {
		return res, fmt.Errorf("invalid day bounds %s-%s",
			utils.FormatMinutes(req.DayStart), utils.FormatMinutes(req.DayEnd))
	}

	occupied := &intervalSet{}
	for _, b := range req.Busy {
		occupied.add(b)
	}
	if req.Lunch != nil && req.Lunch.Valid() {
		occupied.add(*req.Lunch)
	}

	// Non-flexible routines claim their declared windows first.
	var fixed, flexible []RoutineItem
	for _, item := range req.Routines {
		if item.Routine.Flexible {
			flexible = append(flexible, item)
		} else {
			fixed = append(fixed, item)
		}
	}
	sortRoutinesByPriority(fixed)
	sortRoutinesByPriority(flexible)

	for _, item := range fixed {
		g.placeRoutine(&res, occupied, day, item, false)
	}
	for _, item := range flexible {
		g.placeRoutine(&res, occupied, day, item, true)
	}

	for _, task := range sortTasks(req.Tasks) {
		g.placeTask(&res, occupied, day, task)
	}

	// Present the plan in chronological order. Placement order above is the
	// reproducibility contract; output order is purely presentational.
	sort.SliceStable(res.Slots, func(i, j int) bool {
		return res.Slots[i].Start < res.Slots[j].Start
	})

	placed := len(res.Slots)
	total := placed + len(res.Unscheduled)
	res.Summary = fmt.Sprintf("Placed %d of %d items (%d unscheduled)", placed, total, len(res.Unscheduled))

	return res, nil
}

func (g *Greedy) placeRoutine(res *Result, occupied *intervalSet, day Interval, item RoutineItem, flexible bool) {
	dur := item.Routine.Duration(constants.DefaultDurationMin)

	window := day
	hasWindow := false
	if w := item.Routine.Constraints.Window; w != nil {
		parsed, err := parseWindow(*w)
		if err != nil {
			res.Unscheduled = append(res.Unscheduled, models.UnscheduledItem{
				ItemID:   item.Occurrence.ID,
				ItemType: models.ItemRoutine,
				Reason:   fmt.Sprintf("invalid time window: %v", err),
			})
			return
		}
		window = intersect(parsed, day)
		hasWindow = true
	}

	slot, ok := findSlot(window, dur, occupied)
	usedFallback := false
	if !ok && flexible && hasWindow && window != day {
		// A flexible routine may leave its preferred window; a fixed one
		// must stay inside its declared window or go unscheduled.
		slot, ok = findSlot(day, dur, occupied)
		usedFallback = true
	}

	if !ok {
		reason := constants.ReasonDayFullyBooked
		if hasWindow && !usedFallback && !flexible {
			reason = constants.ReasonNoSlotInWindow
		}
		res.Unscheduled = append(res.Unscheduled, models.UnscheduledItem{
			ItemID:   item.Occurrence.ID,
			ItemType: models.ItemRoutine,
			Reason:   reason,
		})
		return
	}

	occupied.add(slot)
	res.Slots = append(res.Slots, models.PlanSlot{
		ItemType:  models.ItemRoutine,
		ItemID:    item.Occurrence.ID,
		Start:     utils.FormatMinutes(slot.Start),
		End:       utils.FormatMinutes(slot.End),
		Fixed:     !item.Routine.Flexible,
		Reasoning: routineReasoning(item, hasWindow, usedFallback),
	})
}

func (g *Greedy) placeTask(res *Result, occupied *intervalSet, day Interval, task models.Task) {
	dur := task.Duration(constants.DefaultDurationMin)

	// Tasks carry no preferred window; the whole day is their search space.
	slot, ok := findSlot(day, dur, occupied)
	if !ok {
		res.Unscheduled = append(res.Unscheduled, models.UnscheduledItem{
			ItemID:   task.ID,
			ItemType: models.ItemTask,
			Reason:   constants.ReasonDayFullyBooked,
		})
		return
	}

	reason := fmt.Sprintf("%s priority task in first free slot", task.Priority)
	if task.DueDate != "" {
		reason = fmt.Sprintf("%s priority task due %s in first free slot", task.Priority, task.DueDate)
	}

	occupied.add(slot)
	res.Slots = append(res.Slots, models.PlanSlot{
		ItemType:  models.ItemTask,
		ItemID:    task.ID,
		Start:     utils.FormatMinutes(slot.Start),
		End:       utils.FormatMinutes(slot.End),
		Reasoning: reason,
	})
}

// findSlot scans candidate starts from the window start in fixed 15-minute
// steps and returns the first interval that clears the occupied set.
func findSlot(window Interval, dur int, occupied *intervalSet) (Interval, bool) {
	for off := window.Start; off+dur <= window.End; off += constants.SlotStepMin {
		iv := Interval{Start: off, End: off + dur}
		if !occupied.conflicts(iv) {
			return iv, true
		}
	}
	return Interval{}, false
}

func parseWindow(w models.TimeWindow) (Interval, error) {
	start, err := utils.ParseTimeToMinutes(w.Start)
	if err != nil {
		return Interval{}, fmt.Errorf("bad start %q: %w", w.Start, err)
	}
	end, err := utils.ParseTimeToMinutes(w.End)
	if err != nil {
		return Interval{}, fmt.Errorf("bad end %q: %w", w.End, err)
	}
	if start >= end {
		return Interval{}, fmt.Errorf("window %s-%s is empty", w.Start, w.End)
	}
	return Interval{Start: start, End: end}, nil
}

func routineReasoning(item RoutineItem, hasWindow, usedFallback bool) string {
	w := item.Routine.Constraints.Window
	switch {
	case !item.Routine.Flexible && hasWindow:
		return fmt.Sprintf("fixed routine placed in declared window %s-%s", w.Start, w.End)
	case usedFallback:
		return fmt.Sprintf("preferred window %s-%s full, moved to first free slot of the day", w.Start, w.End)
	case hasWindow:
		return fmt.Sprintf("placed in preferred window %s-%s", w.Start, w.End)
	default:
		return fmt.Sprintf("%s priority routine in first free slot", item.Routine.Priority)
	}
}

// sortRoutinesByPriority is a stable priority sort: critical first, and
// equal priorities keep their original relative order. This tie-break is
// part of the output contract.
func sortRoutinesByPriority(items []RoutineItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Routine.Priority.Rank() < items[j].Routine.Priority.Rank()
	})
}

// sortTasks orders open tasks by priority, then due date ascending with
// undated tasks last. The sort is stable for reproducibility.
func sortTasks(tasks []models.Task) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Open() {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Priority.Rank(), out[j].Priority.Rank()
		if ri != rj {
			return ri < rj
		}
		di, dj := out[i].DueDate, out[j].DueDate
		if (di == "") != (dj == "") {
			return di != "" // dated tasks before undated ones
		}
		return di < dj
	})
	return out
}
