package plans

import (
	"context"
	"fmt"
	"sort"

	"github.com/jdmerritt/planweave/internal/cli"
	"github.com/jdmerritt/planweave/internal/generator"
	"github.com/jdmerritt/planweave/internal/models"
	"github.com/jdmerritt/planweave/internal/planner"
	"github.com/jdmerritt/planweave/internal/utils"
)

type PlanCmd struct {
	Date string `arg:"" optional:"" help:"Date to plan (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *PlanCmd) Run(ctx *cli.Context) error {
	settings := ctx.SettingsOrDefaults()

	date, err := ctx.ResolveDate(c.Date, settings)
	if err != nil {
		return err
	}

	// Materialize due occurrences first; allocation depends on the
	// persisted result.
	gen := generator.New(ctx.Store, ctx.LockDir())
	created, err := gen.GenerateForDate(date)
	if err != nil {
		return fmt.Errorf("failed to generate occurrences: %w", err)
	}
	if len(created) > 0 {
		fmt.Printf("Generated %d new routine occurrence(s) for %s\n", len(created), date)
	}

	req, pinned, err := buildRequest(ctx, settings, date)
	if err != nil {
		return err
	}

	allocator := cli.BuildAllocator(settings)
	res, err := allocator.Allocate(context.Background(), req)
	if err != nil {
		return fmt.Errorf("allocation failed: %w", err)
	}

	// The summary is recomputed over the merged slot list so pinned
	// placements count toward the placed total.
	slots := mergeSlots(res.Slots, pinned)
	plan := models.DayPlan{
		Date:        date,
		Slots:       slots,
		Unscheduled: res.Unscheduled,
		Summary:     planSummary(len(slots), len(res.Unscheduled)),
	}
	if err := ctx.Store.SavePlan(plan); err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}

	renderPlan(ctx, plan)
	return nil
}

// buildRequest assembles the allocator input for a date. Occurrences and
// tasks that already carry a manual placement become busy intervals plus
// pinned fixed slots rather than allocation candidates.
func buildRequest(ctx *cli.Context, settings models.Settings, date string) (planner.Request, []models.PlanSlot, error) {
	dayStart, dayEnd, err := cli.DayBounds(settings)
	if err != nil {
		return planner.Request{}, nil, err
	}
	lunch, err := cli.LunchInterval(settings)
	if err != nil {
		return planner.Request{}, nil, err
	}

	occurrences, err := ctx.Store.GetOccurrencesForDate(date)
	if err != nil {
		return planner.Request{}, nil, fmt.Errorf("failed to load occurrences: %w", err)
	}
	routines, err := ctx.Store.GetAllRoutines(false)
	if err != nil {
		return planner.Request{}, nil, fmt.Errorf("failed to load routines: %w", err)
	}
	byID := make(map[string]models.Routine, len(routines))
	for _, r := range routines {
		byID[r.ID] = r
	}

	req := planner.Request{
		Date:     date,
		DayStart: dayStart,
		DayEnd:   dayEnd,
		Lunch:    lunch,
	}
	var pinned []models.PlanSlot

	for _, occ := range occurrences {
		if occ.Status != models.OccurrencePending {
			continue
		}
		routine, ok := byID[occ.RoutineID]
		if !ok {
			continue // routine deleted after generation
		}
		if iv, ok := pinnedInterval(occ.Start, occ.End); ok {
			req.Busy = append(req.Busy, iv)
			pinned = append(pinned, models.PlanSlot{
				ItemType:  models.ItemRoutine,
				ItemID:    occ.ID,
				Start:     occ.Start,
				End:       occ.End,
				Fixed:     true,
				Reasoning: "manually placed",
			})
			continue
		}
		req.Routines = append(req.Routines, planner.RoutineItem{Occurrence: occ, Routine: routine})
	}

	tasks, err := ctx.Store.GetOpenTasks()
	if err != nil {
		return planner.Request{}, nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	for _, task := range tasks {
		if task.ScheduledDate == date {
			if iv, ok := pinnedInterval(task.ScheduledStart, task.ScheduledEnd); ok {
				req.Busy = append(req.Busy, iv)
				pinned = append(pinned, models.PlanSlot{
					ItemType:  models.ItemTask,
					ItemID:    task.ID,
					Start:     task.ScheduledStart,
					End:       task.ScheduledEnd,
					Fixed:     true,
					Reasoning: "manually placed",
				})
				continue
			}
		}
		req.Tasks = append(req.Tasks, task)
	}

	return req, pinned, nil
}

func pinnedInterval(start, end string) (planner.Interval, bool) {
	if start == "" || end == "" {
		return planner.Interval{}, false
	}
	s, err := utils.ParseTimeToMinutes(start)
	if err != nil {
		return planner.Interval{}, false
	}
	e, err := utils.ParseTimeToMinutes(end)
	if err != nil || s >= e {
		return planner.Interval{}, false
	}
	return planner.Interval{Start: s, End: e}, true
}

func planSummary(placed, unscheduled int) string {
	return fmt.Sprintf("Placed %d of %d items (%d unscheduled)", placed, placed+unscheduled, unscheduled)
}

func mergeSlots(allocated, pinned []models.PlanSlot) []models.PlanSlot {
	merged := make([]models.PlanSlot, 0, len(allocated)+len(pinned))
	merged = append(merged, pinned...)
	merged = append(merged, allocated...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Start < merged[j].Start
	})
	return merged
}
