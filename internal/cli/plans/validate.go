package plans

import (
	"fmt"

	"github.com/jdmerritt/planweave/internal/cli"
	"github.com/jdmerritt/planweave/internal/conflicts"
	"github.com/jdmerritt/planweave/internal/utils"
)

type ValidateCmd struct {
	Date string `arg:"" optional:"" help:"Date to validate (YYYY-MM-DD or 'today')." default:"today"`
}

// Run checks a stored plan for overlapping slots. A freshly generated plan
// is overlap-free; manual edits to occurrence or task times can break that.
func (c *ValidateCmd) Run(ctx *cli.Context) error {
	settings := ctx.SettingsOrDefaults()

	date, err := ctx.ResolveDate(c.Date, settings)
	if err != nil {
		return err
	}

	plan, err := ctx.Store.GetPlan(date)
	if err != nil {
		return err
	}

	names := resolveNames(ctx, plan)
	display := func(id string) string {
		if name := names[id]; name != "" {
			return name
		}
		return id
	}

	events := make([]conflicts.Event, 0, len(plan.Slots))
	for _, slot := range plan.Slots {
		start, err := utils.ParseTimeToMinutes(slot.Start)
		if err != nil {
			return fmt.Errorf("slot for %s has invalid start %q: %w", display(slot.ItemID), slot.Start, err)
		}
		end, err := utils.ParseTimeToMinutes(slot.End)
		if err != nil {
			return fmt.Errorf("slot for %s has invalid end %q: %w", display(slot.ItemID), slot.End, err)
		}
		events = append(events, conflicts.Event{
			ID:    slot.ItemID,
			Title: display(slot.ItemID),
			Date:  plan.Date,
			Start: start,
			End:   end,
		})
	}

	found := conflicts.Detect(events)
	if len(found) == 0 {
		fmt.Printf("No conflicts in plan for %s (%d slots checked)\n", date, len(events))
		return nil
	}

	fmt.Printf("%d conflict(s) in plan for %s:\n", len(found), date)
	for _, cf := range found {
		fmt.Printf("  %s overlaps %s by %d minutes\n", display(cf.EventA), display(cf.EventB), cf.OverlapMinutes)
	}
	return nil
}
