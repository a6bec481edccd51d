package routines

import (
	"fmt"

	"github.com/jdmerritt/planweave/internal/cli"
)

type RoutineScheduleCmd struct {
	ID     string `arg:"" help:"Routine ID."`
	Window string `arg:"" optional:"" help:"Time window (HH:MM-HH:MM). Omit with --clear."`
	Date   string `help:"Occurrence date (YYYY-MM-DD or 'today')." default:"today"`
	Clear  bool   `help:"Remove the manual placement instead of setting one."`
}

// Run pins a routine's occurrence to an exact window. Pinned occurrences
// are treated as busy time by the allocator, so replanning the day keeps
// them where the user put them.
func (c *RoutineScheduleCmd) Run(ctx *cli.Context) error {
	settings := ctx.SettingsOrDefaults()

	date, err := ctx.ResolveDate(c.Date, settings)
	if err != nil {
		return err
	}

	routine, err := ctx.Store.GetRoutine(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find routine with ID %s: %w", c.ID, err)
	}

	var start, end string
	if c.Clear {
		if c.Window != "" {
			return fmt.Errorf("cannot combine a window with --clear")
		}
	} else {
		window, err := parseWindowFlag(c.Window)
		if err != nil {
			return err
		}
		start, end = window.Start, window.End
	}

	occurrences, err := ctx.Store.GetOccurrencesForDate(date)
	if err != nil {
		return fmt.Errorf("failed to load occurrences: %w", err)
	}

	for _, occ := range occurrences {
		if occ.RoutineID != c.ID {
			continue
		}
		if err := ctx.Store.UpdateOccurrenceTimes(occ.ID, start, end); err != nil {
			return fmt.Errorf("failed to update occurrence: %w", err)
		}
		if c.Clear {
			fmt.Printf("Cleared manual placement of %q on %s\n", routine.Name, date)
		} else {
			fmt.Printf("Pinned %q to %s-%s on %s\n", routine.Name, start, end, date)
		}
		return nil
	}

	return fmt.Errorf("no occurrence of %q on %s; run 'planweave generate %s' first", routine.Name, date, date)
}
