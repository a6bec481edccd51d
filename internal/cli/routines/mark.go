package routines

import (
	"fmt"

	"github.com/jdmerritt/planweave/internal/cli"
	"github.com/jdmerritt/planweave/internal/models"
)

type RoutineDoneCmd struct {
	ID   string `arg:"" help:"Routine ID."`
	Date string `arg:"" optional:"" help:"Occurrence date (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *RoutineDoneCmd) Run(ctx *cli.Context) error {
	return markOccurrence(ctx, c.ID, c.Date, models.OccurrenceCompleted)
}

type RoutineSkipCmd struct {
	ID   string `arg:"" help:"Routine ID."`
	Date string `arg:"" optional:"" help:"Occurrence date (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *RoutineSkipCmd) Run(ctx *cli.Context) error {
	return markOccurrence(ctx, c.ID, c.Date, models.OccurrenceSkipped)
}

func markOccurrence(ctx *cli.Context, routineID, dateArg string, status models.OccurrenceStatus) error {
	settings := ctx.SettingsOrDefaults()

	date, err := ctx.ResolveDate(dateArg, settings)
	if err != nil {
		return err
	}

	routine, err := ctx.Store.GetRoutine(routineID)
	if err != nil {
		return fmt.Errorf("failed to find routine with ID %s: %w", routineID, err)
	}

	occurrences, err := ctx.Store.GetOccurrencesForDate(date)
	if err != nil {
		return fmt.Errorf("failed to load occurrences: %w", err)
	}

	for _, occ := range occurrences {
		if occ.RoutineID != routineID {
			continue
		}
		if err := ctx.Store.UpdateOccurrenceStatus(occ.ID, status); err != nil {
			return fmt.Errorf("failed to update occurrence: %w", err)
		}
		fmt.Printf("Marked %q as %s for %s\n", routine.Name, status, date)
		return nil
	}

	return fmt.Errorf("no occurrence of %q on %s; run 'planweave plan %s' first", routine.Name, date, date)
}
