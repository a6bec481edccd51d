package routines

import (
	"fmt"

	"github.com/jdmerritt/planweave/internal/cli"
)

type RoutinePauseCmd struct {
	ID string `arg:"" help:"Routine ID to pause."`
}

func (c *RoutinePauseCmd) Run(ctx *cli.Context) error {
	return setActive(ctx, c.ID, false)
}

type RoutineResumeCmd struct {
	ID string `arg:"" help:"Routine ID to resume."`
}

func (c *RoutineResumeCmd) Run(ctx *cli.Context) error {
	return setActive(ctx, c.ID, true)
}

func setActive(ctx *cli.Context, id string, active bool) error {
	routine, err := ctx.Store.GetRoutine(id)
	if err != nil {
		return fmt.Errorf("failed to find routine with ID %s: %w", id, err)
	}

	if routine.Active == active {
		if active {
			fmt.Printf("Routine %q is already active\n", routine.Name)
		} else {
			fmt.Printf("Routine %q is already paused\n", routine.Name)
		}
		return nil
	}

	routine.Active = active
	if err := ctx.Store.UpdateRoutine(routine); err != nil {
		return fmt.Errorf("failed to update routine: %w", err)
	}

	if active {
		fmt.Printf("Resumed routine: %s\n", routine.Name)
	} else {
		fmt.Printf("Paused routine: %s (occurrences will not be generated)\n", routine.Name)
	}
	return nil
}
