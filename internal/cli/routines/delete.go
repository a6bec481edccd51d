package routines

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/jdmerritt/planweave/internal/cli"
)

type RoutineDeleteCmd struct {
	ID    string `arg:"" help:"Routine ID to delete."`
	Force bool   `help:"Skip the confirmation prompt."`
}

func (c *RoutineDeleteCmd) Run(ctx *cli.Context) error {
	routine, err := ctx.Store.GetRoutine(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find routine with ID %s: %w", c.ID, err)
	}

	if !c.Force {
		var confirmed bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Delete routine %q?", routine.Name)).
					Description("Future occurrences will no longer be generated.").
					Value(&confirmed),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("confirmation prompt failed: %w", err)
		}
		if !confirmed {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := ctx.Store.DeleteRoutine(c.ID); err != nil {
		return fmt.Errorf("failed to delete routine: %w", err)
	}

	fmt.Printf("Deleted routine: %s (ID: %s)\n", routine.Name, c.ID)
	return nil
}
