package routines

import (
	"fmt"

	"github.com/jdmerritt/planweave/internal/cli"
	"github.com/jdmerritt/planweave/internal/constants"
)

type RoutineListCmd struct {
	Deleted bool `help:"Include deleted routines."`
}

func (c *RoutineListCmd) Run(ctx *cli.Context) error {
	routines, err := ctx.Store.GetAllRoutines(c.Deleted)
	if err != nil {
		return fmt.Errorf("failed to list routines: %w", err)
	}

	if len(routines) == 0 {
		fmt.Println("No routines found.")
		return nil
	}

	for _, r := range routines {
		status := ""
		if r.DeletedAt != nil {
			status = " [DELETED]"
		} else if !r.Active {
			status = " [INACTIVE]"
		}

		flex := "fixed"
		if r.Flexible {
			flex = "flexible"
		}

		fmt.Printf("%s%s\n", r.Name, status)
		fmt.Printf("  ID: %s\n", r.ID)
		if r.Domain != "" {
			fmt.Printf("  Domain: %s\n", r.Domain)
		}
		fmt.Printf("  %s, %s priority, %d min, %s\n",
			cli.FormatRecurrence(r.Recurrence), r.Priority,
			r.Duration(constants.DefaultDurationMin), flex)
		if w := r.Constraints.Window; w != nil {
			fmt.Printf("  Window: %s-%s\n", w.Start, w.End)
		}
		if t := r.Constraints.Target; t != nil {
			fmt.Printf("  Target: %g %s\n", t.Value, t.Unit)
		}
	}

	return nil
}
