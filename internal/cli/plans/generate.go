package plans

import (
	"fmt"

	"github.com/jdmerritt/planweave/internal/cli"
	"github.com/jdmerritt/planweave/internal/generator"
)

type GenerateCmd struct {
	Date string `arg:"" optional:"" help:"Date to generate occurrences for (YYYY-MM-DD or 'today')." default:"today"`
}

// Run materializes routine occurrences for a date without allocating them.
// Rerunning is safe: occurrences that already exist are left untouched.
func (c *GenerateCmd) Run(ctx *cli.Context) error {
	settings := ctx.SettingsOrDefaults()

	date, err := ctx.ResolveDate(c.Date, settings)
	if err != nil {
		return err
	}

	gen := generator.New(ctx.Store, ctx.LockDir())
	created, err := gen.GenerateForDate(date)
	if err != nil {
		return fmt.Errorf("failed to generate occurrences: %w", err)
	}

	if len(created) == 0 {
		fmt.Printf("No new occurrences for %s\n", date)
		return nil
	}
	fmt.Printf("Generated %d occurrence(s) for %s\n", len(created), date)
	return nil
}
