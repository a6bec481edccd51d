package plans

import (
	"github.com/jdmerritt/planweave/internal/cli"
)

type DayCmd struct {
	Date string `arg:"" optional:"" help:"Date to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *DayCmd) Run(ctx *cli.Context) error {
	settings := ctx.SettingsOrDefaults()

	date, err := ctx.ResolveDate(c.Date, settings)
	if err != nil {
		return err
	}

	plan, err := ctx.Store.GetPlan(date)
	if err != nil {
		return err
	}

	renderPlan(ctx, plan)
	return nil
}
