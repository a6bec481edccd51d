package settings

import (
	"fmt"

	"github.com/jdmerritt/planweave/internal/cli"
	"github.com/jdmerritt/planweave/internal/models"
	"github.com/jdmerritt/planweave/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	DayStart          *string `help:"Start of the plannable day (HH:MM)."`
	DayEnd            *string `help:"End of the plannable day (HH:MM)."`
	LunchStart        *string `help:"Start of the reserved lunch break (HH:MM, empty to disable)."`
	LunchDurationMin  *int    `help:"Lunch break duration in minutes."`
	Timezone          *string `help:"IANA timezone name, or 'Local'."`
	PlannerMode       *string `help:"Planner mode: builtin or augmented."`
	AugmentURL        *string `name:"augment-url" help:"Augmentation service URL (augmented mode only)."`
	AugmentTimeoutSec *int    `help:"Augmentation request timeout in seconds."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings := ctx.SettingsOrDefaults()

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Day Start:        %s\n", settings.DayStart)
		fmt.Printf("  Day End:          %s\n", settings.DayEnd)
		lunch := "disabled"
		if settings.LunchStart != "" && settings.LunchDurationMin > 0 {
			lunch = fmt.Sprintf("%s (%d min)", settings.LunchStart, settings.LunchDurationMin)
		}
		fmt.Printf("  Lunch:            %s\n", lunch)
		fmt.Printf("  Timezone:         %s\n", settings.Timezone)
		fmt.Println("\nPlanner Settings:")
		fmt.Printf("  Mode:             %s\n", settings.PlannerMode)
		fmt.Printf("  Augment URL:      %s\n", settings.AugmentURL)
		fmt.Printf("  Augment Timeout:  %d sec\n", settings.AugmentTimeoutSec)
		return nil
	}

	updated := false
	if c.DayStart != nil {
		if !utils.ValidateTimeFormat(*c.DayStart) {
			return fmt.Errorf("invalid day start %q (expected HH:MM)", *c.DayStart)
		}
		settings.DayStart = *c.DayStart
		updated = true
	}
	if c.DayEnd != nil {
		if !utils.ValidateTimeFormat(*c.DayEnd) {
			return fmt.Errorf("invalid day end %q (expected HH:MM)", *c.DayEnd)
		}
		settings.DayEnd = *c.DayEnd
		updated = true
	}
	if c.LunchStart != nil {
		if *c.LunchStart != "" && !utils.ValidateTimeFormat(*c.LunchStart) {
			return fmt.Errorf("invalid lunch start %q (expected HH:MM)", *c.LunchStart)
		}
		settings.LunchStart = *c.LunchStart
		updated = true
	}
	if c.LunchDurationMin != nil {
		if *c.LunchDurationMin < 0 {
			return fmt.Errorf("lunch duration cannot be negative")
		}
		settings.LunchDurationMin = *c.LunchDurationMin
		updated = true
	}
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("unknown timezone %q", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.PlannerMode != nil {
		mode := models.PlannerMode(*c.PlannerMode)
		if mode != models.PlannerBuiltin && mode != models.PlannerAugmented {
			return fmt.Errorf("invalid planner mode %q (expected builtin or augmented)", *c.PlannerMode)
		}
		settings.PlannerMode = mode
		updated = true
	}
	if c.AugmentURL != nil {
		settings.AugmentURL = *c.AugmentURL
		updated = true
	}
	if c.AugmentTimeoutSec != nil {
		if *c.AugmentTimeoutSec <= 0 {
			return fmt.Errorf("augment timeout must be positive")
		}
		settings.AugmentTimeoutSec = *c.AugmentTimeoutSec
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	// Cross-field check after applying updates so a single invocation can
	// move both bounds at once.
	if _, _, err := cli.DayBounds(settings); err != nil {
		return err
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	return nil
}
