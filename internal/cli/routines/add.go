package routines

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jdmerritt/planweave/internal/cli"
	"github.com/jdmerritt/planweave/internal/models"
	"github.com/jdmerritt/planweave/internal/recurrence"
	"github.com/jdmerritt/planweave/internal/utils"
)

type RoutineAddCmd struct {
	Name     string `arg:"" help:"Routine name."`
	Domain   string `help:"Free-form grouping label (e.g. health, work)."`
	Priority string `help:"Priority: critical, high, medium, or low." default:"medium" enum:"critical,high,medium,low"`
	Flexible bool   `help:"Allow the allocator to move this routine outside its window."`
	Window   string `help:"Preferred time window, HH:MM-HH:MM."`
	Duration int    `help:"Duration in minutes (default 30)."`
	Target   string `help:"Numeric target, e.g. '2 liters' or '10000 steps'."`

	Recur           string `help:"Recurrence type: daily, weekly, monthly, or custom." default:"daily" enum:"daily,weekly,monthly,custom"`
	Every           int    `help:"Recurrence interval (every N days/weeks/months)." default:"1"`
	ExcludeWeekends bool   `help:"Skip Saturdays and Sundays (daily/custom only)."`
	On              string `help:"Weekly: comma-separated weekdays (mon,wed or 1,3)."`
	OnDays          string `help:"Monthly: comma-separated month days (1,15)."`
}

func (c *RoutineAddCmd) Run(ctx *cli.Context) error {
	settings := ctx.SettingsOrDefaults()

	routine := models.Routine{
		ID:       uuid.New().String(),
		Name:     c.Name,
		Domain:   c.Domain,
		Active:   true,
		Priority: models.Priority(c.Priority),
		Flexible: c.Flexible,
	}

	anchor, err := utils.GetTodayInTimezone(settings.Timezone)
	if err != nil {
		return err
	}
	routine.CreatedAt = anchor

	if c.Window != "" {
		window, err := parseWindowFlag(c.Window)
		if err != nil {
			return err
		}
		routine.Constraints.Window = window
	}
	if c.Duration < 0 {
		return fmt.Errorf("duration cannot be negative")
	}
	routine.Constraints.DurationMin = c.Duration

	if c.Target != "" {
		target, err := parseTargetFlag(c.Target)
		if err != nil {
			return err
		}
		routine.Constraints.Target = target
	}

	rec := models.Recurrence{
		Type:            models.RecurrenceType(c.Recur),
		Interval:        c.Every,
		ExcludeWeekends: c.ExcludeWeekends,
	}
	if c.On != "" {
		if rec.Type != models.RecurrenceWeekly {
			return fmt.Errorf("--on only applies to weekly recurrence")
		}
		days, err := cli.ParseWeekdays(c.On)
		if err != nil {
			return err
		}
		rec.DaysOfWeek = days
	}
	if c.OnDays != "" {
		if rec.Type != models.RecurrenceMonthly {
			return fmt.Errorf("--on-days only applies to monthly recurrence")
		}
		days, err := cli.ParseMonthDays(c.OnDays)
		if err != nil {
			return err
		}
		rec.DaysOfMonth = days
	}
	if err := recurrence.Validate(rec); err != nil {
		return err
	}
	routine.Recurrence = rec

	if err := ctx.Store.AddRoutine(routine); err != nil {
		return fmt.Errorf("failed to add routine: %w", err)
	}

	fmt.Printf("Added routine: %s (%s)\n", routine.Name, cli.FormatRecurrence(rec))
	fmt.Printf("  ID: %s\n", routine.ID)
	return nil
}

func parseWindowFlag(s string) (*models.TimeWindow, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid window %q (expected HH:MM-HH:MM)", s)
	}
	start, end := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if !utils.ValidateTimeFormat(start) || !utils.ValidateTimeFormat(end) {
		return nil, fmt.Errorf("invalid window %q (expected HH:MM-HH:MM)", s)
	}
	sm, _ := utils.ParseTimeToMinutes(start)
	em, _ := utils.ParseTimeToMinutes(end)
	if sm >= em {
		return nil, fmt.Errorf("window %q is empty", s)
	}
	return &models.TimeWindow{Start: start, End: end}, nil
}

func parseTargetFlag(s string) (*models.TargetValue, error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid target %q (expected '<value> <unit>')", s)
	}
	value, err := strconv.ParseFloat(parts[0], 64)
	if err != nil || value <= 0 {
		return nil, fmt.Errorf("invalid target value %q", parts[0])
	}
	return &models.TargetValue{Value: value, Unit: parts[1]}, nil
}
