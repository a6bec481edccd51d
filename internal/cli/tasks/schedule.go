package tasks

import (
	"fmt"
	"strings"

	"github.com/jdmerritt/planweave/internal/cli"
	"github.com/jdmerritt/planweave/internal/utils"
)

type TaskScheduleCmd struct {
	ID     string `arg:"" help:"Task ID."`
	Date   string `arg:"" optional:"" help:"Date (YYYY-MM-DD or 'today'). Omit with --clear."`
	Window string `arg:"" optional:"" help:"Time window (HH:MM-HH:MM)."`
	Clear  bool   `help:"Remove the manual placement instead of setting one."`
}

// Run pins a task to an exact window on a date. Pinned tasks are treated
// as busy time by the allocator, so replanning keeps them in place.
func (c *TaskScheduleCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find task with ID %s: %w", c.ID, err)
	}

	if c.Clear {
		if c.Date != "" || c.Window != "" {
			return fmt.Errorf("cannot combine a date or window with --clear")
		}
		task.ScheduledDate = ""
		task.ScheduledStart = ""
		task.ScheduledEnd = ""
		if err := ctx.Store.UpdateTask(task); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		fmt.Printf("Cleared manual placement of %q\n", task.Title)
		return nil
	}

	settings := ctx.SettingsOrDefaults()
	date, err := ctx.ResolveDate(c.Date, settings)
	if err != nil {
		return err
	}

	start, end, err := parseWindow(c.Window)
	if err != nil {
		return err
	}

	task.ScheduledDate = date
	task.ScheduledStart = start
	task.ScheduledEnd = end
	if err := ctx.Store.UpdateTask(task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	fmt.Printf("Pinned %q to %s-%s on %s\n", task.Title, start, end, date)
	return nil
}

func parseWindow(s string) (string, string, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid window %q (expected HH:MM-HH:MM)", s)
	}
	start, end := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if !utils.ValidateTimeFormat(start) || !utils.ValidateTimeFormat(end) {
		return "", "", fmt.Errorf("invalid window %q (expected HH:MM-HH:MM)", s)
	}
	sm, _ := utils.ParseTimeToMinutes(start)
	em, _ := utils.ParseTimeToMinutes(end)
	if sm >= em {
		return "", "", fmt.Errorf("window %q is empty", s)
	}
	return start, end, nil
}
