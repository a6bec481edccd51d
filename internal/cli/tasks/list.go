package tasks

import (
	"fmt"

	"github.com/jdmerritt/planweave/internal/cli"
	"github.com/jdmerritt/planweave/internal/constants"
)

type TaskListCmd struct {
	All bool `help:"Include tasks in terminal states (done, cancelled, archived)."`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	shown := 0
	for _, t := range tasks {
		if !c.All && t.Status.Terminal() {
			continue
		}
		shown++

		fmt.Printf("%s [%s]\n", t.Title, t.Status)
		fmt.Printf("  ID: %s\n", t.ID)
		line := fmt.Sprintf("  %s priority, %d min", t.Priority, t.Duration(constants.DefaultDurationMin))
		if t.DueDate != "" {
			line += fmt.Sprintf(", due %s", t.DueDate)
		}
		fmt.Println(line)
		if t.ScheduledDate != "" {
			fmt.Printf("  Scheduled: %s %s-%s\n", t.ScheduledDate, t.ScheduledStart, t.ScheduledEnd)
		}
	}

	if shown == 0 {
		fmt.Println("No tasks found.")
	}
	return nil
}
