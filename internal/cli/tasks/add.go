package tasks

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jdmerritt/planweave/internal/cli"
	"github.com/jdmerritt/planweave/internal/models"
	"github.com/jdmerritt/planweave/internal/utils"
)

type TaskAddCmd struct {
	Title    string `arg:"" help:"Task title."`
	Priority string `help:"Priority: critical, high, medium, or low." default:"medium" enum:"critical,high,medium,low"`
	Estimate int    `help:"Estimated duration in minutes (default 30)."`
	Due      string `help:"Due date (YYYY-MM-DD)."`
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	if c.Estimate < 0 {
		return fmt.Errorf("estimate cannot be negative")
	}
	if c.Due != "" && !utils.ValidateDateFormat(c.Due) {
		return fmt.Errorf("invalid due date %q (expected YYYY-MM-DD)", c.Due)
	}

	task := models.Task{
		ID:           uuid.New().String(),
		Title:        c.Title,
		Status:       models.TaskTodo,
		Priority:     models.Priority(c.Priority),
		EstimatedMin: c.Estimate,
		DueDate:      c.Due,
	}

	if err := ctx.Store.AddTask(task); err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}

	fmt.Printf("Added task: %s\n", task.Title)
	fmt.Printf("  ID: %s\n", task.ID)
	return nil
}
