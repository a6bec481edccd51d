package tasks

import (
	"fmt"

	"github.com/jdmerritt/planweave/internal/cli"
	"github.com/jdmerritt/planweave/internal/models"
)

type TaskDoneCmd struct {
	ID string `arg:"" help:"Task ID to mark done."`
}

func (c *TaskDoneCmd) Run(ctx *cli.Context) error {
	return setStatus(ctx, c.ID, models.TaskDone)
}

type TaskStatusCmd struct {
	ID     string `arg:"" help:"Task ID."`
	Status string `arg:"" help:"New status." enum:"backlog,todo,in_progress,blocked,done,cancelled,archived"`
}

func (c *TaskStatusCmd) Run(ctx *cli.Context) error {
	return setStatus(ctx, c.ID, models.TaskStatus(c.Status))
}

func setStatus(ctx *cli.Context, id string, status models.TaskStatus) error {
	task, err := ctx.Store.GetTask(id)
	if err != nil {
		return fmt.Errorf("failed to find task with ID %s: %w", id, err)
	}

	task.Status = status
	if err := ctx.Store.UpdateTask(task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	fmt.Printf("Task %q is now %s\n", task.Title, status)
	return nil
}
