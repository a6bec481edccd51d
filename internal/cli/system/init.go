package system

import (
	"fmt"
	"os"

	"github.com/jdmerritt/planweave/internal/cli"
	"github.com/jdmerritt/planweave/internal/storage"
)

type InitCmd struct {
	Force bool `help:"Delete the existing database before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		path := ctx.Store.GetConfigPath()
		if storage.IsPostgresConnString(path) {
			return fmt.Errorf("--force is only supported for sqlite storage; drop the postgres schema manually")
		}
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized planweave storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}
