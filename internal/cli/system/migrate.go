package system

import (
	"fmt"

	"github.com/jdmerritt/planweave/internal/cli"
	"github.com/jdmerritt/planweave/internal/storage/postgres"
	"github.com/jdmerritt/planweave/internal/storage/sqlite"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	progress := func(msg string) {
		fmt.Println(msg)
	}

	var count int
	var err error
	switch store := ctx.Store.(type) {
	case *sqlite.Store:
		count, err = store.Migrate(progress)
	case *postgres.Store:
		count, err = store.Migrate(progress)
	default:
		return fmt.Errorf("storage backend does not support migrations")
	}
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
