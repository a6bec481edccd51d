package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jdmerritt/planweave/internal/cli"
	"github.com/jdmerritt/planweave/internal/keyring"
	"github.com/jdmerritt/planweave/internal/storage"
)

// KeyringSetCmd stores a database connection string in the OS keyring.
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in the keyring."`
}

func (c *KeyringSetCmd) Run(_ *cli.Context) error {
	if !storage.IsPostgresConnString(c.ConnectionString) && !strings.Contains(c.ConnectionString, "host=") {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if err := keyring.SetConnectionString(c.ConnectionString); err != nil {
		return err
	}

	fmt.Println("Connection string stored in OS keyring")
	fmt.Println("You can now use planweave without the --config flag")
	return nil
}

// KeyringGetCmd shows the stored connection string with the password masked.
type KeyringGetCmd struct{}

func (c *KeyringGetCmd) Run(_ *cli.Context) error {
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring, use 'planweave keyring set' to store one")
		}
		return err
	}

	fmt.Println(maskPassword(connStr))
	return nil
}

// KeyringDeleteCmd removes the stored connection string.
type KeyringDeleteCmd struct{}

func (c *KeyringDeleteCmd) Run(_ *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return err
	}

	fmt.Println("Connection string deleted from OS keyring")
	return nil
}

// maskPassword masks the password portion of a connection string for display.
func maskPassword(connStr string) string {
	if storage.IsPostgresConnString(connStr) {
		if idx := strings.Index(connStr, "://"); idx != -1 {
			remaining := connStr[idx+3:]
			if atIdx := strings.LastIndex(remaining, "@"); atIdx != -1 {
				userInfo := remaining[:atIdx]
				if colonIdx := strings.Index(userInfo, ":"); colonIdx != -1 {
					return connStr[:idx+3] + userInfo[:colonIdx] + ":****" + connStr[idx+3+atIdx:]
				}
			}
		}
		return connStr
	}

	if strings.Contains(connStr, "password=") {
		parts := strings.Fields(connStr)
		for i, part := range parts {
			if strings.HasPrefix(part, "password=") {
				parts[i] = "password=****"
			}
		}
		return strings.Join(parts, " ")
	}

	return connStr
}
