package storage

import (
	"strings"

	"github.com/jdmerritt/planweave/internal/storage/postgres"
	"github.com/jdmerritt/planweave/internal/storage/sqlite"
)

// NewSQLiteStore opens a file-backed sqlite Provider at the given path.
func NewSQLiteStore(path string) Provider {
	return sqlite.NewStore(path)
}

// NewPostgresStore opens a Provider over a PostgreSQL connection string.
func NewPostgresStore(connStr string) Provider {
	return postgres.New(connStr)
}

// IsPostgresConnString reports whether the config value selects the
// postgres driver rather than a sqlite file path.
func IsPostgresConnString(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}

// HasEmbeddedCredentials reports whether a connection string carries a
// password, which is never allowed on the command line.
func HasEmbeddedCredentials(connStr string) bool {
	return postgres.HasEmbeddedCredentials(connStr)
}
