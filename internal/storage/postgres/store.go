package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"

	_ "github.com/lib/pq"

	"github.com/jdmerritt/planweave/internal/constants"
	"github.com/jdmerritt/planweave/internal/logger"
	"github.com/jdmerritt/planweave/internal/migration"
	"github.com/jdmerritt/planweave/internal/models"
	"github.com/jdmerritt/planweave/migrations"
)

type Store struct {
	connStr string
	db      *sql.DB
}

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

func New(connStr string) *Store {
	s := &Store{connStr: connStr}
	s.ensureSearchPath()
	return s
}

// HasEmbeddedCredentials reports whether a URL-style connection string
// carries a password. Credentials belong in the keyring, the environment,
// or .pgpass, never on the command line.
func HasEmbeddedCredentials(connStr string) bool {
	if !strings.HasPrefix(connStr, "postgres://") && !strings.HasPrefix(connStr, "postgresql://") {
		return false
	}
	u, err := url.Parse(connStr)
	if err != nil {
		return false
	}
	if u.User == nil {
		return false
	}
	_, hasPassword := u.User.Password()
	return hasPassword
}

func (s *Store) ensureSearchPath() {
	if strings.HasPrefix(s.connStr, "postgres://") || strings.HasPrefix(s.connStr, "postgresql://") {
		u, err := url.Parse(s.connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
			s.connStr = u.String()
		}
		return
	}

	// DSN format: space-separated key=value pairs.
	for _, part := range strings.Fields(s.connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], "search_path") {
			return
		}
	}
	s.connStr = strings.TrimSpace(s.connStr) + " search_path=" + constants.AppName
}

func (s *Store) Init() error {
	if err := s.open(); err != nil {
		return err
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	settings, err := s.GetSettings()
	if err != nil || settings.DayStart == "" {
		defaults := models.Settings{
			DayStart:          constants.DefaultDayStart,
			DayEnd:            constants.DefaultDayEnd,
			Timezone:          "Local",
			PlannerMode:       models.PlannerBuiltin,
			AugmentTimeoutSec: constants.DefaultAugmentTimeoutSec,
		}
		if err := s.SaveSettings(defaults); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	if err := s.open(); err != nil {
		return err
	}
	return s.validateSchemaVersion()
}

func (s *Store) open() error {
	if s.connStr == "" {
		return ErrInvalidConnectionString
	}

	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = db
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.connStr
}

// GetDB exposes the underlying handle for tests.
func (s *Store) GetDB() *sql.DB {
	return s.db
}

// Migrate applies pending schema migrations. Unlike Load it tolerates an
// out-of-date schema, since bringing it up to date is the whole point.
func (s *Store) Migrate(progress func(string)) (int, error) {
	if s.db == nil {
		if err := s.open(); err != nil {
			return 0, err
		}
	}

	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return 0, fmt.Errorf("failed to access postgres migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS).ApplyMigrations(progress)
}

func (s *Store) runMigrations() error {
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return fmt.Errorf("failed to access postgres migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS)
	_, err = runner.ApplyMigrations(nil)
	return err
}

func (s *Store) validateSchemaVersion() error {
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return fmt.Errorf("failed to access postgres migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS)
	current, err := runner.GetCurrentVersion()
	if err != nil {
		return err
	}
	latest, err := runner.LatestVersion()
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("database schema is at version %d but version %d is required, run '%s migrate'",
			current, latest, constants.AppName)
	}
	return nil
}
