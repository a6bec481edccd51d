package sqlite

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/jdmerritt/planweave/internal/constants"
	"github.com/jdmerritt/planweave/internal/migration"
	"github.com/jdmerritt/planweave/internal/models"
	"github.com/jdmerritt/planweave/migrations"
)

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{
		path: expandPath(path),
	}
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Seed default settings on a fresh database.
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

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return s.validateSchemaVersion()
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB exposes the underlying handle for tests.
func (s *Store) GetDB() *sql.DB {
	return s.db
}

// Migrate applies pending schema migrations. Unlike Load it tolerates an
// out-of-date schema, since bringing it up to date is the whole point.
func (s *Store) Migrate(progress func(string)) (int, error) {
	if s.db == nil {
		if _, err := os.Stat(s.path); os.IsNotExist(err) {
			return 0, fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
		}
		db, err := sql.Open("sqlite", s.path)
		if err != nil {
			return 0, fmt.Errorf("failed to open database: %w", err)
		}
		s.db = db
	}

	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return 0, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS).ApplyMigrations(progress)
}

func (s *Store) runMigrations() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS)
	_, err = runner.ApplyMigrations(nil)
	return err
}

func (s *Store) validateSchemaVersion() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
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

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
