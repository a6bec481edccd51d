package storage

import "github.com/jdmerritt/planweave/internal/models"

// Provider is the persistence contract the engine's callers depend on.
// The planning components themselves stay pure; only the CLI layer and
// the occurrence generator touch a Provider.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Routines
	AddRoutine(models.Routine) error
	GetRoutine(id string) (models.Routine, error)
	GetAllRoutines(includeDeleted bool) ([]models.Routine, error)
	GetActiveRoutines() ([]models.Routine, error)
	UpdateRoutine(models.Routine) error
	DeleteRoutine(id string) error

	// Occurrences. AddOccurrence is idempotent on (routine, date): a second
	// insert for the same pair is silently ignored by the unique index.
	AddOccurrence(models.Occurrence) error
	GetOccurrence(id string) (models.Occurrence, error)
	GetOccurrencesForDate(date string) ([]models.Occurrence, error)
	UpdateOccurrenceStatus(id string, status models.OccurrenceStatus) error
	UpdateOccurrenceTimes(id, start, end string) error

	// Tasks
	AddTask(models.Task) error
	GetTask(id string) (models.Task, error)
	GetAllTasks() ([]models.Task, error)
	GetOpenTasks() ([]models.Task, error)
	UpdateTask(models.Task) error
	DeleteTask(id string) error

	// Plans
	SavePlan(models.DayPlan) error
	GetPlan(date string) (models.DayPlan, error)
	DeletePlan(date string) error

	// Utils
	GetConfigPath() string
}
