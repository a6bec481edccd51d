// Package generator materializes due routines into per-date occurrences.
// Generation is idempotent: routines already represented on a date are
// never emitted again, and the storage layer's unique (routine, date)
// index backstops races the lockfile cannot see.
package generator

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jdmerritt/planweave/internal/lockfile"
	"github.com/jdmerritt/planweave/internal/logger"
	"github.com/jdmerritt/planweave/internal/models"
	"github.com/jdmerritt/planweave/internal/recurrence"
	"github.com/jdmerritt/planweave/internal/utils"
)

// Store is the narrow storage surface generation needs.
type Store interface {
	GetActiveRoutines() ([]models.Routine, error)
	GetOccurrencesForDate(date string) ([]models.Occurrence, error)
	AddOccurrence(models.Occurrence) error
}

// Diff computes the occurrences that still need to be created for a date.
// It is pure: routines that are inactive, deleted, not due, or already
// represented in existing produce nothing. An invalid recurrence descriptor
// is an error, never a silent skip.
func Diff(routines []models.Routine, date string, existing []models.Occurrence) ([]models.Occurrence, error) {
	target, err := utils.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	have := make(map[string]bool, len(existing))
	for _, o := range existing {
		have[o.RoutineID] = true
	}

	var out []models.Occurrence
	for _, r := range routines {
		if !r.Active || r.DeletedAt != nil {
			continue
		}

		anchor, err := utils.ParseDate(r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("routine %q has invalid anchor date %q: %w", r.Name, r.CreatedAt, err)
		}

		due, err := recurrence.OccursOn(r.Recurrence, anchor, target)
		if err != nil {
			return nil, fmt.Errorf("routine %q: %w", r.Name, err)
		}
		if !due || have[r.ID] {
			continue
		}

		out = append(out, models.Occurrence{
			ID:        uuid.NewString(),
			RoutineID: r.ID,
			Date:      date,
			Status:    models.OccurrencePending,
		})
	}
	return out, nil
}

// Generator loads inputs, computes the diff, and persists the result under
// a per-date advisory lock.
type Generator struct {
	store   Store
	lockDir string
}

func New(store Store, lockDir string) *Generator {
	return &Generator{store: store, lockDir: lockDir}
}

// GenerateForDate materializes all missing occurrences for the date and
// returns the newly created ones. Persistence failures surface unchanged
// after the first failed insert; retry policy belongs to the caller.
func (g *Generator) GenerateForDate(date string) ([]models.Occurrence, error) {
	lock, err := lockfile.Acquire(g.lockDir, "generate-"+date)
	if err != nil {
		return nil, fmt.Errorf("occurrence generation for %s: %w", date, err)
	}
	defer func() {
		if rerr := lock.Release(); rerr != nil {
			logger.Warn("Failed to release generation lock", "date", date, "error", rerr)
		}
	}()

	routines, err := g.store.GetActiveRoutines()
	if err != nil {
		return nil, fmt.Errorf("failed to load routines: %w", err)
	}
	existing, err := g.store.GetOccurrencesForDate(date)
	if err != nil {
		return nil, fmt.Errorf("failed to load occurrences for %s: %w", date, err)
	}

	created, err := Diff(routines, date, existing)
	if err != nil {
		return nil, err
	}

	for _, occ := range created {
		if err := g.store.AddOccurrence(occ); err != nil {
			return nil, fmt.Errorf("failed to persist occurrence for routine %s: %w", occ.RoutineID, err)
		}
	}

	logger.Debug("Generated occurrences", "date", date, "count", len(created))
	return created, nil
}
