package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jdmerritt/planweave/internal/models"
)

const routineColumns = `id, name, domain, active, priority, flexible, constraints,
	recurrence_type, recurrence_interval, exclude_weekends, days_of_week, days_of_month,
	created_at, deleted_at`

func (s *Store) AddRoutine(r models.Routine) error {
	return s.upsertRoutine(r)
}

func (s *Store) UpdateRoutine(r models.Routine) error {
	return s.upsertRoutine(r)
}

func (s *Store) upsertRoutine(r models.Routine) error {
	constraintsJSON, err := json.Marshal(r.Constraints)
	if err != nil {
		return fmt.Errorf("failed to encode constraints: %w", err)
	}
	daysOfWeek, err := encodeIntSet(r.Recurrence.DaysOfWeek)
	if err != nil {
		return err
	}
	daysOfMonth, err := encodeIntSet(r.Recurrence.DaysOfMonth)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO routines (`+routineColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			domain = excluded.domain,
			active = excluded.active,
			priority = excluded.priority,
			flexible = excluded.flexible,
			constraints = excluded.constraints,
			recurrence_type = excluded.recurrence_type,
			recurrence_interval = excluded.recurrence_interval,
			exclude_weekends = excluded.exclude_weekends,
			days_of_week = excluded.days_of_week,
			days_of_month = excluded.days_of_month,
			created_at = excluded.created_at,
			deleted_at = excluded.deleted_at`,
		r.ID, r.Name, r.Domain, r.Active, string(r.Priority), r.Flexible, string(constraintsJSON),
		string(r.Recurrence.Type), r.Recurrence.Interval, r.Recurrence.ExcludeWeekends,
		daysOfWeek, daysOfMonth, r.CreatedAt, nullString(r.DeletedAt),
	)
	return err
}

func (s *Store) GetRoutine(id string) (models.Routine, error) {
	row := s.db.QueryRow(
		"SELECT "+routineColumns+" FROM routines WHERE id = ? AND deleted_at IS NULL", id)
	return scanRoutine(row)
}

func (s *Store) GetAllRoutines(includeDeleted bool) ([]models.Routine, error) {
	query := "SELECT " + routineColumns + " FROM routines"
	if !includeDeleted {
		query += " WHERE deleted_at IS NULL"
	}
	query += " ORDER BY created_at, id"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routines []models.Routine
	for rows.Next() {
		r, err := scanRoutine(rows)
		if err != nil {
			return nil, err
		}
		routines = append(routines, r)
	}
	return routines, rows.Err()
}

func (s *Store) GetActiveRoutines() ([]models.Routine, error) {
	rows, err := s.db.Query(
		"SELECT " + routineColumns + " FROM routines WHERE active = 1 AND deleted_at IS NULL ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routines []models.Routine
	for rows.Next() {
		r, err := scanRoutine(rows)
		if err != nil {
			return nil, err
		}
		routines = append(routines, r)
	}
	return routines, rows.Err()
}

func (s *Store) DeleteRoutine(id string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec("UPDATE routines SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL", now, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("routine not found: %s", id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func scanRoutine(row scannable) (models.Routine, error) {
	var r models.Routine
	var priority, recType, constraintsJSON string
	var daysOfWeek, daysOfMonth, deletedAt sql.NullString

	err := row.Scan(
		&r.ID, &r.Name, &r.Domain, &r.Active, &priority, &r.Flexible, &constraintsJSON,
		&recType, &r.Recurrence.Interval, &r.Recurrence.ExcludeWeekends,
		&daysOfWeek, &daysOfMonth, &r.CreatedAt, &deletedAt,
	)
	if err != nil {
		return models.Routine{}, err
	}

	r.Priority = models.Priority(priority)
	r.Recurrence.Type = models.RecurrenceType(recType)

	// Constraint normalization happens here, at the storage boundary;
	// legacy shapes never reach the engine.
	if err := json.Unmarshal([]byte(constraintsJSON), &r.Constraints); err != nil {
		return models.Routine{}, fmt.Errorf("routine %s has invalid constraints: %w", r.ID, err)
	}

	if r.Recurrence.DaysOfWeek, err = decodeIntSet(daysOfWeek); err != nil {
		return models.Routine{}, fmt.Errorf("routine %s has invalid days_of_week: %w", r.ID, err)
	}
	if r.Recurrence.DaysOfMonth, err = decodeIntSet(daysOfMonth); err != nil {
		return models.Routine{}, fmt.Errorf("routine %s has invalid days_of_month: %w", r.ID, err)
	}

	if deletedAt.Valid {
		r.DeletedAt = &deletedAt.String
	}
	return r, nil
}

func encodeIntSet(vals []int) (sql.NullString, error) {
	if vals == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(vals)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func decodeIntSet(ns sql.NullString) ([]int, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	var vals []int
	if err := json.Unmarshal([]byte(ns.String), &vals); err != nil {
		return nil, err
	}
	return vals, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
