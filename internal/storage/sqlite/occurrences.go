package sqlite

import (
	"fmt"

	"github.com/jdmerritt/planweave/internal/models"
)

// AddOccurrence inserts an occurrence, silently ignoring a duplicate
// (routine, date) pair. The unique index makes repeated generation for the
// same date safe even under concurrent callers.
func (s *Store) AddOccurrence(o models.Occurrence) error {
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO occurrences (id, routine_id, day, status, start_time, end_time)
		VALUES (?, ?, ?, ?, ?, ?)`,
		o.ID, o.RoutineID, o.Date, string(o.Status), o.Start, o.End,
	)
	return err
}

func (s *Store) GetOccurrence(id string) (models.Occurrence, error) {
	row := s.db.QueryRow(
		"SELECT id, routine_id, day, status, start_time, end_time FROM occurrences WHERE id = ?", id)

	var o models.Occurrence
	var status string
	if err := row.Scan(&o.ID, &o.RoutineID, &o.Date, &status, &o.Start, &o.End); err != nil {
		return models.Occurrence{}, err
	}
	o.Status = models.OccurrenceStatus(status)
	return o, nil
}

func (s *Store) GetOccurrencesForDate(date string) ([]models.Occurrence, error) {
	rows, err := s.db.Query(
		"SELECT id, routine_id, day, status, start_time, end_time FROM occurrences WHERE day = ? ORDER BY routine_id", date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var occurrences []models.Occurrence
	for rows.Next() {
		var o models.Occurrence
		var status string
		if err := rows.Scan(&o.ID, &o.RoutineID, &o.Date, &status, &o.Start, &o.End); err != nil {
			return nil, err
		}
		o.Status = models.OccurrenceStatus(status)
		occurrences = append(occurrences, o)
	}
	return occurrences, rows.Err()
}

func (s *Store) UpdateOccurrenceStatus(id string, status models.OccurrenceStatus) error {
	res, err := s.db.Exec("UPDATE occurrences SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("occurrence not found: %s", id)
	}
	return nil
}

func (s *Store) UpdateOccurrenceTimes(id, start, end string) error {
	res, err := s.db.Exec("UPDATE occurrences SET start_time = ?, end_time = ? WHERE id = ?", start, end, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("occurrence not found: %s", id)
	}
	return nil
}
