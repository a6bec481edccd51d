package postgres

import (
	"fmt"

	"github.com/jdmerritt/planweave/internal/models"
)

// AddOccurrence inserts an occurrence. ON CONFLICT DO NOTHING on the
// (routine_id, day) unique index rejects the second of two racing inserts,
// which keeps generation idempotent even across machines.
func (s *Store) AddOccurrence(o models.Occurrence) error {
	_, err := s.db.Exec(`
		INSERT INTO occurrences (id, routine_id, day, status, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (routine_id, day) DO NOTHING`,
		o.ID, o.RoutineID, o.Date, string(o.Status), o.Start, o.End,
	)
	return err
}

func (s *Store) GetOccurrence(id string) (models.Occurrence, error) {
	row := s.db.QueryRow(
		"SELECT id, routine_id, day, status, start_time, end_time FROM occurrences WHERE id = $1", id)

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
		"SELECT id, routine_id, day, status, start_time, end_time FROM occurrences WHERE day = $1 ORDER BY routine_id", date)
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
	res, err := s.db.Exec("UPDATE occurrences SET status = $1 WHERE id = $2", string(status), id)
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
	res, err := s.db.Exec("UPDATE occurrences SET start_time = $1, end_time = $2 WHERE id = $3", start, end, id)
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
