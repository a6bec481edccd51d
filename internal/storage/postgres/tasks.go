package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jdmerritt/planweave/internal/models"
)

const taskColumns = `id, title, status, priority, estimated_min, due_date,
	scheduled_date, scheduled_start, scheduled_end, deleted_at`

func (s *Store) AddTask(t models.Task) error {
	return s.UpdateTask(t)
}

func (s *Store) UpdateTask(t models.Task) error {
	_, err := s.db.Exec(`
		INSERT INTO tasks (`+taskColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			status = EXCLUDED.status,
			priority = EXCLUDED.priority,
			estimated_min = EXCLUDED.estimated_min,
			due_date = EXCLUDED.due_date,
			scheduled_date = EXCLUDED.scheduled_date,
			scheduled_start = EXCLUDED.scheduled_start,
			scheduled_end = EXCLUDED.scheduled_end,
			deleted_at = EXCLUDED.deleted_at`,
		t.ID, t.Title, string(t.Status), string(t.Priority), t.EstimatedMin, t.DueDate,
		t.ScheduledDate, t.ScheduledStart, t.ScheduledEnd, nullString(t.DeletedAt),
	)
	return err
}

func (s *Store) GetTask(id string) (models.Task, error) {
	row := s.db.QueryRow("SELECT "+taskColumns+" FROM tasks WHERE id = $1 AND deleted_at IS NULL", id)
	return scanTask(row)
}

func (s *Store) GetAllTasks() ([]models.Task, error) {
	return s.queryTasks("SELECT " + taskColumns + " FROM tasks WHERE deleted_at IS NULL ORDER BY id")
}

func (s *Store) GetOpenTasks() ([]models.Task, error) {
	return s.queryTasks(`
		SELECT ` + taskColumns + ` FROM tasks
		WHERE deleted_at IS NULL AND status NOT IN ('done', 'cancelled', 'archived')
		ORDER BY id`)
}

func (s *Store) DeleteTask(id string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec("UPDATE tasks SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL", now, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("task not found: %s", id)
	}
	return nil
}

func (s *Store) queryTasks(query string) ([]models.Task, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func scanTask(row scannable) (models.Task, error) {
	var t models.Task
	var status, priority string
	var deletedAt sql.NullString

	err := row.Scan(
		&t.ID, &t.Title, &status, &priority, &t.EstimatedMin, &t.DueDate,
		&t.ScheduledDate, &t.ScheduledStart, &t.ScheduledEnd, &deletedAt,
	)
	if err != nil {
		return models.Task{}, err
	}

	t.Status = models.TaskStatus(status)
	t.Priority = models.Priority(priority)
	if deletedAt.Valid {
		t.DeletedAt = &deletedAt.String
	}
	return t, nil
}
