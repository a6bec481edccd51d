package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jdmerritt/planweave/internal/models"
)

// SavePlan replaces the stored plan for the date. Plans are only persisted
// after a fully successful allocation, so a replace never leaves a partial
// result behind.
func (s *Store) SavePlan(plan models.DayPlan) error {
	if plan.DeletedAt != nil {
		return fmt.Errorf("cannot save a plan with deleted_at set; use DeletePlan instead")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM slots WHERE plan_date = $1",
		"DELETE FROM unscheduled WHERE plan_date = $1",
		"DELETE FROM plans WHERE date = $1",
	} {
		if _, err := tx.Exec(stmt, plan.Date); err != nil {
			return err
		}
	}

	createdAt := plan.CreatedAt
	if createdAt == "" {
		createdAt = time.Now().UTC().Format(time.RFC3339)
	}
	if _, err := tx.Exec(
		"INSERT INTO plans (date, summary, created_at) VALUES ($1, $2, $3)",
		plan.Date, plan.Summary, createdAt,
	); err != nil {
		return err
	}

	for i, slot := range plan.Slots {
		if _, err := tx.Exec(`
			INSERT INTO slots (plan_date, position, item_type, item_id, start_time, end_time, fixed, reasoning)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			plan.Date, i, string(slot.ItemType), slot.ItemID, slot.Start, slot.End, slot.Fixed, slot.Reasoning,
		); err != nil {
			return fmt.Errorf("failed to save slot %d: %w", i, err)
		}
	}

	for i, u := range plan.Unscheduled {
		if _, err := tx.Exec(`
			INSERT INTO unscheduled (plan_date, position, item_id, item_type, reason)
			VALUES ($1, $2, $3, $4, $5)`,
			plan.Date, i, u.ItemID, string(u.ItemType), u.Reason,
		); err != nil {
			return fmt.Errorf("failed to save unscheduled item %d: %w", i, err)
		}
	}

	return tx.Commit()
}

func (s *Store) GetPlan(date string) (models.DayPlan, error) {
	plan := models.DayPlan{Date: date}

	var deletedAt sql.NullString
	err := s.db.QueryRow(
		"SELECT summary, created_at, deleted_at FROM plans WHERE date = $1", date,
	).Scan(&plan.Summary, &plan.CreatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DayPlan{}, fmt.Errorf("no plan found for %s", date)
	}
	if err != nil {
		return models.DayPlan{}, err
	}
	if deletedAt.Valid {
		return models.DayPlan{}, fmt.Errorf("no plan found for %s", date)
	}

	rows, err := s.db.Query(`
		SELECT item_type, item_id, start_time, end_time, fixed, reasoning
		FROM slots WHERE plan_date = $1 ORDER BY position`, date)
	if err != nil {
		return models.DayPlan{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var slot models.PlanSlot
		var itemType string
		if err := rows.Scan(&itemType, &slot.ItemID, &slot.Start, &slot.End, &slot.Fixed, &slot.Reasoning); err != nil {
			return models.DayPlan{}, err
		}
		slot.ItemType = models.ItemType(itemType)
		plan.Slots = append(plan.Slots, slot)
	}
	if err := rows.Err(); err != nil {
		return models.DayPlan{}, err
	}

	urows, err := s.db.Query(`
		SELECT item_id, item_type, reason
		FROM unscheduled WHERE plan_date = $1 ORDER BY position`, date)
	if err != nil {
		return models.DayPlan{}, err
	}
	defer urows.Close()

	for urows.Next() {
		var u models.UnscheduledItem
		var itemType string
		if err := urows.Scan(&u.ItemID, &itemType, &u.Reason); err != nil {
			return models.DayPlan{}, err
		}
		u.ItemType = models.ItemType(itemType)
		plan.Unscheduled = append(plan.Unscheduled, u)
	}
	if err := urows.Err(); err != nil {
		return models.DayPlan{}, err
	}

	return plan, nil
}

func (s *Store) DeletePlan(date string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec("UPDATE plans SET deleted_at = $1 WHERE date = $2 AND deleted_at IS NULL", now, date)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no plan found for %s", date)
	}
	return nil
}
