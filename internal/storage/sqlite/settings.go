package sqlite

import (
	"fmt"
	"strconv"

	"github.com/jdmerritt/planweave/internal/models"
)

func (s *Store) GetSettings() (models.Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	settings := models.Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		if err := applySetting(&settings, key, value); err != nil {
			return models.Settings{}, err
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}

	if count == 0 {
		return models.Settings{}, fmt.Errorf("settings not found")
	}

	return settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for key, value := range settingsPairs(settings) {
		_, err := tx.Exec(
			"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
			key, value,
		)
		if err != nil {
			return fmt.Errorf("failed to save setting %s: %w", key, err)
		}
	}

	return tx.Commit()
}

func applySetting(settings *models.Settings, key, value string) error {
	switch key {
	case "day_start":
		settings.DayStart = value
	case "day_end":
		settings.DayEnd = value
	case "lunch_start":
		settings.LunchStart = value
	case "lunch_duration_min":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("parsing lunch_duration_min: %w", err)
		}
		settings.LunchDurationMin = n
	case "timezone":
		settings.Timezone = value
	case "planner_mode":
		settings.PlannerMode = models.PlannerMode(value)
	case "augment_url":
		settings.AugmentURL = value
	case "augment_timeout_sec":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("parsing augment_timeout_sec: %w", err)
		}
		settings.AugmentTimeoutSec = n
	}
	return nil
}

func settingsPairs(settings models.Settings) map[string]string {
	return map[string]string{
		"day_start":           settings.DayStart,
		"day_end":             settings.DayEnd,
		"lunch_start":         settings.LunchStart,
		"lunch_duration_min":  strconv.Itoa(settings.LunchDurationMin),
		"timezone":            settings.Timezone,
		"planner_mode":        string(settings.PlannerMode),
		"augment_url":         settings.AugmentURL,
		"augment_timeout_sec": strconv.Itoa(settings.AugmentTimeoutSec),
	}
}
