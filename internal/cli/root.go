package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jdmerritt/planweave/internal/constants"
	"github.com/jdmerritt/planweave/internal/models"
	"github.com/jdmerritt/planweave/internal/planner"
	"github.com/jdmerritt/planweave/internal/planner/augment"
	"github.com/jdmerritt/planweave/internal/storage"
	"github.com/jdmerritt/planweave/internal/utils"
)

type Context struct {
	Store storage.Provider
}

// LockDir is where per-date generation lockfiles live. The sqlite config
// directory works for the common case; with a postgres backend the lock
// still has to live on the local filesystem.
func (c *Context) LockDir() string {
	path := c.Store.GetConfigPath()
	if !storage.IsPostgresConnString(path) {
		return filepath.Join(filepath.Dir(path), "locks")
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, constants.AppName, "locks")
	}
	return filepath.Join(os.TempDir(), constants.AppName+"-locks")
}

// SettingsOrDefaults loads preferences, falling back to the documented
// defaults (07:00-22:00 day, builtin planner) when none are stored yet.
func (c *Context) SettingsOrDefaults() models.Settings {
	settings, err := c.Store.GetSettings()
	if err != nil || settings.DayStart == "" {
		return models.Settings{
			DayStart:          constants.DefaultDayStart,
			DayEnd:            constants.DefaultDayEnd,
			Timezone:          "Local",
			PlannerMode:       models.PlannerBuiltin,
			AugmentTimeoutSec: constants.DefaultAugmentTimeoutSec,
		}
	}
	return settings
}

// BuildAllocator selects the placement strategy from settings. The greedy
// allocator is always the fallback, so augmentation being configured can
// never change the output contract.
func BuildAllocator(settings models.Settings) planner.Allocator {
	greedy := planner.NewGreedy()
	if settings.PlannerMode == models.PlannerAugmented && settings.AugmentURL != "" {
		timeout := time.Duration(settings.AugmentTimeoutSec) * time.Second
		if timeout <= 0 {
			timeout = constants.DefaultAugmentTimeoutSec * time.Second
		}
		return augment.New(settings.AugmentURL, timeout, greedy)
	}
	return greedy
}

// DayBounds converts the preference strings into allocator minutes.
func DayBounds(settings models.Settings) (start, end int, err error) {
	start, err = utils.ParseTimeToMinutes(settings.DayStart)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid day start %q: %w", settings.DayStart, err)
	}
	end, err = utils.ParseTimeToMinutes(settings.DayEnd)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid day end %q: %w", settings.DayEnd, err)
	}
	if start >= end {
		return 0, 0, fmt.Errorf("day start %s must be before day end %s", settings.DayStart, settings.DayEnd)
	}
	return start, end, nil
}

// LunchInterval returns the reserved lunch break, or nil when disabled.
func LunchInterval(settings models.Settings) (*planner.Interval, error) {
	if settings.LunchStart == "" || settings.LunchDurationMin <= 0 {
		return nil, nil
	}
	start, err := utils.ParseTimeToMinutes(settings.LunchStart)
	if err != nil {
		return nil, fmt.Errorf("invalid lunch start %q: %w", settings.LunchStart, err)
	}
	return &planner.Interval{Start: start, End: start + settings.LunchDurationMin}, nil
}

// ResolveDate turns an optional date argument into YYYY-MM-DD, defaulting
// to today in the configured timezone.
func (c *Context) ResolveDate(arg string, settings models.Settings) (string, error) {
	if arg == "" || arg == "today" {
		return utils.GetTodayInTimezone(settings.Timezone)
	}
	if !utils.ValidateDateFormat(arg) {
		return "", fmt.Errorf("invalid date format %q, use YYYY-MM-DD or 'today'", arg)
	}
	return arg, nil
}

// ParseWeekdays parses a comma-separated list of weekday names or numbers
// (0=Sunday .. 6=Saturday) into a sorted, de-duplicated set.
func ParseWeekdays(s string) ([]int, error) {
	dayMap := map[string]int{
		"sun": 0, "sunday": 0,
		"mon": 1, "monday": 1,
		"tue": 2, "tuesday": 2,
		"wed": 3, "wednesday": 3,
		"thu": 4, "thursday": 4,
		"fri": 5, "friday": 5,
		"sat": 6, "saturday": 6,
	}

	seen := make(map[int]bool)
	var weekdays []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		day, ok := dayMap[part]
		if !ok {
			num, err := strconv.Atoi(part)
			if err != nil || num < 0 || num > 6 {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
			day = num
		}
		if !seen[day] {
			seen[day] = true
			weekdays = append(weekdays, day)
		}
	}
	sort.Ints(weekdays)
	return weekdays, nil
}

// ParseMonthDays parses a comma-separated list of month days (1-31).
func ParseMonthDays(s string) ([]int, error) {
	seen := make(map[int]bool)
	var days []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		num, err := strconv.Atoi(part)
		if err != nil || num < 1 || num > 31 {
			return nil, fmt.Errorf("invalid month day: %s", part)
		}
		if !seen[num] {
			seen[num] = true
			days = append(days, num)
		}
	}
	sort.Ints(days)
	return days, nil
}

// FormatRecurrence formats a recurrence rule into a human-readable string
func FormatRecurrence(rec models.Recurrence) string {
	switch rec.Type {
	case models.RecurrenceDaily, models.RecurrenceCustom:
		out := "daily"
		if rec.Interval > 1 {
			out = fmt.Sprintf("every %d days", rec.Interval)
		}
		if rec.ExcludeWeekends {
			out += ", weekdays only"
		}
		return out
	case models.RecurrenceWeekly:
		if len(rec.DaysOfWeek) > 0 {
			names := make([]string, len(rec.DaysOfWeek))
			for i, d := range rec.DaysOfWeek {
				names[i] = time.Weekday(d).String()[:3]
			}
			return fmt.Sprintf("weekly on %s", strings.Join(names, ","))
		}
		if rec.Interval > 1 {
			return fmt.Sprintf("every %d weeks", rec.Interval)
		}
		return "weekly"
	case models.RecurrenceMonthly:
		if len(rec.DaysOfMonth) > 0 {
			parts := make([]string, len(rec.DaysOfMonth))
			for i, d := range rec.DaysOfMonth {
				parts[i] = strconv.Itoa(d)
			}
			return fmt.Sprintf("monthly on day %s", strings.Join(parts, ","))
		}
		if rec.Interval > 1 {
			return fmt.Sprintf("every %d months", rec.Interval)
		}
		return "monthly"
	default:
		return "unknown"
	}
}
