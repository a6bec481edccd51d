package utils

import (
	"fmt"
	"time"

	"github.com/jdmerritt/planweave/internal/constants"
)

// GetTodayInTimezone returns today's date string (YYYY-MM-DD) in the specified timezone.
// This ensures that "today" is determined by the user's configured timezone, not the system timezone.
func GetTodayInTimezone(timezone string) (string, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return "", fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc).Format(constants.DateFormat), nil
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatMinutes renders minutes-from-midnight as an HH:MM string.
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseDate parses a date string in the standard format (YYYY-MM-DD).
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(constants.DateFormat, dateStr)
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// ValidateDateFormat checks if the string matches the standard date format.
func ValidateDateFormat(dateStr string) bool {
	_, err := ParseDate(dateStr)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
