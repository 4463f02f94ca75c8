package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/vanguard/internal/constants"
	"github.com/julianstephens/vanguard/internal/models"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// LocationFromSettings returns the configured timezone location.
func LocationFromSettings(settings models.Settings) (*time.Location, error) {
	return LoadLocation(settings.Timezone)
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DayKey returns the YYYY-MM-DD key of t's calendar day in loc.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(constants.DateFormat)
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) in the specified timezone.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// AddDays shifts a YYYY-MM-DD key by n calendar days.
func AddDays(day string, n int) (string, error) {
	t, err := time.Parse(constants.DateFormat, day)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(constants.DateFormat), nil
}

// TrailingWindow returns the first and last day keys of a window of size days
// ending on (and including) now's calendar day in loc.
func TrailingWindow(now time.Time, loc *time.Location, size int) (start, end string) {
	today := StartOfDay(now, loc)
	return today.AddDate(0, 0, -(size - 1)).Format(constants.DateFormat), today.Format(constants.DateFormat)
}

// ISOWeekStart returns Monday 00:00 of t's ISO week in loc.
func ISOWeekStart(t time.Time, loc *time.Location) time.Time {
	day := StartOfDay(t, loc)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

// MonthBounds returns the first and last day keys of a calendar month.
func MonthBounds(year int, month time.Month) (start, end string) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format(constants.DateFormat), last.Format(constants.DateFormat)
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}

var userHomeDir = os.UserHomeDir

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if len(path) < 2 || path[:2] != "~/" {
		return path, nil
	}
	home, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return home + path[1:], nil
}
