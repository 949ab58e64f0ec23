package dateutil

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the ISO calendar date layout
	DateLayout = "2006-01-02"

	// DateTimeLayout is the day-first layout used for CLI input and output
	// Example: 24-05-2004 18:05
	DateTimeLayout = "02-01-2006 15:04"
)

// AtClock returns the given date pinned to hour:minute, seconds dropped
func AtClock(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}

// TruncateToMinute drops seconds and sub-second precision
func TruncateToMinute(date time.Time) time.Time {
	return AtClock(date, date.Hour(), date.Minute())
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// ParseDate parses date string in various formats
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		DateLayout,
		"02.01.2006",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05-0700",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date: %q", dateStr)
}

// ParseDateTime parses a timestamp.
// Accepts DD-MM-YYYY HH:MM, YYYY-MM-DD HH:MM and any ParseDate format.
// Input without a zone is read in local time, zoned input keeps its offset.
func ParseDateTime(value string) (time.Time, error) {
	localLayouts := []string{
		DateTimeLayout,
		"2006-01-02 15:04",
		DateLayout,
		"02.01.2006",
		"2006-01-02T15:04:05",
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}

	return ParseDate(value)
}

// ParseClock parses HH:MM into hour and minute (0-23, 0-59)
func ParseClock(value string) (hour, minute int, err error) {
	if _, err := fmt.Sscanf(value, "%d:%d", &hour, &minute); err != nil {
		return 0, 0, fmt.Errorf("invalid time of day %q: %w", value, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time of day out of range: %q", value)
	}
	return hour, minute, nil
}

// ParseMonthDay parses MM-DD into a month and day.
// The day is checked against a leap year so 02-29 is accepted.
func ParseMonthDay(value string) (time.Month, int, error) {
	t, err := time.Parse("2006-01-02", "2000-"+value)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month-day %q: %w", value, err)
	}
	return t.Month(), t.Day(), nil
}

// FormatDateTime formats a timestamp as DD-MM-YYYY HH:MM
func FormatDateTime(date time.Time) string {
	return date.Format(DateTimeLayout)
}
