package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/models"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}

// DateKey formats t as YYYY-MM-DD using t's own calendar fields.
// No timezone conversion is applied.
func DateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDateKey parses a YYYY-MM-DD key into midnight of that day in loc.
// Keys that do not format back to the same string are rejected.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	if t.Format(constants.DateFormat) != key {
		return time.Time{}, fmt.Errorf("invalid date key %q: not in YYYY-MM-DD form", key)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// ValidateDateKey reports whether key is a well-formed date key.
func ValidateDateKey(key string) bool {
	_, err := ParseDateKey(key, time.UTC)
	return err == nil
}

// ParseMonth parses a YYYY-MM string.
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse(constants.MonthFormat, s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", s, err)
	}
	return t.Year(), t.Month(), nil
}

// AddDays returns the civil day n days after t (n may be negative).
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// WeekdayOf returns the weekday number of t, 0 = Sunday through 6 = Saturday.
func WeekdayOf(t time.Time) int {
	return int(t.Weekday())
}

// IsTargetDay reports whether the habit is scheduled on the weekday of t.
func IsTargetDay(habit models.Habit, t time.Time) bool {
	return habit.Targets(t.Weekday())
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month normalizes to the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekdayOfMonth returns the weekday number (0 = Sunday) of the 1st of the month.
func FirstWeekdayOfMonth(year int, month time.Month) int {
	return int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// SameDay reports whether a and b fall on the same calendar day in their own zones.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
