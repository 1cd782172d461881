package utils

import (
	"fmt"
	"time"
)

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// Calendar resolves civil days in a single reference timezone.
// All "today" computations go through a Calendar so they can be pinned in tests.
type Calendar struct {
	loc   *time.Location
	clock Clock
}

// NewCalendar returns a Calendar for loc. A nil clock means the system clock.
func NewCalendar(loc *time.Location, clock Clock) *Calendar {
	if loc == nil {
		loc = time.Local
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Calendar{loc: loc, clock: clock}
}

// NewCalendarForTimezone loads the named timezone and returns a Calendar using the system clock.
func NewCalendarForTimezone(timezone string) (*Calendar, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return NewCalendar(loc, nil), nil
}

// Location returns the reference timezone.
func (c *Calendar) Location() *time.Location {
	return c.loc
}

// Now returns the current instant in the reference timezone.
func (c *Calendar) Now() time.Time {
	return c.clock.Now().In(c.loc)
}

// Today returns midnight of the current civil day in the reference timezone.
func (c *Calendar) Today() time.Time {
	return c.Midnight(c.clock.Now())
}

// TodayKey returns today's date key.
func (c *Calendar) TodayKey() string {
	return DateKey(c.Today())
}

// Midnight projects an instant into the reference timezone and truncates it to the day.
func (c *Calendar) Midnight(t time.Time) time.Time {
	t = t.In(c.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc)
}

// Project parses an RFC3339 instant and returns its civil day in the reference timezone.
func (c *Calendar) Project(instant string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, instant)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", instant, err)
	}
	return c.Midnight(t), nil
}

// ParseKey parses a date key in the reference timezone.
func (c *Calendar) ParseKey(key string) (time.Time, error) {
	return ParseDateKey(key, c.loc)
}
