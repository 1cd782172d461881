// Package stats derives streaks, completion rates and dashboard aggregates
// from habit definitions and their progress history. Every function is a pure
// read: results are recomputed from the records on each call and "today" comes
// from the injected calendar.
package stats

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/models"
	"github.com/julianstephens/habitflow/internal/utils"
)

// ErrMalformedDate is returned when a createdAt timestamp or a progress date key cannot be decoded.
var ErrMalformedDate = errors.New("malformed date")

// Engine computes statistics relative to a calendar's notion of today.
type Engine struct {
	cal *utils.Calendar
}

// New returns an Engine bound to cal.
func New(cal *utils.Calendar) *Engine {
	return &Engine{cal: cal}
}

// Calendar returns the calendar the engine resolves days with.
func (e *Engine) Calendar() *utils.Calendar {
	return e.cal
}

// history is one habit's progress keyed by date. When several entries share a
// date, the first one in input order is kept.
type history struct {
	byDate      map[string]models.Progress
	completions int
}

func (h history) completedOn(d time.Time) bool {
	p, ok := h.byDate[utils.DateKey(d)]
	return ok && p.Completed
}

func (e *Engine) historyFor(habitID string, all []models.Progress) (history, error) {
	h := history{byDate: make(map[string]models.Progress)}
	for _, p := range all {
		if p.HabitID != habitID {
			continue
		}
		if !utils.ValidateDateKey(p.Date) {
			return history{}, fmt.Errorf("%w: progress date %q for habit %s", ErrMalformedDate, p.Date, habitID)
		}
		if p.Completed {
			h.completions++
		}
		if _, seen := h.byDate[p.Date]; !seen {
			h.byDate[p.Date] = p
		}
	}
	return h, nil
}

func (e *Engine) createdDay(habit models.Habit) (time.Time, error) {
	d, err := e.cal.Project(habit.CreatedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: habit %s: %v", ErrMalformedDate, habit.ID, err)
	}
	return d, nil
}

// CalculateHabitStats computes the statistics for one habit. Entries belonging
// to other habits are ignored.
func (e *Engine) CalculateHabitStats(habit models.Habit, allProgress []models.Progress) (models.HabitStats, error) {
	h, err := e.historyFor(habit.ID, allProgress)
	if err != nil {
		return models.HabitStats{}, err
	}
	created, err := e.createdDay(habit)
	if err != nil {
		return models.HabitStats{}, err
	}
	today := e.cal.Today()

	return models.HabitStats{
		CurrentStreak:    currentStreak(habit, h, today),
		LongestStreak:    longestStreak(habit, h, created, today),
		TotalCompletions: h.completions,
		CompletionRate:   rate(habit, h, created, today),
		WeeklyAverage:    rate(habit, h, utils.AddDays(today, -constants.WeeklyWindowDays), today),
	}, nil
}

// rate is the percentage of target days in [from, to] that were completed, or 0
// when the range holds no target day.
func rate(habit models.Habit, h history, from, to time.Time) float64 {
	targets, done := 0, 0
	for d := from; !d.After(to); d = utils.AddDays(d, 1) {
		if !utils.IsTargetDay(habit, d) {
			continue
		}
		targets++
		if h.completedOn(d) {
			done++
		}
	}
	if targets == 0 {
		return 0
	}
	return float64(done) / float64(targets) * 100
}

func longestStreak(habit models.Habit, h history, from, to time.Time) int {
	longest, run := 0, 0
	for d := from; !d.After(to); d = utils.AddDays(d, 1) {
		if !utils.IsTargetDay(habit, d) {
			continue
		}
		if h.completedOn(d) {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return longest
}

// currentStreak walks backward from today. Non-target days are skipped, an
// unfinished today is skipped, and the first other missed target day ends the walk.
// A week without a target day means the set holds no valid weekday.
func currentStreak(habit models.Habit, h history, today time.Time) int {
	if len(habit.TargetDays) == 0 {
		return 0
	}
	streak, idle := 0, 0
	for d := today; ; d = utils.AddDays(d, -1) {
		if !utils.IsTargetDay(habit, d) {
			if idle++; idle >= 7 {
				return streak
			}
			continue
		}
		idle = 0
		if h.completedOn(d) {
			streak++
			continue
		}
		if d.Equal(today) {
			continue
		}
		return streak
	}
}

// CalculateDashboardStats aggregates today's completion, the best current
// streak and the mean weekly average across active habits.
func (e *Engine) CalculateDashboardStats(habits []models.Habit, allProgress []models.Progress) (models.DashboardStats, error) {
	today := e.cal.Today()
	todayKey := utils.DateKey(today)

	out := models.DashboardStats{TotalHabits: len(habits)}
	weeklySum := 0.0

	for _, habit := range habits {
		if !habit.IsActive {
			continue
		}
		out.ActiveHabits++

		if utils.IsTargetDay(habit, today) {
			out.TodayTotal++
			if completedOnKey(habit.ID, todayKey, allProgress) {
				out.TodayCompleted++
			}
		}

		s, err := e.CalculateHabitStats(habit, allProgress)
		if err != nil {
			return models.DashboardStats{}, err
		}
		out.BestStreak = max(out.BestStreak, s.CurrentStreak)
		weeklySum += s.WeeklyAverage
	}

	if out.ActiveHabits > 0 {
		out.WeeklyCompletionRate = weeklySum / float64(out.ActiveHabits)
	}
	return out, nil
}

// completedOnKey finds the first entry for (habitID, key) and reports its completion flag.
func completedOnKey(habitID, key string, all []models.Progress) bool {
	for _, p := range all {
		if p.HabitID == habitID && p.Date == key {
			return p.Completed
		}
	}
	return false
}
