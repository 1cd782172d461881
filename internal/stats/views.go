package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/julianstephens/habitflow/internal/models"
	"github.com/julianstephens/habitflow/internal/utils"
)

// HabitSummary bundles a habit with its statistics and today's status.
type HabitSummary struct {
	Habit     models.Habit      `json:"habit"`
	Stats     models.HabitStats `json:"stats"`
	DueToday  bool              `json:"dueToday"`
	DoneToday bool              `json:"doneToday"`
}

// WeeklyProgress returns the seven days ending today, oldest first.
func (e *Engine) WeeklyProgress(habit models.Habit, allProgress []models.Progress) ([]models.WeeklyDay, error) {
	h, err := e.historyFor(habit.ID, allProgress)
	if err != nil {
		return nil, err
	}
	today := e.cal.Today()

	days := make([]models.WeeklyDay, 0, 7)
	for i := 6; i >= 0; i-- {
		d := utils.AddDays(today, -i)
		days = append(days, models.WeeklyDay{
			Date:      utils.DateKey(d),
			Label:     utils.ShortWeekdays[d.Weekday()],
			IsTarget:  utils.IsTargetDay(habit, d),
			Completed: h.completedOn(d),
		})
	}
	return days, nil
}

// MonthGrid lays out one month for a habit, marking target, completed, today and future days.
func (e *Engine) MonthGrid(habit models.Habit, allProgress []models.Progress, year int, month time.Month) (models.MonthView, error) {
	h, err := e.historyFor(habit.ID, allProgress)
	if err != nil {
		return models.MonthView{}, err
	}
	loc := e.cal.Location()
	today := e.cal.Today()

	n := utils.DaysInMonth(year, month)
	view := models.MonthView{
		Year:         year,
		Month:        month,
		LeadingBlank: utils.FirstWeekdayOfMonth(year, month),
		Days:         make([]models.CalendarDay, 0, n),
	}
	for day := 1; day <= n; day++ {
		d := time.Date(year, month, day, 0, 0, 0, 0, loc)
		view.Days = append(view.Days, models.CalendarDay{
			Day:         day,
			Date:        utils.DateKey(d),
			IsTarget:    utils.IsTargetDay(habit, d),
			IsCompleted: h.completedOn(d),
			IsToday:     d.Equal(today),
			IsFuture:    d.After(today),
		})
	}
	return view, nil
}

// DaysActive is the number of started days since the habit was created, rounded up.
func (e *Engine) DaysActive(habit models.Habit) (int, error) {
	created, err := time.Parse(time.RFC3339, habit.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("%w: habit %s: %v", ErrMalformedDate, habit.ID, err)
	}
	elapsed := e.cal.Now().Sub(created)
	if elapsed <= 0 {
		return 0, nil
	}
	return int(math.Ceil(elapsed.Hours() / 24)), nil
}

// Summaries computes a HabitSummary for every habit, newest first.
func (e *Engine) Summaries(habits []models.Habit, allProgress []models.Progress) ([]HabitSummary, error) {
	today := e.cal.Today()
	todayKey := utils.DateKey(today)

	out := make([]HabitSummary, 0, len(habits))
	for _, habit := range habits {
		s, err := e.CalculateHabitStats(habit, allProgress)
		if err != nil {
			return nil, err
		}
		out = append(out, HabitSummary{
			Habit:     habit,
			Stats:     s,
			DueToday:  utils.IsTargetDay(habit, today),
			DoneToday: completedOnKey(habit.ID, todayKey, allProgress),
		})
	}
	SortNewestFirst(out)
	return out, nil
}

// SortNewestFirst orders summaries by creation time, most recent first.
func SortNewestFirst(s []HabitSummary) {
	sort.SliceStable(s, func(i, j int) bool {
		return createdAfter(s[i].Habit, s[j].Habit)
	})
}

// SortHabitsNewestFirst orders habits by creation time, most recent first.
func SortHabitsNewestFirst(habits []models.Habit) {
	sort.SliceStable(habits, func(i, j int) bool {
		return createdAfter(habits[i], habits[j])
	})
}

func createdAfter(a, b models.Habit) bool {
	ta, errA := time.Parse(time.RFC3339, a.CreatedAt)
	tb, errB := time.Parse(time.RFC3339, b.CreatedAt)
	if errA != nil || errB != nil {
		// unparseable timestamps sort lexically
		return a.CreatedAt > b.CreatedAt
	}
	return ta.After(tb)
}
