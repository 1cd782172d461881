package models

import "time"

// Habit is a recurring behavior the owner wants to perform on specific weekdays.
type Habit struct {
	ID          string `json:"id"`
	OwnerID     string `json:"userId,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`      // hex color, e.g. "#3B82F6"
	Icon        string `json:"icon"`       // member of the icon catalog, e.g. "Target"
	TargetDays  []int  `json:"targetDays"` // weekday numbers, 0 = Sunday
	CreatedAt   string `json:"createdAt"`  // RFC3339 timestamp
	IsActive    bool   `json:"isActive"`
}

// Targets reports whether the habit is scheduled on the given weekday.
func (h Habit) Targets(wd time.Weekday) bool {
	for _, d := range h.TargetDays {
		if d == int(wd) {
			return true
		}
	}
	return false
}

// Progress records whether a habit was completed on a given day.
type Progress struct {
	ID        string `json:"id"`
	OwnerID   string `json:"userId,omitempty"`
	HabitID   string `json:"habitId"`
	Date      string `json:"date"` // YYYY-MM-DD format
	Completed bool   `json:"completed"`
	Note      string `json:"note,omitempty"`
}

// HabitStats is derived from a single habit and its progress history.
type HabitStats struct {
	CurrentStreak    int     `json:"currentStreak"`
	LongestStreak    int     `json:"longestStreak"`
	TotalCompletions int     `json:"totalCompletions"`
	CompletionRate   float64 `json:"completionRate"` // percentage, 0-100
	WeeklyAverage    float64 `json:"weeklyAverage"`  // percentage, 0-100
}

// DashboardStats aggregates statistics over all of an owner's habits.
type DashboardStats struct {
	TotalHabits          int     `json:"totalHabits"`
	ActiveHabits         int     `json:"activeHabits"`
	TodayCompleted       int     `json:"todayCompleted"`
	TodayTotal           int     `json:"todayTotal"`
	WeeklyCompletionRate float64 `json:"weeklyCompletionRate"` // percentage, 0-100
	BestStreak           int     `json:"bestStreak"`
}

// WeeklyDay is one cell of the seven-day progress strip.
type WeeklyDay struct {
	Date      string `json:"date"` // YYYY-MM-DD format
	Label     string `json:"label"`
	IsTarget  bool   `json:"isTarget"`
	Completed bool   `json:"completed"`
}

// CalendarDay is one day of a month grid.
type CalendarDay struct {
	Day         int    `json:"day"`
	Date        string `json:"date"` // YYYY-MM-DD format
	IsTarget    bool   `json:"isTarget"`
	IsCompleted bool   `json:"isCompleted"`
	IsToday     bool   `json:"isToday"`
	IsFuture    bool   `json:"isFuture"`
}

// MonthView is a month grid for a single habit.
type MonthView struct {
	Year         int           `json:"year"`
	Month        time.Month    `json:"month"`
	LeadingBlank int           `json:"leadingBlank"` // weekday of the 1st, 0 = Sunday
	Days         []CalendarDay `json:"days"`
}

// ExportData is the document written by export and read by import.
type ExportData struct {
	Habits     []Habit    `json:"habits"`
	Progress   []Progress `json:"progress"`
	ExportDate string     `json:"exportDate"` // RFC3339 timestamp
}
