package stats

import (
	"testing"
	"time"

	"github.com/julianstephens/habitflow/internal/models"
)

func TestWeeklyProgress(t *testing.T) {
	e := engineAt(t, "2024-01-08")

	days, err := e.WeeklyProgress(mwfHabit(), done("h1", "2024-01-03", "2024-01-08", "2024-01-01"))
	if err != nil {
		t.Fatalf("WeeklyProgress() failed: %v", err)
	}
	if len(days) != 7 {
		t.Fatalf("len(days) = %d, want 7", len(days))
	}
	if days[0].Date != "2024-01-02" || days[0].Label != "Tue" {
		t.Errorf("first day = %+v, want Tue 2024-01-02", days[0])
	}
	if days[6].Date != "2024-01-08" || days[6].Label != "Mon" || !days[6].Completed {
		t.Errorf("last day = %+v, want completed Mon 2024-01-08", days[6])
	}
	if !days[1].Completed || !days[1].IsTarget {
		t.Errorf("2024-01-03 = %+v, want completed target day", days[1])
	}
	if days[2].IsTarget || days[2].Completed {
		t.Errorf("2024-01-04 = %+v, want idle non-target day", days[2])
	}
}

func TestMonthGrid(t *testing.T) {
	e := engineAt(t, "2024-01-08")

	view, err := e.MonthGrid(mwfHabit(), done("h1", "2024-01-01"), 2024, time.January)
	if err != nil {
		t.Fatalf("MonthGrid() failed: %v", err)
	}
	if view.LeadingBlank != 1 {
		t.Errorf("LeadingBlank = %d, want 1", view.LeadingBlank)
	}
	if len(view.Days) != 31 {
		t.Fatalf("len(Days) = %d, want 31", len(view.Days))
	}

	first := view.Days[0]
	if !first.IsTarget || !first.IsCompleted || first.IsToday || first.IsFuture {
		t.Errorf("Jan 1 = %+v", first)
	}
	today := view.Days[7]
	if today.Date != "2024-01-08" || !today.IsToday || today.IsFuture {
		t.Errorf("Jan 8 = %+v, want today", today)
	}
	if !view.Days[8].IsFuture {
		t.Errorf("Jan 9 = %+v, want future", view.Days[8])
	}

	feb, err := e.MonthGrid(mwfHabit(), nil, 2024, time.February)
	if err != nil {
		t.Fatalf("MonthGrid() failed: %v", err)
	}
	if len(feb.Days) != 29 || feb.LeadingBlank != 4 {
		t.Errorf("February 2024 = %d days, blank %d; want 29, 4", len(feb.Days), feb.LeadingBlank)
	}
}

func TestDaysActive(t *testing.T) {
	e := engineAt(t, "2024-01-08") // noon IST = 06:30 UTC

	got, err := e.DaysActive(mwfHabit())
	if err != nil {
		t.Fatalf("DaysActive() failed: %v", err)
	}
	if got != 8 {
		t.Errorf("DaysActive() = %d, want 8", got)
	}

	future := mwfHabit()
	future.CreatedAt = "2030-01-01T00:00:00Z"
	if got, _ := e.DaysActive(future); got != 0 {
		t.Errorf("DaysActive() for future habit = %d, want 0", got)
	}
}

func TestSummaries(t *testing.T) {
	e := engineAt(t, "2024-01-08")

	older := mwfHabit()
	newer := models.Habit{ID: "h2", Name: "Stretch", TargetDays: []int{2}, CreatedAt: "2024-01-05T00:00:00Z", IsActive: true}

	got, err := e.Summaries([]models.Habit{older, newer}, done("h1", "2024-01-08"))
	if err != nil {
		t.Fatalf("Summaries() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Habit.ID != "h2" {
		t.Errorf("first summary = %s, want newest habit h2", got[0].Habit.ID)
	}
	if got[0].DueToday || got[0].DoneToday {
		t.Errorf("h2 summary = %+v, want not due", got[0])
	}
	if !got[1].DueToday || !got[1].DoneToday || got[1].Stats.CurrentStreak != 1 {
		t.Errorf("h1 summary = %+v, want due, done and streak 1", got[1])
	}
}
