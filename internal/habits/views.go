package habits

import (
	"time"

	"github.com/julianstephens/habitflow/internal/models"
	"github.com/julianstephens/habitflow/internal/stats"
)

// Stats computes statistics for one habit.
func (s *Service) Stats(habitID string) (models.HabitStats, error) {
	habit, err := s.Get(habitID)
	if err != nil {
		return models.HabitStats{}, err
	}
	progress, err := s.Progress()
	if err != nil {
		return models.HabitStats{}, err
	}
	return s.engine.CalculateHabitStats(habit, progress)
}

// Dashboard computes the aggregate statistics over every habit of the owner.
func (s *Service) Dashboard() (models.DashboardStats, error) {
	habits, err := s.List(true)
	if err != nil {
		return models.DashboardStats{}, err
	}
	progress, err := s.Progress()
	if err != nil {
		return models.DashboardStats{}, err
	}
	return s.engine.CalculateDashboardStats(habits, progress)
}

// Week returns the seven-day strip ending today.
func (s *Service) Week(habitID string) ([]models.WeeklyDay, error) {
	habit, err := s.Get(habitID)
	if err != nil {
		return nil, err
	}
	progress, err := s.Progress()
	if err != nil {
		return nil, err
	}
	return s.engine.WeeklyProgress(habit, progress)
}

// Month returns the calendar grid of a habit for the given month.
func (s *Service) Month(habitID string, year int, month time.Month) (models.MonthView, error) {
	habit, err := s.Get(habitID)
	if err != nil {
		return models.MonthView{}, err
	}
	progress, err := s.Progress()
	if err != nil {
		return models.MonthView{}, err
	}
	return s.engine.MonthGrid(habit, progress, year, month)
}

// Summaries returns every listed habit with its stats and today's status.
func (s *Service) Summaries(includeInactive bool) ([]stats.HabitSummary, error) {
	habits, err := s.List(includeInactive)
	if err != nil {
		return nil, err
	}
	progress, err := s.Progress()
	if err != nil {
		return nil, err
	}
	return s.engine.Summaries(habits, progress)
}
