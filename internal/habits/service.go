// Package habits implements the write-side use cases for habits and progress
// and exposes the derived views the presentation layers render.
package habits

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitflow/internal/logger"
	"github.com/julianstephens/habitflow/internal/models"
	"github.com/julianstephens/habitflow/internal/stats"
	"github.com/julianstephens/habitflow/internal/storage"
	"github.com/julianstephens/habitflow/internal/utils"
	"github.com/julianstephens/habitflow/internal/validation"
)

var (
	// ErrDuplicateName is returned when an owner already has a habit with the same name
	ErrDuplicateName = errors.New("habit name already exists")
	// ErrInvalidDate is returned for date keys that are not real YYYY-MM-DD days
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)

// Service runs habit use cases for a single owner.
type Service struct {
	store   storage.Provider
	engine  *stats.Engine
	ownerID string
}

func New(store storage.Provider, engine *stats.Engine, ownerID string) *Service {
	return &Service{
		store:   store,
		engine:  engine,
		ownerID: ownerID,
	}
}

// WithOwner returns a service bound to another owner sharing the same store and engine.
func (s *Service) WithOwner(ownerID string) *Service {
	return New(s.store, s.engine, ownerID)
}

func (s *Service) OwnerID() string {
	return s.ownerID
}

func (s *Service) Engine() *stats.Engine {
	return s.engine
}

func (s *Service) Calendar() *utils.Calendar {
	return s.engine.Calendar()
}

// HabitInput describes a habit to create.
type HabitInput struct {
	Name        string
	Description string
	Color       string // palette name or #RRGGBB, settings default when empty
	Icon        string // icon name, settings default when empty
	TargetDays  []int
}

// HabitPatch lists the fields to change on an existing habit. Nil fields are left alone.
type HabitPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Icon        *string `json:"icon"`
	TargetDays  *[]int  `json:"targetDays"`
	IsActive    *bool   `json:"isActive"`
}

func resolveAppearance(color, icon string) (string, string, error) {
	if color != "" {
		resolved, ok := models.ResolveColor(color)
		if !ok {
			return "", "", fmt.Errorf("%w: unknown color %q", validation.ErrInvalidHabit, color)
		}
		color = resolved
	}
	if icon != "" {
		resolved, ok := models.ResolveIcon(icon)
		if !ok {
			return "", "", fmt.Errorf("%w: unknown icon %q", validation.ErrInvalidHabit, icon)
		}
		icon = resolved
	}
	return color, icon, nil
}

func normalizeDays(days []int) []int {
	seen := make(map[int]bool, len(days))
	out := make([]int, 0, len(days))
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Ints(out)
	return out
}

// Create validates and stores a new active habit.
func (s *Service) Create(in HabitInput) (models.Habit, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to load settings: %w", err)
	}
	if in.Color == "" {
		in.Color = settings.DefaultColor
	}
	if in.Icon == "" {
		in.Icon = settings.DefaultIcon
	}
	color, icon, err := resolveAppearance(in.Color, in.Icon)
	if err != nil {
		return models.Habit{}, err
	}

	habit := models.Habit{
		ID:          uuid.New().String(),
		OwnerID:     s.ownerID,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Color:       color,
		Icon:        icon,
		TargetDays:  normalizeDays(in.TargetDays),
		CreatedAt:   s.Calendar().Now().UTC().Format(time.RFC3339),
		IsActive:    true,
	}
	if err := validation.ValidateHabit(habit); err != nil {
		return models.Habit{}, err
	}
	if err := s.ensureUniqueName(habit.Name, ""); err != nil {
		return models.Habit{}, err
	}

	if err := s.store.AddHabit(habit); err != nil {
		return models.Habit{}, fmt.Errorf("failed to add habit: %w", err)
	}
	logger.Info("Habit created", "id", habit.ID, "name", habit.Name, "owner", s.ownerID)
	return habit, nil
}

func (s *Service) ensureUniqueName(name, exceptID string) error {
	existing, err := s.store.GetHabitByName(s.ownerID, name)
	if err == nil && existing.ID != exceptID {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	return nil
}

// Get returns a habit owned by the service's owner.
func (s *Service) Get(id string) (models.Habit, error) {
	habit, err := s.store.GetHabit(id)
	if err != nil {
		return models.Habit{}, err
	}
	if habit.OwnerID != s.ownerID {
		return models.Habit{}, fmt.Errorf("habit %s: %w", id, storage.ErrNotFound)
	}
	return habit, nil
}

// Resolve finds a habit by ID or, failing that, by case-insensitive name.
func (s *Service) Resolve(ref string) (models.Habit, error) {
	if habit, err := s.Get(ref); err == nil {
		return habit, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.Habit{}, err
	}

	habit, err := s.store.GetHabitByName(s.ownerID, ref)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Habit{}, fmt.Errorf("habit %q: %w", ref, storage.ErrNotFound)
		}
		return models.Habit{}, err
	}
	return habit, nil
}

// List returns the owner's habits, newest first.
func (s *Service) List(includeInactive bool) ([]models.Habit, error) {
	all, err := s.store.ListHabits(s.ownerID)
	if err != nil {
		return nil, err
	}
	habits := make([]models.Habit, 0, len(all))
	for _, h := range all {
		if h.IsActive || includeInactive {
			habits = append(habits, h)
		}
	}
	stats.SortHabitsNewestFirst(habits)
	return habits, nil
}

// Progress returns every progress entry of the owner.
func (s *Service) Progress() ([]models.Progress, error) {
	return s.store.ListProgress(s.ownerID)
}

// Update applies patch to the habit. ID and creation time never change.
func (s *Service) Update(id string, patch HabitPatch) (models.Habit, error) {
	habit, err := s.Get(id)
	if err != nil {
		return models.Habit{}, err
	}

	renamed := false
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		renamed = !strings.EqualFold(name, habit.Name)
		habit.Name = name
	}
	if patch.Description != nil {
		habit.Description = strings.TrimSpace(*patch.Description)
	}
	color, icon := habit.Color, habit.Icon
	if patch.Color != nil {
		color = *patch.Color
	}
	if patch.Icon != nil {
		icon = *patch.Icon
	}
	if habit.Color, habit.Icon, err = resolveAppearance(color, icon); err != nil {
		return models.Habit{}, err
	}
	if patch.TargetDays != nil {
		habit.TargetDays = normalizeDays(*patch.TargetDays)
	}
	if patch.IsActive != nil {
		habit.IsActive = *patch.IsActive
	}

	if err := validation.ValidateHabit(habit); err != nil {
		return models.Habit{}, err
	}
	if renamed {
		if err := s.ensureUniqueName(habit.Name, habit.ID); err != nil {
			return models.Habit{}, err
		}
	}

	if err := s.store.UpdateHabit(habit); err != nil {
		return models.Habit{}, fmt.Errorf("failed to update habit: %w", err)
	}
	logger.Info("Habit updated", "id", habit.ID, "name", habit.Name)
	return habit, nil
}

// SetActive activates or deactivates a habit.
func (s *Service) SetActive(id string, active bool) (models.Habit, error) {
	return s.Update(id, HabitPatch{IsActive: &active})
}

// Delete removes the habit together with all of its progress.
func (s *Service) Delete(id string) error {
	habit, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteHabit(habit.ID); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	logger.Info("Habit deleted", "id", habit.ID, "name", habit.Name)
	return nil
}

func (s *Service) checkDate(date string) (string, error) {
	if date == "" {
		return s.Calendar().TodayKey(), nil
	}
	if !utils.ValidateDateKey(date) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return date, nil
}

// Toggle flips completion for the habit on date (today when empty). A missing
// entry is created as completed. An empty note keeps the existing note.
func (s *Service) Toggle(habitID, date, note string) (models.Progress, error) {
	habit, err := s.Get(habitID)
	if err != nil {
		return models.Progress{}, err
	}
	if date, err = s.checkDate(date); err != nil {
		return models.Progress{}, err
	}

	entry, err := s.store.GetProgress(habit.ID, date)
	switch {
	case err == nil:
		entry.Completed = !entry.Completed
		if note != "" {
			entry.Note = note
		}
	case errors.Is(err, storage.ErrNotFound):
		entry = s.newEntry(habit.ID, date, true, note)
	default:
		return models.Progress{}, err
	}

	saved, err := s.store.UpsertProgress(entry)
	if err != nil {
		return models.Progress{}, fmt.Errorf("failed to save progress: %w", err)
	}
	logger.Debug("Progress toggled", "habit", habit.Name, "date", date, "completed", saved.Completed)
	return saved, nil
}

// SetProgress records an explicit completion state for the habit on date.
// An empty note keeps the existing note.
func (s *Service) SetProgress(habitID, date string, completed bool, note string) (models.Progress, error) {
	habit, err := s.Get(habitID)
	if err != nil {
		return models.Progress{}, err
	}
	if date, err = s.checkDate(date); err != nil {
		return models.Progress{}, err
	}

	entry, err := s.store.GetProgress(habit.ID, date)
	switch {
	case err == nil:
		entry.Completed = completed
		if note != "" {
			entry.Note = note
		}
	case errors.Is(err, storage.ErrNotFound):
		entry = s.newEntry(habit.ID, date, completed, note)
	default:
		return models.Progress{}, err
	}

	saved, err := s.store.UpsertProgress(entry)
	if err != nil {
		return models.Progress{}, fmt.Errorf("failed to save progress: %w", err)
	}
	logger.Debug("Progress set", "habit", habit.Name, "date", date, "completed", saved.Completed)
	return saved, nil
}

func (s *Service) newEntry(habitID, date string, completed bool, note string) models.Progress {
	return models.Progress{
		ID:        uuid.New().String(),
		OwnerID:   s.ownerID,
		HabitID:   habitID,
		Date:      date,
		Completed: completed,
		Note:      note,
	}
}

// RecentProgress returns entries dated within the last days days (today
// included), newest first. habitID narrows the result when non-empty.
func (s *Service) RecentProgress(days int, habitID string) ([]models.Progress, error) {
	all, err := s.Progress()
	if err != nil {
		return nil, err
	}
	if days < 1 {
		days = 1
	}
	today := s.Calendar().Today()
	from := utils.DateKey(utils.AddDays(today, -(days - 1)))
	to := utils.DateKey(today)

	entries := []models.Progress{}
	for _, p := range all {
		if habitID != "" && p.HabitID != habitID {
			continue
		}
		// date keys sort lexically
		if p.Date >= from && p.Date <= to {
			entries = append(entries, p)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date > entries[j].Date })
	return entries, nil
}
