package habits

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitflow/internal/logger"
	"github.com/julianstephens/habitflow/internal/models"
	"github.com/julianstephens/habitflow/internal/storage"
	"github.com/julianstephens/habitflow/internal/validation"
)

// ImportResult counts the records written by Import.
type ImportResult struct {
	Habits   int
	Progress int
}

// Export snapshots every habit and progress entry of the owner.
func (s *Service) Export() (models.ExportData, error) {
	habits, err := s.List(true)
	if err != nil {
		return models.ExportData{}, err
	}
	progress, err := s.Progress()
	if err != nil {
		return models.ExportData{}, err
	}
	return models.ExportData{
		Habits:     habits,
		Progress:   progress,
		ExportDate: s.Calendar().Now().UTC().Format(time.RFC3339),
	}, nil
}

// Import upserts exported habits and progress into the owner's collections.
// Everything is validated before the first write. Records keep their IDs;
// habits without an ID or creation time get fresh ones.
func (s *Service) Import(data models.ExportData) (ImportResult, error) {
	result := ImportResult{}
	now := s.Calendar().Now().UTC().Format(time.RFC3339)

	habits := make([]models.Habit, len(data.Habits))
	idMap := make(map[string]string, len(data.Habits))
	seen := make(map[string]bool, len(data.Habits))
	for i, h := range data.Habits {
		original := h.ID
		if h.ID == "" {
			h.ID = uuid.New().String()
		}
		if h.CreatedAt == "" {
			h.CreatedAt = now
		}
		color, icon, err := resolveAppearance(h.Color, h.Icon)
		if err != nil {
			return result, fmt.Errorf("habit %q: %w", h.Name, err)
		}
		h.Color, h.Icon = color, icon
		h.TargetDays = normalizeDays(h.TargetDays)
		h.OwnerID = s.ownerID
		if err := validation.ValidateHabit(h); err != nil {
			return result, fmt.Errorf("habit %q: %w", h.Name, err)
		}
		folded := strings.ToLower(h.Name)
		if seen[folded] {
			return result, fmt.Errorf("%w: %q appears more than once", ErrDuplicateName, h.Name)
		}
		seen[folded] = true
		if err := s.ensureUniqueName(h.Name, h.ID); err != nil {
			return result, err
		}
		if original != "" {
			idMap[original] = h.ID
		}
		habits[i] = h
	}

	progress := make([]models.Progress, len(data.Progress))
	for i, p := range data.Progress {
		if err := validation.ValidateProgress(p); err != nil {
			return result, fmt.Errorf("%w: %v", ErrInvalidDate, err)
		}
		if mapped, ok := idMap[p.HabitID]; ok {
			p.HabitID = mapped
		} else if _, err := s.Get(p.HabitID); err != nil {
			return result, fmt.Errorf("progress on %s: %w", p.Date, err)
		}
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		p.OwnerID = s.ownerID
		progress[i] = p
	}

	for _, h := range habits {
		existing, err := s.store.GetHabit(h.ID)
		switch {
		case err == nil:
			if existing.OwnerID != s.ownerID {
				return result, fmt.Errorf("habit %s belongs to another owner", h.ID)
			}
			if err := s.store.UpdateHabit(h); err != nil {
				return result, fmt.Errorf("failed to import habit %q: %w", h.Name, err)
			}
		case errors.Is(err, storage.ErrNotFound):
			if err := s.store.AddHabit(h); err != nil {
				return result, fmt.Errorf("failed to import habit %q: %w", h.Name, err)
			}
		default:
			return result, err
		}
		result.Habits++
	}

	for _, p := range progress {
		if _, err := s.store.UpsertProgress(p); err != nil {
			return result, fmt.Errorf("failed to import progress for %s: %w", p.Date, err)
		}
		result.Progress++
	}

	logger.Info("Import complete", "habits", result.Habits, "progress", result.Progress, "owner", s.ownerID)
	return result, nil
}
