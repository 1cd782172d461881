package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/models"
	"github.com/julianstephens/habitflow/internal/utils"
)

// ErrInvalidHabit is wrapped by every habit definition failure
var ErrInvalidHabit = errors.New("invalid habit")

// Conflict represents a detected integrity problem in stored habits or progress
type Conflict struct {
	Type        constants.ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // Habit names involved
	HabitIDs    []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// ValidateHabit checks a habit definition before it is created or edited.
// Color and icon must already be resolved to their canonical values.
func ValidateHabit(habit models.Habit) error {
	if strings.TrimSpace(habit.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidHabit)
	}
	if err := ValidateTargetDays(habit.TargetDays); err != nil {
		return err
	}
	if habit.Color != "" && !models.IsHexColor(habit.Color) {
		return fmt.Errorf("%w: color %q is not a #RRGGBB value", ErrInvalidHabit, habit.Color)
	}
	if habit.Icon != "" {
		if _, ok := models.ResolveIcon(habit.Icon); !ok {
			return fmt.Errorf("%w: unknown icon %q", ErrInvalidHabit, habit.Icon)
		}
	}
	if habit.CreatedAt != "" {
		if _, err := time.Parse(time.RFC3339, habit.CreatedAt); err != nil {
			return fmt.Errorf("%w: createdAt %q is not an RFC 3339 instant", ErrInvalidHabit, habit.CreatedAt)
		}
	}
	return nil
}

// ValidateTargetDays requires at least one weekday, each in 0..6.
func ValidateTargetDays(days []int) error {
	if len(days) == 0 {
		return fmt.Errorf("%w: at least one target day is required", ErrInvalidHabit)
	}
	for _, d := range days {
		if d < 0 || d >= constants.DaysInWeek {
			return fmt.Errorf("%w: target day %d is outside 0-6", ErrInvalidHabit, d)
		}
	}
	return nil
}

// ValidateProgress checks a single progress entry's shape.
func ValidateProgress(entry models.Progress) error {
	if entry.HabitID == "" {
		return fmt.Errorf("progress entry is missing habitId")
	}
	if !utils.ValidateDateKey(entry.Date) {
		return fmt.Errorf("progress for habit %s: invalid date key %q", entry.HabitID, entry.Date)
	}
	return nil
}

// Validator checks stored habits and progress for integrity conflicts
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateHabits checks habit definitions for conflicts
func (v *Validator) ValidateHabits(habits []models.Habit) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	// Names are compared case-insensitively per owner, like name lookups
	nameIDs := make(map[string][]string)
	displayName := make(map[string]string)
	for _, habit := range habits {
		if habit.Name == "" {
			continue
		}
		key := habit.OwnerID + "\x00" + strings.ToLower(habit.Name)
		nameIDs[key] = append(nameIDs[key], habit.ID)
		displayName[key] = habit.Name
	}
	keys := make([]string, 0, len(nameIDs))
	for k := range nameIDs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		ids := nameIDs[key]
		if len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictDuplicateHabitName,
				Description: fmt.Sprintf("Duplicate habit name: \"%s\" (IDs: %v)", displayName[key], ids),
				Items:       []string{displayName[key]},
				HabitIDs:    ids,
			})
		}
	}

	for _, habit := range habits {
		if len(habit.TargetDays) == 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictEmptyTargetDays,
				Description: fmt.Sprintf("Habit \"%s\" has no target days and never contributes to stats", habit.Name),
				Items:       []string{habit.Name},
				HabitIDs:    []string{habit.ID},
			})
		}
		for _, d := range habit.TargetDays {
			if d < 0 || d >= constants.DaysInWeek {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        constants.ConflictInvalidWeekday,
					Description: fmt.Sprintf("Habit \"%s\" has invalid target day %d", habit.Name, d),
					Items:       []string{habit.Name},
					HabitIDs:    []string{habit.ID},
				})
			}
		}
		if _, err := time.Parse(time.RFC3339, habit.CreatedAt); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictInvalidCreatedAt,
				Description: fmt.Sprintf("Habit \"%s\" has invalid createdAt: %s", habit.Name, habit.CreatedAt),
				Items:       []string{habit.Name},
				HabitIDs:    []string{habit.ID},
			})
		}
		if habit.Color != "" && !models.IsHexColor(habit.Color) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictUnknownColor,
				Description: fmt.Sprintf("Habit \"%s\" has invalid color: %s", habit.Name, habit.Color),
				Items:       []string{habit.Name},
				HabitIDs:    []string{habit.ID},
			})
		}
		if habit.Icon != "" {
			if _, ok := models.ResolveIcon(habit.Icon); !ok {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        constants.ConflictUnknownIcon,
					Description: fmt.Sprintf("Habit \"%s\" has unknown icon: %s", habit.Name, habit.Icon),
					Items:       []string{habit.Name},
					HabitIDs:    []string{habit.ID},
				})
			}
		}
	}

	return result
}

// ValidateProgress checks progress entries against the habits they reference
func (v *Validator) ValidateProgress(habits []models.Habit, progress []models.Progress) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	byID := make(map[string]models.Habit, len(habits))
	for _, h := range habits {
		byID[h.ID] = h
	}

	seen := make(map[string]bool)
	for _, entry := range progress {
		habit, ok := byID[entry.HabitID]
		if !ok {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictOrphanProgress,
				Description: fmt.Sprintf("Progress %s on %s references missing habit %s", entry.ID, entry.Date, entry.HabitID),
				Date:        entry.Date,
				HabitIDs:    []string{entry.HabitID},
			})
			continue
		}

		if !utils.ValidateDateKey(entry.Date) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictInvalidDateKey,
				Description: fmt.Sprintf("Habit \"%s\" has progress with invalid date: %q", habit.Name, entry.Date),
				Date:        entry.Date,
				Items:       []string{habit.Name},
				HabitIDs:    []string{habit.ID},
			})
			continue
		}

		key := entry.HabitID + "|" + entry.Date
		if seen[key] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictDuplicateProgress,
				Description: fmt.Sprintf("Habit \"%s\" has more than one progress entry on %s", habit.Name, entry.Date),
				Date:        entry.Date,
				Items:       []string{habit.Name},
				HabitIDs:    []string{habit.ID},
			})
			continue
		}
		seen[key] = true
	}

	return result
}

// ValidateAll runs every habit and progress check.
func (v *Validator) ValidateAll(habits []models.Habit, progress []models.Progress) ValidationResult {
	result := v.ValidateHabits(habits)
	result.Conflicts = append(result.Conflicts, v.ValidateProgress(habits, progress).Conflicts...)
	return result
}
