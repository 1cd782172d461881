package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/models"
)

func validHabit() models.Habit {
	return models.Habit{
		ID:         "h1",
		OwnerID:    "owner",
		Name:       "Read",
		Color:      "#3B82F6",
		Icon:       "Target",
		TargetDays: []int{1, 3, 5},
		CreatedAt:  "2024-01-01T04:00:00Z",
		IsActive:   true,
	}
}

func hasConflict(result ValidationResult, kind constants.ConflictType) bool {
	for _, c := range result.Conflicts {
		if c.Type == kind {
			return true
		}
	}
	return false
}

func TestValidateHabit(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.Habit)
		wantErr bool
	}{
		{"valid", func(h *models.Habit) {}, false},
		{"blank name", func(h *models.Habit) { h.Name = "   " }, true},
		{"no target days", func(h *models.Habit) { h.TargetDays = nil }, true},
		{"weekday too large", func(h *models.Habit) { h.TargetDays = []int{7} }, true},
		{"negative weekday", func(h *models.Habit) { h.TargetDays = []int{-1} }, true},
		{"named color not resolved", func(h *models.Habit) { h.Color = "Blue" }, true},
		{"unknown icon", func(h *models.Habit) { h.Icon = "Spaceship" }, true},
		{"empty color and icon", func(h *models.Habit) { h.Color = ""; h.Icon = "" }, false},
		{"bad createdAt", func(h *models.Habit) { h.CreatedAt = "yesterday" }, true},
		{"unsaved habit", func(h *models.Habit) { h.ID = ""; h.CreatedAt = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := validHabit()
			tt.mutate(&h)
			err := ValidateHabit(h)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateHabit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidHabit) {
				t.Errorf("error %v does not wrap ErrInvalidHabit", err)
			}
		})
	}
}

func TestValidateProgressEntry(t *testing.T) {
	if err := ValidateProgress(models.Progress{HabitID: "h1", Date: "2024-02-29"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateProgress(models.Progress{HabitID: "h1", Date: "2023-02-29"}); err == nil {
		t.Error("expected error for impossible date")
	}
	if err := ValidateProgress(models.Progress{Date: "2024-01-01"}); err == nil {
		t.Error("expected error for missing habitId")
	}
}

func TestValidateHabits_DuplicateNames(t *testing.T) {
	a := validHabit()
	b := validHabit()
	b.ID = "h2"
	b.Name = "read"
	other := validHabit()
	other.ID = "h3"
	other.OwnerID = "someone-else"

	result := New().ValidateHabits([]models.Habit{a, b, other})
	if !hasConflict(result, constants.ConflictDuplicateHabitName) {
		t.Fatal("Expected ConflictDuplicateHabitName")
	}
	if len(result.Conflicts) != 1 {
		t.Errorf("expected 1 conflict, got %d: %+v", len(result.Conflicts), result.Conflicts)
	}
	if ids := result.Conflicts[0].HabitIDs; len(ids) != 2 {
		t.Errorf("HabitIDs = %v, want two IDs", ids)
	}
}

func TestValidateHabits_Definitions(t *testing.T) {
	h := validHabit()
	h.TargetDays = []int{}
	g := validHabit()
	g.ID, g.Name = "h2", "Run"
	g.TargetDays = []int{2, 9}
	g.CreatedAt = "not-a-time"
	g.Color = "teal"
	g.Icon = "Unicorn"

	result := New().ValidateHabits([]models.Habit{h, g})
	for _, kind := range []constants.ConflictType{
		constants.ConflictEmptyTargetDays,
		constants.ConflictInvalidWeekday,
		constants.ConflictInvalidCreatedAt,
		constants.ConflictUnknownColor,
		constants.ConflictUnknownIcon,
	} {
		if !hasConflict(result, kind) {
			t.Errorf("expected %s conflict", kind)
		}
	}
}

func TestValidateProgress_Conflicts(t *testing.T) {
	habits := []models.Habit{validHabit()}
	progress := []models.Progress{
		{ID: "p1", HabitID: "h1", Date: "2024-01-01", Completed: true},
		{ID: "p2", HabitID: "h1", Date: "2024-01-01", Completed: false},
		{ID: "p3", HabitID: "h1", Date: "2024-1-2", Completed: true},
		{ID: "p4", HabitID: "gone", Date: "2024-01-03", Completed: true},
	}

	result := New().ValidateProgress(habits, progress)
	if len(result.Conflicts) != 3 {
		t.Fatalf("expected 3 conflicts, got %d: %+v", len(result.Conflicts), result.Conflicts)
	}
	for _, kind := range []constants.ConflictType{
		constants.ConflictDuplicateProgress,
		constants.ConflictInvalidDateKey,
		constants.ConflictOrphanProgress,
	} {
		if !hasConflict(result, kind) {
			t.Errorf("expected %s conflict", kind)
		}
	}
}

func TestFormatReport(t *testing.T) {
	clean := New().ValidateAll([]models.Habit{validHabit()}, nil)
	if clean.HasConflicts() {
		t.Fatalf("unexpected conflicts: %+v", clean.Conflicts)
	}
	if got := clean.FormatReport(); got != "No conflicts detected." {
		t.Errorf("FormatReport() = %q", got)
	}

	dirty := New().ValidateAll(nil, []models.Progress{{ID: "p1", HabitID: "x", Date: "2024-01-01"}})
	report := dirty.FormatReport()
	if !strings.HasPrefix(report, "Conflicts detected:\n") || !strings.Contains(report, "missing habit x") {
		t.Errorf("FormatReport() = %q", report)
	}
}
