// Package storagetest holds a behavioral test suite shared by every storage.Provider.
package storagetest

import (
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"

	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/models"
	"github.com/julianstephens/habitflow/internal/storage"
)

// Factory returns a freshly initialized, empty provider.
type Factory func(t *testing.T) storage.Provider

// NewHabit returns a habit with a random ID owned by ownerID.
func NewHabit(ownerID, name string, days ...int) models.Habit {
	return models.Habit{
		ID:         uuid.New().String(),
		OwnerID:    ownerID,
		Name:       name,
		Color:      constants.DefaultColor,
		Icon:       constants.DefaultIcon,
		TargetDays: days,
		CreatedAt:  "2024-01-01T04:00:00Z",
		IsActive:   true,
	}
}

// Run executes the provider suite.
func Run(t *testing.T, newProvider Factory) {
	t.Run("DefaultSettings", func(t *testing.T) { testDefaultSettings(t, newProvider(t)) })
	t.Run("HabitCRUD", func(t *testing.T) { testHabitCRUD(t, newProvider(t)) })
	t.Run("OwnerIsolation", func(t *testing.T) { testOwnerIsolation(t, newProvider(t)) })
	t.Run("UpsertProgress", func(t *testing.T) { testUpsertProgress(t, newProvider(t)) })
	t.Run("CascadeDelete", func(t *testing.T) { testCascadeDelete(t, newProvider(t)) })
	t.Run("NotFound", func(t *testing.T) { testNotFound(t, newProvider(t)) })
}

func testDefaultSettings(t *testing.T, store storage.Provider) {
	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if settings.Timezone != constants.DefaultTimezone {
		t.Errorf("Timezone = %q, want %q", settings.Timezone, constants.DefaultTimezone)
	}
	if settings.OwnerID == "" {
		t.Error("OwnerID was not generated")
	}

	settings.Timezone = "UTC"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}
	updated, err := store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if updated != settings {
		t.Errorf("settings = %+v, want %+v", updated, settings)
	}
}

func testHabitCRUD(t *testing.T, store storage.Provider) {
	habit := NewHabit("owner-1", "Read", 1, 3, 5)
	habit.Description = "20 pages"
	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}

	got, err := store.GetHabit(habit.ID)
	if err != nil {
		t.Fatalf("failed to get habit: %v", err)
	}
	if got.Name != "Read" || got.Description != "20 pages" || !got.IsActive || got.CreatedAt != habit.CreatedAt {
		t.Errorf("GetHabit() = %+v", got)
	}
	if len(got.TargetDays) != 3 || got.TargetDays[0] != 1 || got.TargetDays[2] != 5 {
		t.Errorf("TargetDays = %v, want [1 3 5]", got.TargetDays)
	}

	byName, err := store.GetHabitByName("owner-1", "read")
	if err != nil {
		t.Fatalf("failed to get habit by name: %v", err)
	}
	if byName.ID != habit.ID {
		t.Errorf("GetHabitByName() ID = %s, want %s", byName.ID, habit.ID)
	}

	habit.Name = "Read more"
	habit.IsActive = false
	habit.TargetDays = []int{0, 6}
	if err := store.UpdateHabit(habit); err != nil {
		t.Fatalf("failed to update habit: %v", err)
	}
	got, err = store.GetHabit(habit.ID)
	if err != nil {
		t.Fatalf("failed to get habit: %v", err)
	}
	if got.Name != "Read more" || got.IsActive || len(got.TargetDays) != 2 {
		t.Errorf("after update GetHabit() = %+v", got)
	}
}

func testOwnerIsolation(t *testing.T, store storage.Provider) {
	mine := NewHabit("alice", "Run", 1)
	theirs := NewHabit("bob", "Run", 2)
	for _, h := range []models.Habit{mine, theirs} {
		if err := store.AddHabit(h); err != nil {
			t.Fatalf("failed to add habit: %v", err)
		}
	}
	if _, err := store.UpsertProgress(models.Progress{ID: uuid.New().String(), OwnerID: "bob", HabitID: theirs.ID, Date: "2024-01-02", Completed: true}); err != nil {
		t.Fatalf("failed to upsert progress: %v", err)
	}

	habits, err := store.ListHabits("alice")
	if err != nil {
		t.Fatalf("failed to list habits: %v", err)
	}
	if len(habits) != 1 || habits[0].ID != mine.ID {
		t.Errorf("ListHabits(alice) = %+v", habits)
	}
	progress, err := store.ListProgress("alice")
	if err != nil {
		t.Fatalf("failed to list progress: %v", err)
	}
	if len(progress) != 0 {
		t.Errorf("ListProgress(alice) = %+v, want empty", progress)
	}

	all, err := store.GetAllHabits()
	if err != nil {
		t.Fatalf("failed to get all habits: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("GetAllHabits() returned %d habits, want 2", len(all))
	}
}

func testUpsertProgress(t *testing.T, store storage.Provider) {
	habit := NewHabit("owner-1", "Meditate", 0, 1, 2, 3, 4, 5, 6)
	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}

	first, err := store.UpsertProgress(models.Progress{
		ID: uuid.New().String(), OwnerID: "owner-1", HabitID: habit.ID, Date: "2024-01-02", Completed: true, Note: "calm",
	})
	if err != nil {
		t.Fatalf("failed to upsert progress: %v", err)
	}

	second, err := store.UpsertProgress(models.Progress{
		ID: uuid.New().String(), OwnerID: "owner-1", HabitID: habit.ID, Date: "2024-01-02", Completed: false, Note: "restless",
	})
	if err != nil {
		t.Fatalf("failed to upsert progress: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("upsert changed ID from %s to %s", first.ID, second.ID)
	}
	if second.Completed || second.Note != "restless" {
		t.Errorf("upsert result = %+v", second)
	}

	if _, err := store.UpsertProgress(models.Progress{
		ID: uuid.New().String(), OwnerID: "owner-1", HabitID: habit.ID, Date: "2024-01-03", Completed: true,
	}); err != nil {
		t.Fatalf("failed to upsert progress: %v", err)
	}

	entries, err := store.ListProgress("owner-1")
	if err != nil {
		t.Fatalf("failed to list progress: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("ListProgress() returned %d entries, want 2", len(entries))
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date < entries[j].Date })
	if entries[0].Date != "2024-01-02" || entries[1].Date != "2024-01-03" {
		t.Errorf("entries = %+v", entries)
	}

	got, err := store.GetProgress(habit.ID, "2024-01-03")
	if err != nil {
		t.Fatalf("failed to get progress: %v", err)
	}
	if !got.Completed {
		t.Errorf("GetProgress() = %+v, want completed", got)
	}
}

func testCascadeDelete(t *testing.T, store storage.Provider) {
	keep := NewHabit("owner-1", "Keep", 1)
	drop := NewHabit("owner-1", "Drop", 1)
	for _, h := range []models.Habit{keep, drop} {
		if err := store.AddHabit(h); err != nil {
			t.Fatalf("failed to add habit: %v", err)
		}
		for _, d := range []string{"2024-01-01", "2024-01-08"} {
			if _, err := store.UpsertProgress(models.Progress{ID: uuid.New().String(), OwnerID: "owner-1", HabitID: h.ID, Date: d, Completed: true}); err != nil {
				t.Fatalf("failed to upsert progress: %v", err)
			}
		}
	}

	if err := store.DeleteHabit(drop.ID); err != nil {
		t.Fatalf("failed to delete habit: %v", err)
	}

	if _, err := store.GetHabit(drop.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetHabit() after delete error = %v, want ErrNotFound", err)
	}
	entries, err := store.GetAllProgress()
	if err != nil {
		t.Fatalf("failed to get progress: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("GetAllProgress() returned %d entries, want 2", len(entries))
	}
	for _, p := range entries {
		if p.HabitID == drop.ID {
			t.Errorf("progress %+v survived habit deletion", p)
		}
	}
}

func testNotFound(t *testing.T, store storage.Provider) {
	if _, err := store.GetHabit("missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetHabit() error = %v, want ErrNotFound", err)
	}
	if _, err := store.GetHabitByName("owner-1", "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetHabitByName() error = %v, want ErrNotFound", err)
	}
	if _, err := store.GetProgress("missing", "2024-01-01"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetProgress() error = %v, want ErrNotFound", err)
	}
	if err := store.UpdateHabit(NewHabit("owner-1", "Ghost", 1)); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("UpdateHabit() error = %v, want ErrNotFound", err)
	}
	if err := store.DeleteHabit("missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("DeleteHabit() error = %v, want ErrNotFound", err)
	}
}

// ProgressFor builds a progress entry with a random ID.
func ProgressFor(habitID, ownerID, date string, completed bool) models.Progress {
	return models.Progress{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		HabitID:   habitID,
		Date:      date,
		Completed: completed,
	}
}
