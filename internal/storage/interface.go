package storage

import (
	"errors"

	"github.com/julianstephens/habitflow/internal/models"
)

var (
	// ErrNotFound is returned when a habit or progress entry does not exist
	ErrNotFound = errors.New("not found")
	// ErrNotInitialized is returned by Load when the backing store has never been created
	ErrNotInitialized = errors.New("storage not initialized, run 'habitflow init' first")
)

// Provider is the persistence contract shared by every backend.
// List operations return records in no particular order.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	// GetHabitByName matches names case-insensitively within one owner's habits.
	GetHabitByName(ownerID, name string) (models.Habit, error)
	ListHabits(ownerID string) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	// DeleteHabit removes the habit and every progress entry that references it
	// as a single atomic operation.
	DeleteHabit(id string) error

	// Progress
	ListProgress(ownerID string) ([]models.Progress, error)
	GetProgress(habitID, date string) (models.Progress, error)
	// UpsertProgress inserts the entry or, when one already exists for
	// (HabitID, Date), overwrites its Completed and Note in place and keeps its ID.
	UpsertProgress(models.Progress) (models.Progress, error)

	// Bulk Retrieval for Migration
	GetAllHabits() ([]models.Habit, error)
	GetAllProgress() ([]models.Progress, error)

	// Utils
	GetConfigPath() string
}
