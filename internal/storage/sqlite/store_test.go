package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/habitflow/internal/storage"
	"github.com/julianstephens/habitflow/internal/storage/storagetest"
)

func setupTestSQLiteStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestProviderSuite(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Provider {
		return setupTestSQLiteStore(t)
	})
}

func TestLoadUninitialized(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("Load() error = %v, want ErrNotInitialized", err)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("first Init() failed: %v", err)
	}
	first, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() failed: %v", err)
	}
	store.Close()

	reopened := NewStore(path)
	if err := reopened.Init(); err != nil {
		t.Fatalf("second Init() failed: %v", err)
	}
	defer reopened.Close()
	second, err := reopened.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() failed: %v", err)
	}
	if first.OwnerID != second.OwnerID {
		t.Errorf("owner changed across Init: %s -> %s", first.OwnerID, second.OwnerID)
	}
}

func TestLoadAfterInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	store.Close()

	loaded := NewStore(path)
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	defer loaded.Close()

	current, latest, err := loaded.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion() failed: %v", err)
	}
	if current != latest || current == 0 {
		t.Errorf("SchemaVersion() = %d/%d, want matching non-zero versions", current, latest)
	}
}

func TestDeleteHabitRollsBackOnMissingHabit(t *testing.T) {
	store := setupTestSQLiteStore(t)

	habit := storagetest.NewHabit("owner", "Walk", 1)
	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}

	// A delete of an unknown id must not touch existing rows
	if err := store.DeleteHabit("unknown"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("DeleteHabit() error = %v, want ErrNotFound", err)
	}
	if _, err := store.GetHabit(habit.ID); err != nil {
		t.Errorf("habit disappeared: %v", err)
	}
}
