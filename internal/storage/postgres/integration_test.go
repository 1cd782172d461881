package postgres

import (
	"os"
	"testing"

	"github.com/julianstephens/habitflow/internal/storage"
	"github.com/julianstephens/habitflow/internal/storage/storagetest"
)

// TestStore_Integration runs the provider suite against a real database.
// Example: POSTGRES_TEST_URL="postgres://habitflow_user@localhost:5432/habitflow_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	storagetest.Run(t, func(t *testing.T) storage.Provider {
		store := New(connStr)
		if err := store.Init(); err != nil {
			t.Fatalf("Failed to initialize store: %v", err)
		}
		t.Cleanup(func() {
			db := store.GetDB()
			db.Exec("DELETE FROM progress")
			db.Exec("DELETE FROM habits")
			db.Exec("DELETE FROM settings")
			store.Close()
		})
		return store
	})
}
