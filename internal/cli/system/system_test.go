package system

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/habitflow/internal/cli"
	"github.com/julianstephens/habitflow/internal/config"
	"github.com/julianstephens/habitflow/internal/storage/sqlite"
	"github.com/julianstephens/habitflow/internal/utils"
)

// setupTestContext returns a context over an initialized SQLite store whose
// clock reads noon IST on 2024-01-10. XDG_CONFIG_HOME points at a temp dir.
func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	out := &bytes.Buffer{}
	return &cli.Context{
		Store:  store,
		Config: config.Default(),
		Clock:  utils.FixedClock{T: time.Date(2024, 1, 10, 12, 0, 0, 0, loc)},
		Out:    out,
	}, out
}
