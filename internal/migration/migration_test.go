package migration

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitflow/migrations"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newRunner(t *testing.T, db *sql.DB, files fstest.MapFS) *Runner {
	t.Helper()
	r, err := NewRunner(db, files, DriverSQLite)
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}
	return r
}

func sqlFile(s string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(s)}
}

func TestNewRunnerRejectsUnknownDriver(t *testing.T) {
	if _, err := NewRunner(nil, fstest.MapFS{}, Driver("mysql")); err == nil {
		t.Error("expected error for unsupported driver")
	}
}

func TestGetCurrentVersion(t *testing.T) {
	db := setupTestDB(t)
	runner := newRunner(t, db, fstest.MapFS{"001_test.sql": sqlFile("CREATE TABLE test (id INTEGER);")})

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0, got %d", version)
	}

	if err := runner.SetVersion(5); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}
	version, err = runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 5 {
		t.Errorf("expected version 5, got %d", version)
	}
}

func TestReadMigrationFiles(t *testing.T) {
	db := setupTestDB(t)

	tests := []struct {
		name    string
		files   fstest.MapFS
		want    []int
		wantErr string
	}{
		{
			name: "sorted by version",
			files: fstest.MapFS{
				"002_second.sql": sqlFile("SELECT 2;"),
				"001_first.sql":  sqlFile("SELECT 1;"),
				"README.md":      sqlFile("ignored"),
			},
			want: []int{1, 2},
		},
		{
			name:    "bad name",
			files:   fstest.MapFS{"init.sql": sqlFile("SELECT 1;")},
			wantErr: "invalid migration filename",
		},
		{
			name:    "zero version",
			files:   fstest.MapFS{"000_zero.sql": sqlFile("SELECT 1;")},
			wantErr: "must be at least 1",
		},
		{
			name: "duplicate version",
			files: fstest.MapFS{
				"001_a.sql":  sqlFile("SELECT 1;"),
				"0001_b.sql": sqlFile("SELECT 1;"),
			},
			wantErr: "duplicate migration version 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newRunner(t, db, tt.files).ReadMigrationFiles()
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadMigrationFiles failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d migrations, want %d", len(got), len(tt.want))
			}
			for i, v := range tt.want {
				if got[i].Version != v {
					t.Errorf("migration %d version = %d, want %d", i, got[i].Version, v)
				}
			}
		})
	}
}

func TestApplyMigrations(t *testing.T) {
	db := setupTestDB(t)
	runner := newRunner(t, db, fstest.MapFS{
		"001_habits.sql": sqlFile("CREATE TABLE habits (id TEXT PRIMARY KEY);"),
		"002_progress.sql": sqlFile("CREATE TABLE progress (id INTEGER PRIMARY KEY);"),
	})

	var logs []string
	applied, err := runner.ApplyMigrations(func(s string) { logs = append(logs, s) })
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}
	if len(logs) == 0 {
		t.Error("expected log output")
	}

	applied, err = runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("second ApplyMigrations failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("second run applied = %d, want 0", applied)
	}

	if _, err := db.Exec("INSERT INTO progress (id) VALUES (1)"); err != nil {
		t.Errorf("progress table missing after migration: %v", err)
	}
}

func TestApplyMigrationsRollsBackFailure(t *testing.T) {
	db := setupTestDB(t)
	runner := newRunner(t, db, fstest.MapFS{
		"001_ok.sql":     sqlFile("CREATE TABLE ok (id INTEGER);"),
		"002_broken.sql": sqlFile("CREATE TABLE broken (id INTEGER; NOT SQL"),
	})

	applied, err := runner.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("expected error from broken migration")
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}
	version, _ := runner.GetCurrentVersion()
	if version != 1 {
		t.Errorf("version = %d, want 1", version)
	}
}

func TestValidateVersionNewerDatabase(t *testing.T) {
	db := setupTestDB(t)
	runner := newRunner(t, db, fstest.MapFS{"001_init.sql": sqlFile("SELECT 1;")})

	if err := runner.SetVersion(3); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}
	if err := runner.ValidateVersion(); err == nil {
		t.Error("expected error when database is newer than the application")
	}
	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Error("expected ApplyMigrations to refuse a newer database")
	}
}

func TestEmbeddedSQLiteMigrations(t *testing.T) {
	db := setupTestDB(t)
	runner, err := NewRunner(db, migrations.SQLite(), DriverSQLite)
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}
	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("embedded migrations failed: %v", err)
	}
	for _, table := range []string{"habits", "progress", "settings"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}
