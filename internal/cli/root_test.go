package cli

import (
	"errors"
	"path/filepath"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/habitflow/internal/config"
	"github.com/julianstephens/habitflow/internal/keyring"
	"github.com/julianstephens/habitflow/internal/storage"
	"github.com/julianstephens/habitflow/internal/storage/postgres"
	"github.com/julianstephens/habitflow/internal/storage/sqlite"
)

func TestResolveLocation(t *testing.T) {
	gokeyring.MockInit()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	defer func() { _ = keyring.DeleteConnectionString() }()

	cfg := config.Default()

	loc, fromKeyring := ResolveLocation("", cfg)
	if loc != config.GetPaths().DBFile || fromKeyring {
		t.Errorf("default location = %q (keyring %v), want %q", loc, fromKeyring, config.GetPaths().DBFile)
	}

	if err := keyring.SetConnectionString("postgres://me:pw@localhost/habitflow"); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}
	loc, fromKeyring = ResolveLocation("", cfg)
	if loc != "postgres://me:pw@localhost/habitflow" || !fromKeyring {
		t.Errorf("keyring location = %q (keyring %v)", loc, fromKeyring)
	}

	cfg.Storage.Path = "/tmp/from-config.db"
	if loc, _ = ResolveLocation("", cfg); loc != "/tmp/from-config.db" {
		t.Errorf("config location = %q, want /tmp/from-config.db", loc)
	}

	if loc, _ = ResolveLocation("/tmp/flag.db", cfg); loc != "/tmp/flag.db" {
		t.Errorf("flag location = %q, want /tmp/flag.db", loc)
	}
}

func TestOpenProvider(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name        string
		location    string
		fromKeyring bool
		wantType    string
		wantErr     error
	}{
		{name: "sqlite", location: filepath.Join(dir, "a.db"), wantType: "sqlite"},
		{name: "json", location: filepath.Join(dir, "a.JSON"), wantType: "json"},
		{name: "postgres url", location: "postgres://me@localhost/habitflow", wantType: "postgres"},
		{name: "postgres dsn", location: "host=localhost dbname=habitflow", wantType: "postgres"},
		{name: "embedded password", location: "postgres://me:pw@localhost/habitflow", wantErr: postgres.ErrEmbeddedCredentials},
		{name: "embedded password from keyring", location: "postgres://me:pw@localhost/habitflow", fromKeyring: true, wantType: "postgres"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := OpenProvider(tt.location, tt.fromKeyring)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("OpenProvider() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("OpenProvider() failed: %v", err)
			}

			var got string
			switch p.(type) {
			case *sqlite.Store:
				got = "sqlite"
			case *storage.JSONStore:
				got = "json"
			case *postgres.Store:
				got = "postgres"
			}
			if got != tt.wantType {
				t.Errorf("provider type = %s, want %s", got, tt.wantType)
			}
		})
	}
}

func TestContextSettingsOverride(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "habits.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}

	cfg := config.Default()
	cfg.Storage.Timezone = "Europe/Berlin"
	ctx := &Context{Store: store, Config: cfg}

	settings, err := ctx.Settings()
	if err != nil {
		t.Fatalf("Settings() failed: %v", err)
	}
	if settings.Timezone != "Europe/Berlin" {
		t.Errorf("Timezone = %q, want Europe/Berlin", settings.Timezone)
	}

	cal, err := ctx.Calendar()
	if err != nil {
		t.Fatalf("Calendar() failed: %v", err)
	}
	if cal.Location().String() != "Europe/Berlin" {
		t.Errorf("calendar location = %s, want Europe/Berlin", cal.Location())
	}

	if ctx.BackupManager() != nil {
		t.Error("JSON stores should not get a backup manager")
	}
}

func TestContextBackupManager(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := config.Default()
	cfg.Backup.Keep = 3
	ctx := &Context{Store: store, Config: cfg}

	mgr := ctx.BackupManager()
	if mgr == nil {
		t.Fatal("expected a backup manager for SQLite")
	}
	if mgr.Retention() != 3 {
		t.Errorf("Retention() = %d, want 3", mgr.Retention())
	}

	disabled := false
	cfg.Backup.Enabled = &disabled
	ctx.PerformAutomaticBackup()
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups() failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("disabled automatic backup still created %d backups", len(backups))
	}
}
