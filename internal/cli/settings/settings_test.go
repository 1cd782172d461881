package settings

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/habitflow/internal/cli"
	"github.com/julianstephens/habitflow/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	out := &bytes.Buffer{}
	return &cli.Context{Store: store, Out: out}, out
}

func strPtr(s string) *string { return &s }

func TestSettingsCmd_List(t *testing.T) {
	ctx, out := setupTestDB(t)

	cmd := &SettingsCmd{List: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings list failed: %v", err)
	}
	if !strings.Contains(out.String(), "Asia/Kolkata") {
		t.Errorf("expected default timezone in output:\n%s", out.String())
	}
}

func TestSettingsCmd_Update(t *testing.T) {
	ctx, _ := setupTestDB(t)

	cmd := &SettingsCmd{
		Timezone:     strPtr("America/New_York"),
		DefaultColor: strPtr("teal"),
		DefaultIcon:  strPtr("book"),
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() failed: %v", err)
	}
	if settings.Timezone != "America/New_York" {
		t.Errorf("Timezone = %q, want America/New_York", settings.Timezone)
	}
	if settings.DefaultColor != "#14B8A6" {
		t.Errorf("DefaultColor = %q, want #14B8A6", settings.DefaultColor)
	}
	if settings.DefaultIcon != "Book" {
		t.Errorf("DefaultIcon = %q, want Book", settings.DefaultIcon)
	}
}

func TestSettingsCmd_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cmd  SettingsCmd
	}{
		{name: "timezone", cmd: SettingsCmd{Timezone: strPtr("Mars/Olympus")}},
		{name: "color", cmd: SettingsCmd{DefaultColor: strPtr("chartreuse")}},
		{name: "icon", cmd: SettingsCmd{DefaultIcon: strPtr("Unicorn")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := setupTestDB(t)
			before, _ := ctx.Store.GetSettings()

			if err := tt.cmd.Run(ctx); err == nil {
				t.Fatal("expected an error")
			}

			after, _ := ctx.Store.GetSettings()
			if after != before {
				t.Errorf("settings changed on invalid input: %+v", after)
			}
		})
	}
}

func TestSettingsCmd_NoChanges(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&SettingsCmd{}).Run(ctx); err != nil {
		t.Fatalf("settings failed: %v", err)
	}
	if !strings.Contains(out.String(), "No changes specified") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}
