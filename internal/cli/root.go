package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/habitflow/internal/backup"
	"github.com/julianstephens/habitflow/internal/config"
	"github.com/julianstephens/habitflow/internal/habits"
	"github.com/julianstephens/habitflow/internal/keyring"
	"github.com/julianstephens/habitflow/internal/logger"
	"github.com/julianstephens/habitflow/internal/models"
	"github.com/julianstephens/habitflow/internal/stats"
	"github.com/julianstephens/habitflow/internal/storage"
	"github.com/julianstephens/habitflow/internal/storage/postgres"
	"github.com/julianstephens/habitflow/internal/storage/sqlite"
	"github.com/julianstephens/habitflow/internal/utils"
)

type Context struct {
	Store  storage.Provider
	Config *config.Config
	// Clock overrides the system clock, used by tests
	Clock utils.Clock
	// Out receives command output, stdout when nil
	Out io.Writer
}

func (c *Context) Output() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Output(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Output(), args...)
}

// Settings returns the store settings with the configured timezone override applied.
func (c *Context) Settings() (models.Settings, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	if c.Config != nil && c.Config.Storage.Timezone != "" {
		settings.Timezone = c.Config.Storage.Timezone
	}
	return settings, nil
}

// Calendar builds the reference calendar from settings.
func (c *Context) Calendar() (*utils.Calendar, error) {
	settings, err := c.Settings()
	if err != nil {
		return nil, err
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return nil, err
	}
	return utils.NewCalendar(loc, c.Clock), nil
}

// Service returns the habit service bound to the local owner.
func (c *Context) Service() (*habits.Service, error) {
	settings, err := c.Settings()
	if err != nil {
		return nil, err
	}
	cal, err := c.Calendar()
	if err != nil {
		return nil, err
	}
	return habits.New(c.Store, stats.New(cal), settings.OwnerID), nil
}

// BackupManager returns a manager for SQLite stores and nil for other backends.
func (c *Context) BackupManager() *backup.Manager {
	path := c.Store.GetConfigPath()
	if !backup.IsSQLitePath(path) {
		return nil
	}
	mgr := backup.NewManager(path)
	if c.Config != nil {
		mgr.WithRetention(c.Config.Backup.Keep)
	}
	return mgr
}

// PerformAutomaticBackup creates a backup and only logs failures
func (c *Context) PerformAutomaticBackup() {
	mgr := c.BackupManager()
	if mgr == nil {
		return
	}
	if c.Config != nil && !c.Config.Backup.IsEnabled() {
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveLocation picks the storage location: the --db flag, then the config
// file and HABITFLOW_DB, then a connection string in the OS keyring, then the
// default SQLite file. fromKeyring is true when the keyring supplied it.
func ResolveLocation(flagDB string, cfg *config.Config) (location string, fromKeyring bool) {
	if flagDB != "" {
		return config.ExpandPath(flagDB), false
	}
	if cfg != nil && cfg.Storage.Path != "" {
		return cfg.Storage.Path, false
	}
	if connStr, err := keyring.GetConnectionString(); err == nil {
		return connStr, true
	} else if !errors.Is(err, keyring.ErrNotFound) {
		logger.Debug("Keyring lookup failed", "error", err)
	}
	return config.GetPaths().DBFile, false
}

// IsPostgres reports whether location is a PostgreSQL URI or key=value DSN.
func IsPostgres(location string) bool {
	return postgres.IsConnString(location) || strings.Contains(location, "host=")
}

// OpenProvider returns the backend for location without loading it.
// Connection strings that did not come from the keyring must not embed a password.
func OpenProvider(location string, fromKeyring bool) (storage.Provider, error) {
	switch {
	case IsPostgres(location):
		if !fromKeyring {
			if err := postgres.ValidateConnString(location); err != nil {
				if errors.Is(err, postgres.ErrEmbeddedCredentials) {
					return nil, fmt.Errorf("%w: use 'habitflow keyring set', ~/.pgpass or PGPASSWORD instead", err)
				}
				return nil, err
			}
		}
		return postgres.New(location), nil
	case strings.EqualFold(filepath.Ext(location), ".json"):
		return storage.NewJSONStore(location), nil
	default:
		return sqlite.NewStore(location), nil
	}
}
