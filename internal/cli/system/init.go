package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/habitflow/internal/cli"
	"github.com/julianstephens/habitflow/internal/config"
	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing database before initialization."`
	Source string `help:"Source database path or connection string to migrate data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()

	if c.Force && !cli.IsPostgres(dbPath) {
		if c.Source != "" {
			absDB, errDB := filepath.Abs(dbPath)
			absSource, errSource := filepath.Abs(c.Source)
			if errDB == nil && errSource == nil && absDB == absSource {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			ctx.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized %s storage at: %s\n", constants.AppName, dbPath)

	if err := writeDefaultConfig(ctx); err != nil {
		return err
	}

	if c.Source != "" {
		ctx.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
	}
	return nil
}

// writeDefaultConfig creates the XDG config file on first init.
func writeDefaultConfig(ctx *cli.Context) error {
	path := config.GetPaths().ConfigFile
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	cfg := ctx.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	ctx.Printf("Wrote config file: %s\n", path)
	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context) error {
	source, err := cli.OpenProvider(config.ExpandPath(c.Source), false)
	if err != nil {
		return err
	}
	if err := source.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	return copyStore(ctx, source, ctx.Store)
}

// copyStore copies settings, habits and progress from src to dst.
func copyStore(ctx *cli.Context, src, dst storage.Provider) error {
	ctx.Println("  Migrating settings...")
	settings, err := src.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := dst.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	ctx.Println("  Migrating habits...")
	habits, err := src.GetAllHabits()
	if err != nil {
		return fmt.Errorf("failed to get habits from source: %w", err)
	}
	for _, habit := range habits {
		if err := dst.AddHabit(habit); err != nil {
			return fmt.Errorf("failed to add habit %s: %w", habit.ID, err)
		}
	}
	ctx.Printf("    Migrated %d habits\n", len(habits))

	ctx.Println("  Migrating progress...")
	progress, err := src.GetAllProgress()
	if err != nil {
		return fmt.Errorf("failed to get progress from source: %w", err)
	}
	for _, entry := range progress {
		if _, err := dst.UpsertProgress(entry); err != nil {
			return fmt.Errorf("failed to add progress %s: %w", entry.ID, err)
		}
	}
	ctx.Printf("    Migrated %d progress entries\n", len(progress))
	return nil
}
