package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitflow/internal/cli"
	"github.com/julianstephens/habitflow/internal/cli/backups"
	"github.com/julianstephens/habitflow/internal/cli/habits"
	"github.com/julianstephens/habitflow/internal/cli/settings"
	"github.com/julianstephens/habitflow/internal/cli/system"
	"github.com/julianstephens/habitflow/internal/config"
	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/errors"
	"github.com/julianstephens/habitflow/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	DB      string `name:"db" help:"SQLite file, .json file or PostgreSQL connection string. Overrides the config file and HABITFLOW_DB."`
	Config  string `help:"Config file path." type:"path"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init     system.InitCmd       `cmd:"" help:"Initialize habitflow storage."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd        `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Habit    habits.HabitCmd      `cmd:"" help:"Manage habits and track progress."`
	Stats    habits.StatsCmd      `cmd:"" help:"Show the dashboard or statistics for one habit."`
	Calendar habits.CalendarCmd   `cmd:"" help:"Show a month of progress for a habit."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Backup   backups.BackupCmd    `cmd:"" help:"Manage database backups."`
	Export   backups.ExportCmd    `cmd:"" help:"Export habits and progress to JSON."`
	Import   backups.ImportCmd    `cmd:"" help:"Import habits and progress from a JSON export."`
	Keyring  system.KeyringCmd    `cmd:"" help:"Manage credentials in the OS keyring."`
	Serve    system.ServeCmd      `cmd:"" help:"Run the HTTP API server."`
	Token    system.TokenCmd      `cmd:"" help:"Issue an API token."`
}

// commands that never touch the store
var storeless = map[string]bool{
	"keyring": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with streaks, statistics and a terminal UI"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)
	command := strings.Fields(ctx.Command())[0]

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug || cfg.Log.Debug,
		ConfigDir: config.GetPaths().ConfigDir,
		Console:   cfg.Log.Console || command == "serve",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	location, fromKeyring := cli.ResolveLocation(CLI.DB, cfg)
	store, err := cli.OpenProvider(location, fromKeyring)
	if err != nil {
		errors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:  store,
		Config: cfg,
	}

	// init creates the store itself
	if command != "init" && !storeless[command] {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	err = ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close store", "error", closeErr)
	}
	errors.Fatal(err)
}
