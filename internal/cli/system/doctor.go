package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitflow/internal/cli"
	"github.com/julianstephens/habitflow/internal/config"
	"github.com/julianstephens/habitflow/internal/server"
	"github.com/julianstephens/habitflow/internal/stats"
	"github.com/julianstephens/habitflow/internal/utils"
	"github.com/julianstephens/habitflow/internal/validation"
)

// schemaVersioner is implemented by the SQL stores
type schemaVersioner interface {
	SchemaVersion() (current, latest int, err error)
}

type DoctorCmd struct{}

type check struct {
	name string
	// warnOnly checks never fail the command
	warnOnly bool
	// needsDB checks are skipped when the database is unreachable
	needsDB bool
	run     func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Database reachable", run: checkDBReachable},
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Timezone", needsDB: true, run: checkTimezone},
	{name: "Data validation", needsDB: true, run: checkValidation},
	{name: "Statistics", needsDB: true, run: checkStatistics},
	{name: "API server lock", warnOnly: true, run: checkServerLock},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := true
	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			if c.name == checks[0].name {
				dbReachable = false
			}
		}
	}

	ctx.Println()
	if hasError {
		return errors.New("diagnostics found problems")
	}
	ctx.Println("All checks passed.")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	_, err := ctx.Store.GetSettings()
	return err
}

func checkSchemaVersion(ctx *cli.Context) error {
	sv, ok := ctx.Store.(schemaVersioner)
	if !ok {
		return nil
	}
	current, latest, err := sv.SchemaVersion()
	if err != nil {
		return err
	}
	if current != latest {
		return fmt.Errorf("schema version %d, latest is %d; run 'habitflow init' to migrate", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := ctx.BackupManager()
	if mgr == nil {
		return nil
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s", mgr.GetBackupDir())
	}
	if age := time.Since(backups[0].Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("latest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkTimezone(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("invalid timezone %q", settings.Timezone)
	}
	now := time.Now()
	if now.Year() < 2000 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}
	progress, err := ctx.Store.GetAllProgress()
	if err != nil {
		return err
	}
	result := validation.New().ValidateAll(habits, progress)
	if result.HasConflicts() {
		return errors.New(result.FormatReport())
	}
	return nil
}

// checkStatistics computes every owner's dashboard so malformed dates surface here
func checkStatistics(ctx *cli.Context) error {
	cal, err := ctx.Calendar()
	if err != nil {
		return err
	}
	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}
	progress, err := ctx.Store.GetAllProgress()
	if err != nil {
		return err
	}
	_, err = stats.New(cal).CalculateDashboardStats(habits, progress)
	return err
}

// checkServerLock passes when no server ran or the recorded one is alive, and
// warns about a lockfile left behind by a server that died.
func checkServerLock(ctx *cli.Context) error {
	path := server.LockfilePath(config.GetPaths().ConfigDir)
	_, err := server.RunningServer(path)
	switch {
	case err == nil, errors.Is(err, server.ErrNoLock):
		return nil
	case errors.Is(err, server.ErrStaleLock):
		return fmt.Errorf("%v; remove %s", err, path)
	default:
		return err
	}
}
