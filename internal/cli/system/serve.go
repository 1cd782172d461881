package system

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/habitflow/internal/cli"
	"github.com/julianstephens/habitflow/internal/config"
	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/keyring"
	"github.com/julianstephens/habitflow/internal/logger"
	"github.com/julianstephens/habitflow/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Listen address. Defaults to server.addr from the config file."`
}

func (cmd *ServeCmd) Run(ctx *cli.Context) error {
	cfg := serverConfig(ctx)

	secret, err := jwtSecret(cfg)
	if err != nil {
		return err
	}

	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	srv := server.New(svc, server.Options{
		JWTSecret:    secret,
		AllowOrigins: cfg.Server.AllowOrigins,
	})

	sched := server.NewScheduler(svc.Calendar().Location())
	if mgr := ctx.BackupManager(); mgr != nil && cfg.Backup.IsEnabled() {
		id, err := sched.ScheduleBackup(cfg.Backup.Schedule, mgr.CreateBackup)
		if err != nil {
			return fmt.Errorf("invalid backup schedule %q: %w", cfg.Backup.Schedule, err)
		}
		logger.Info("Scheduled backups", "schedule", cfg.Backup.Schedule, "next", sched.Next(id).Format(time.RFC3339))
	}
	sched.Start()
	defer sched.Stop()

	addr := cmd.Addr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	lockPath := server.LockfilePath(config.GetPaths().ConfigDir)
	if lock, err := server.RunningServer(lockPath); err == nil {
		return fmt.Errorf("%s serve is already running on %s (pid %d)", constants.AppName, lock.Addr, lock.PID)
	}
	if err := server.WriteLock(lockPath, addr); err != nil {
		return err
	}
	defer func() {
		if err := server.RemoveLock(lockPath); err != nil {
			logger.Warn("Failed to remove lockfile", "path", lockPath, "error", err)
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Listening", "addr", addr)
		errCh <- srv.Listen(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("Shutting down", "signal", sig.String())
		return srv.Shutdown()
	}
}

func serverConfig(ctx *cli.Context) *config.Config {
	if ctx.Config != nil {
		return ctx.Config
	}
	return config.Default()
}

// jwtSecret prefers the config file and environment, then the OS keyring.
func jwtSecret(cfg *config.Config) (string, error) {
	if cfg.Server.JWTSecret != "" {
		return cfg.Server.JWTSecret, nil
	}
	secret, err := keyring.GetJWTSecret()
	if err == nil {
		return secret, nil
	}
	if errors.Is(err, keyring.ErrNotFound) {
		return "", fmt.Errorf("%w: set HABITFLOW_JWT_SECRET or run 'habitflow keyring set-secret'", server.ErrMissingSecret)
	}
	return "", err
}

// TokenCmd issues an API token for an owner.
type TokenCmd struct {
	Owner string        `help:"Owner ID to embed as the token subject. Defaults to the local owner."`
	TTL   time.Duration `name:"ttl" help:"Token lifetime. Defaults to server.token_ttl_hours."`
}

func (cmd *TokenCmd) Run(ctx *cli.Context) error {
	cfg := serverConfig(ctx)
	secret, err := jwtSecret(cfg)
	if err != nil {
		return err
	}

	owner := cmd.Owner
	if owner == "" {
		settings, err := ctx.Settings()
		if err != nil {
			return err
		}
		owner = settings.OwnerID
	}

	ttl := cmd.TTL
	if ttl <= 0 {
		ttl = time.Duration(cfg.Server.TokenTTLHours) * time.Hour
	}

	token, err := server.IssueToken(secret, owner, ttl, time.Now())
	if err != nil {
		return err
	}
	ctx.Println(token)
	return nil
}
