package system

import (
	"errors"
	"strings"
	"testing"
	"time"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/habitflow/internal/config"
	"github.com/julianstephens/habitflow/internal/keyring"
	"github.com/julianstephens/habitflow/internal/server"
)

func TestJWTSecret(t *testing.T) {
	gokeyring.MockInit()
	defer func() { _ = keyring.DeleteJWTSecret() }()

	cfg := config.Default()
	if _, err := jwtSecret(cfg); !errors.Is(err, server.ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}

	if err := keyring.SetJWTSecret("from-keyring"); err != nil {
		t.Fatalf("SetJWTSecret() failed: %v", err)
	}
	if got, err := jwtSecret(cfg); err != nil || got != "from-keyring" {
		t.Errorf("jwtSecret() = %q, %v; want keyring secret", got, err)
	}

	cfg.Server.JWTSecret = "from-config"
	if got, _ := jwtSecret(cfg); got != "from-config" {
		t.Errorf("jwtSecret() = %q, want config secret first", got)
	}
}

func TestTokenCmd(t *testing.T) {
	gokeyring.MockInit()

	ctx, out := setupTestContext(t)
	ctx.Config.Server.JWTSecret = "test-secret"

	cmd := &TokenCmd{TTL: time.Hour}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("TokenCmd.Run() failed: %v", err)
	}

	settings, _ := ctx.Store.GetSettings()
	owner, err := server.ParseToken("test-secret", strings.TrimSpace(out.String()))
	if err != nil {
		t.Fatalf("ParseToken() failed: %v", err)
	}
	if owner != settings.OwnerID {
		t.Errorf("token subject = %q, want %q", owner, settings.OwnerID)
	}

	out.Reset()
	cmd = &TokenCmd{Owner: "someone-else"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("TokenCmd.Run() failed: %v", err)
	}
	owner, err = server.ParseToken("test-secret", strings.TrimSpace(out.String()))
	if err != nil || owner != "someone-else" {
		t.Errorf("ParseToken() = %q, %v; want someone-else", owner, err)
	}
}
