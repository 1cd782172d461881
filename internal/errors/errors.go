// Package errors renders command failures for the terminal.
package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/habitflow/internal/keyring"
	"github.com/julianstephens/habitflow/internal/logger"
	"github.com/julianstephens/habitflow/internal/stats"
	"github.com/julianstephens/habitflow/internal/storage"
	"github.com/julianstephens/habitflow/internal/storage/postgres"
)

var hints = []struct {
	target error
	hint   string
}{
	{storage.ErrNotInitialized, "run 'habitflow init' to create the database"},
	{postgres.ErrEmbeddedCredentials, "store the connection string with 'habitflow keyring set' or use a .pgpass file"},
	{keyring.ErrKeyringUnavailable, "pass --db or set HABITFLOW_DB instead"},
	{stats.ErrMalformedDate, "run 'habitflow doctor' to find the bad records"},
}

// Hint returns a suggested next step for err, or "" when none applies.
func Hint(err error) string {
	for _, h := range hints {
		if errors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Format renders err with an "Error: " prefix and, when known, a hint line.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\nHint: " + hint
	}
	return msg
}

// Fatal logs err and exits with status 1. A nil err is a no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("command failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}
