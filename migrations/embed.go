// Package migrations embeds the versioned schema files for each supported database.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

func sub(dir string) fs.FS {
	f, err := fs.Sub(FS, dir)
	if err != nil {
		// dir is a compile-time constant that matches the embed pattern
		panic(err)
	}
	return f
}

// SQLite returns the SQLite migration files.
func SQLite() fs.FS { return sub("sqlite") }

// Postgres returns the PostgreSQL migration files.
func Postgres() fs.FS { return sub("postgres") }
