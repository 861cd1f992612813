// Package migrations embeds the schema for every supported database driver
// and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

var errNilDB = errors.New("db is nil")

// dialects maps a database/sql driver name to its goose dialect and
// migration directory.
var dialects = map[string]struct {
	dialect goose.Dialect
	dir     string
}{
	"pgx":     {goose.DialectPostgres, "postgres"},
	"sqlite3": {goose.DialectSQLite3, "sqlite"},
}

// Migrate applies all pending migrations for driver.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	if db == nil {
		return errNilDB
	}

	d, ok := dialects[driver]
	if !ok {
		return fmt.Errorf("migration error: unsupported driver %q", driver)
	}

	fsys, err := fs.Sub(embedMigrations, d.dir)
	if err != nil {
		return fmt.Errorf("migration error opening %s migrations: %w", d.dir, err)
	}

	provider, err := goose.NewProvider(d.dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("migration error creating provider: %w", err)
	}

	if _, err = provider.Up(ctx); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
