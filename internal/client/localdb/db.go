// Package localdb opens the client's local vault database and brings its
// schema up to date.
//
// Two drivers are supported: the pure-Go SQLite driver (the default, one
// file per device) and pgx for installations that keep the vault in a local
// PostgreSQL instance.
package localdb

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/keeperbackup/internal/client/migrations"
	"github.com/dmitrijs2005/keeperbackup/internal/dbx"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

func dialect(driver string) (goose.Dialect, string, error) {
	switch driver {
	case dbx.DriverSQLite:
		return goose.DialectSQLite3, "sqlite", nil
	case dbx.DriverPostgres:
		return goose.DialectPostgres, "postgres", nil
	default:
		return "", "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// RunMigrations applies all pending migrations for the driver's dialect.
// It is safe to call on an up-to-date database.
func RunMigrations(ctx context.Context, db *sql.DB, driver string) error {
	d, dir, err := dialect(driver)
	if err != nil {
		return err
	}

	fsys, err := fs.Sub(migrations.Migrations, dir)
	if err != nil {
		return fmt.Errorf("migrations dir %s: %w", dir, err)
	}

	provider, err := goose.NewProvider(d, db, fsys)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Open opens the database, verifies the connection and runs migrations.
func Open(ctx context.Context, driver, dsn string) (*dbx.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	if err := RunMigrations(ctx, db, driver); err != nil {
		_ = db.Close()
		return nil, err
	}

	return dbx.Wrap(db, driver), nil
}
