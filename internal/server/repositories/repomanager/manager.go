// Package repomanager vends dialect-specific repositories bound to a DBTX and
// applies the matching schema migrations.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/auxillary/internal/dbx"
	"github.com/dmitrijs2005/auxillary/internal/server/config"
	"github.com/dmitrijs2005/auxillary/internal/server/migrations"
	"github.com/dmitrijs2005/auxillary/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

type RepositoryManager interface {
	// DriverName is the database/sql driver the manager's SQL is written for.
	DriverName() string
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}

// New returns the manager for a config.Driver* value.
func New(driver string) (RepositoryManager, error) {
	switch driver {
	case config.DriverPostgres:
		return &PostgresRepositoryManager{}, nil
	case config.DriverSQLite:
		return &SQLiteRepositoryManager{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// gooseUp is a seam for testing; it applies every pending migration in fsys.
var gooseUp = func(ctx context.Context, dialect goose.Dialect, db *sql.DB, fsys fs.FS) error {
	p, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return err
	}
	_, err = p.Up(ctx)
	return err
}

func runMigrations(ctx context.Context, dialect goose.Dialect, db *sql.DB, dir string) error {
	fsys, err := fs.Sub(migrations.FS, dir)
	if err != nil {
		return err
	}
	if err := gooseUp(ctx, dialect, db, fsys); err != nil {
		return fmt.Errorf("migrations (%s): %w", dir, err)
	}
	return nil
}
