package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/auxillary/internal/dbx"
	"github.com/dmitrijs2005/auxillary/internal/server/config"
	"github.com/dmitrijs2005/auxillary/internal/server/migrations"
	"github.com/dmitrijs2005/auxillary/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends SQLite-backed repositories for single-node
// deployments and tests.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) DriverName() string { return config.DriverSQLite }

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

// RunMigrations applies the embedded SQLite migrations.
func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, goose.DialectSQLite3, db, migrations.SQLiteDir)
}
