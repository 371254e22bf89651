package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/auxillary/internal/dbx"
	"github.com/dmitrijs2005/auxillary/internal/server/config"
	"github.com/dmitrijs2005/auxillary/internal/server/migrations"
	"github.com/dmitrijs2005/auxillary/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) DriverName() string { return config.DriverPostgres }

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// RunMigrations applies the embedded PostgreSQL migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, goose.DialectPostgres, db, migrations.PostgresDir)
}
