package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/auxillary/internal/common"
	"github.com/dmitrijs2005/auxillary/internal/dbx"
	"github.com/dmitrijs2005/auxillary/internal/server/models"
	"github.com/google/uuid"
)

// SQLiteRepository implements Repository for the modernc.org/sqlite driver.
// SQLite has no UUID type, so IDs are generated here and stored as TEXT;
// created_at is stored as RFC 3339 text in UTC.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// isUniqueViolation matches the message modernc.org/sqlite reports for
// UNIQUE and PRIMARY KEY constraint failures.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (r *SQLiteRepository) Exists(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (id, username, email, password_salt, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	id := uuid.NewString()
	createdAt := time.Now().UTC().Truncate(time.Second)

	_, err := r.db.ExecContext(ctx, query,
		id, user.UserName, user.Email, user.PasswordSalt, user.PasswordHash, createdAt.Format(time.RFC3339))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.ID = id
	user.CreatedAt = createdAt
	return user, nil
}

func (r *SQLiteRepository) GetUserByLogin(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, email, password_salt, password_hash, created_at
		FROM users
		WHERE username = ?
	`

	user := &models.User{}
	var createdAt string
	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&user.ID, &user.UserName, &user.Email, &user.PasswordSalt, &user.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("db error: bad created_at %q: %w", createdAt, err)
	}

	return user, nil
}

var _ Repository = (*SQLiteRepository)(nil)
