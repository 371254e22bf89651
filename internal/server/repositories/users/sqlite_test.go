package users

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/dmitrijs2005/auxillary/internal/common"
	"github.com/dmitrijs2005/auxillary/internal/server/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE users (
    id            TEXT PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    email         TEXT NOT NULL,
    password_salt BLOB NOT NULL CHECK (length(password_salt) = 16),
    password_hash BLOB NOT NULL CHECK (length(password_hash) = 20),
    created_at    TEXT NOT NULL
);`

func newSQLiteRepo(t *testing.T) (*SQLiteRepository, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(sqliteSchema)
	require.NoError(t, err)
	return NewSQLiteRepository(db), db
}

func sqliteUser(name string) *models.User {
	return &models.User{
		UserName:     name,
		Email:        name + "@example.com",
		PasswordSalt: bytes.Repeat([]byte{1}, 16),
		PasswordHash: bytes.Repeat([]byte{2}, 20),
	}
}

func TestSQLite_CreateAndGet(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, sqliteUser("alice"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetUserByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, created.PasswordSalt, got.PasswordSalt)
	assert.Equal(t, created.PasswordHash, got.PasswordHash)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))

	ok, err := repo.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSQLite_UsernamesAreCaseSensitive(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, sqliteUser("alice"))
	require.NoError(t, err)

	ok, err := repo.Exists(ctx, "Alice")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.GetUserByLogin(ctx, "Alice")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.Create(ctx, sqliteUser("Alice"))
	assert.NoError(t, err)
}

func TestSQLite_DuplicateUsername(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, sqliteUser("alice"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, sqliteUser("alice"))
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestSQLite_ConcurrentCreateSameUsername(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Create(ctx, sqliteUser("bob"))
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, common.ErrorAlreadyExists):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflicts)
}

func TestSQLite_GetUnknown(t *testing.T) {
	repo, _ := newSQLiteRepo(t)

	_, err := repo.GetUserByLogin(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLite_ClosedDB(t *testing.T) {
	repo, db := newSQLiteRepo(t)
	require.NoError(t, db.Close())

	_, err := repo.Exists(context.Background(), "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}
