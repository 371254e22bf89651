// Package users provides the User Store: repositories that persist and look up
// accounts by exact username, for PostgreSQL and SQLite.
package users

import (
	"context"

	"github.com/dmitrijs2005/auxillary/internal/server/models"
)

// Repository is the User Store contract consumed by the authentication service.
//
// Implementations must treat usernames as exact, case-sensitive keys and must
// reject a second user with the same username at insert time by returning
// common.ErrorAlreadyExists.
type Repository interface {
	// Exists reports whether a user with exactly this username is persisted.
	Exists(ctx context.Context, username string) (bool, error)
	// GetUserByLogin returns the user or common.ErrorNotFound.
	GetUserByLogin(ctx context.Context, username string) (*models.User, error)
	// Create inserts user, filling in the store-assigned ID and CreatedAt.
	Create(ctx context.Context, user *models.User) (*models.User, error)
}
