// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered account. PasswordSalt and PasswordHash are written once
// at registration and never change afterwards.
type User struct {
	ID           string
	UserName     string
	Email        string
	PasswordSalt []byte
	PasswordHash []byte
	CreatedAt    time.Time
}
