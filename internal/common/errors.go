// Package common defines shared constants and sentinel errors used across
// client and server layers of AUXillary. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Reported to callers in place of unexpected failures.
	ErrorInternal = errors.New("internal error")

	// Authentication outcome kinds.
	ErrorInvalidInput = errors.New("invalid input")
	ErrorConflict     = errors.New("conflict")
	ErrorUnauthorized = errors.New("unauthorized")
)
