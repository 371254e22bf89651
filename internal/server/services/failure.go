package services

import (
	"errors"

	"github.com/dmitrijs2005/auxillary/internal/common"
)

// Messages returned to callers. Transports pass them through verbatim.
const (
	MsgCredentialsRequired = "Username and password are required"
	MsgInvalidEmail        = "Email is required and must be a valid email address"
	MsgUsernameTaken       = "Username is already taken"
	MsgPasswordMismatch    = "Password and confirm password do not match"
	MsgPasswordTooShort    = "Password must be at least 8 characters long"
	MsgInvalidCredentials  = "Invalid username or password"

	MsgRegistered = "User registered successfully."
	MsgLoggedIn   = "User logged in successfully"
)

// Failure is a domain-level rejection of a request. Kind is one of
// common.ErrorInvalidInput, common.ErrorConflict or common.ErrorUnauthorized.
type Failure struct {
	Kind    error
	Message string
}

func (f *Failure) Error() string { return f.Message }

func (f *Failure) Unwrap() error { return f.Kind }

func invalidInput(msg string) *Failure { return &Failure{Kind: common.ErrorInvalidInput, Message: msg} }
func conflict(msg string) *Failure     { return &Failure{Kind: common.ErrorConflict, Message: msg} }
func unauthorized(msg string) *Failure { return &Failure{Kind: common.ErrorUnauthorized, Message: msg} }

// ResultFromFailure returns the unsuccessful Result for err when err is a
// *Failure. ok is false for any other error.
func ResultFromFailure(err error) (res *Result, ok bool) {
	var f *Failure
	if !errors.As(err, &f) {
		return nil, false
	}
	return &Result{Success: false, Message: f.Message}, true
}

// Outcome labels err for logs and metrics.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, common.ErrorInvalidInput):
		return "invalid_input"
	case errors.Is(err, common.ErrorConflict):
		return "conflict"
	case errors.Is(err, common.ErrorUnauthorized):
		return "unauthorized"
	default:
		return "error"
	}
}
