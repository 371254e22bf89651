package client

import (
	"errors"

	"google.golang.org/grpc/codes"
)

var ErrUnavailable = errors.New("server unavailable")

// ServerError is a rejection reported by the server. Message is the text the
// server sent, e.g. "Username is already taken".
type ServerError struct {
	Code    codes.Code
	Message string
}

func (e *ServerError) Error() string { return e.Message }
