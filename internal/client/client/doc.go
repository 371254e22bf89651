// Package client talks to the AUXillary server over gRPC.
//
// GRPCClient wraps the AuthService stub, tags every call with a fresh
// request ID and maps transport failures to errors callers can match:
// ErrUnavailable when the server cannot be reached, and *ServerError
// carrying the server's own message for everything else.
package client
