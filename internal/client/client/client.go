package client

import "context"

type RegisterParams struct {
	UserName        string
	Email           string
	Password        string
	ConfirmPassword string
}

type Tokens struct {
	AccessToken  string
	RefreshToken string
}

type Client interface {
	Close() error
	// Register returns the server's confirmation message.
	Register(ctx context.Context, p RegisterParams) (string, error)
	Login(ctx context.Context, username, password string) (*Tokens, error)
}
