// Package services implements the authentication service: account
// registration and password login over the User Store.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"unicode/utf8"

	"github.com/dmitrijs2005/auxillary/internal/common"
	"github.com/dmitrijs2005/auxillary/internal/cryptox"
	"github.com/dmitrijs2005/auxillary/internal/dbx"
	"github.com/dmitrijs2005/auxillary/internal/logging"
	"github.com/dmitrijs2005/auxillary/internal/server/models"
	"github.com/dmitrijs2005/auxillary/internal/server/repositories/repomanager"
)

const minPasswordLength = 8

type RegistrationRequest struct {
	UserName             string
	Email                string
	Password             string
	PasswordConfirmation string
}

type LoginRequest struct {
	UserName string
	Password string
}

// Result is what transports report back to the caller. Tokens are set only
// by a successful Login.
type Result struct {
	Success      bool
	Message      string
	AccessToken  string
	RefreshToken string
}

type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	newToken    func() (string, error)
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "auth"),
		newToken:    cryptox.NewToken,
	}
}

// validEmail accepts a bare RFC 5322 addr-spec. Display-name forms such as
// "Alice <alice@example.com>" are rejected.
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// Register validates req and creates the user. Validation stops at the first
// failing rule; the order of the rules is observable through the message.
func (s *AuthService) Register(ctx context.Context, req RegistrationRequest) (*Result, error) {

	if req.UserName == "" || req.Password == "" {
		return nil, invalidInput(MsgCredentialsRequired)
	}

	if req.Email == "" || !validEmail(req.Email) {
		return nil, invalidInput(MsgInvalidEmail)
	}

	exists, err := s.repomanager.Users(s.db).Exists(ctx, req.UserName)
	if err != nil {
		return nil, fmt.Errorf("error checking username: %w", err)
	}
	if exists {
		return nil, conflict(MsgUsernameTaken)
	}

	if req.Password != req.PasswordConfirmation {
		return nil, invalidInput(MsgPasswordMismatch)
	}

	if utf8.RuneCountInString(req.Password) < minPasswordLength {
		return nil, invalidInput(MsgPasswordTooShort)
	}

	salt, err := cryptox.NewSalt()
	if err != nil {
		return nil, fmt.Errorf("error generating salt: %w", err)
	}

	password := []byte(req.Password)
	hash := cryptox.DerivePasswordHash(password, salt)
	common.WipeByteArray(password)

	user := &models.User{
		UserName:     req.UserName,
		Email:        req.Email,
		PasswordSalt: salt,
		PasswordHash: hash,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err = s.repomanager.Users(tx).Create(ctx, user)
		return err
	})
	if err != nil {
		// a concurrent registration won the race between Exists and Create
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, conflict(MsgUsernameTaken)
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "username", user.UserName, "user_id", user.ID)

	return &Result{Success: true, Message: MsgRegistered}, nil
}

// Login checks the password of an existing user and issues a fresh pair of
// opaque tokens. Unknown usernames and wrong passwords are indistinguishable
// to the caller.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*Result, error) {

	if req.UserName == "" || req.Password == "" {
		return nil, invalidInput(MsgCredentialsRequired)
	}

	password := []byte(req.Password)
	defer common.WipeByteArray(password)

	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, req.UserName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn the same derivation cost as a real check
			if salt, serr := cryptox.NewSalt(); serr == nil {
				cryptox.DerivePasswordHash(password, salt)
			}
			s.logger.Debug(ctx, "login for unknown user", "username", req.UserName)
			return nil, unauthorized(MsgInvalidCredentials)
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	candidate := cryptox.DerivePasswordHash(password, user.PasswordSalt)
	defer common.WipeByteArray(candidate)

	if !cryptox.CompareHash(candidate, user.PasswordHash) {
		s.logger.Debug(ctx, "login with wrong password", "username", req.UserName)
		return nil, unauthorized(MsgInvalidCredentials)
	}

	access, refresh, err := s.generateTokenPair()
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user logged in", "username", user.UserName, "user_id", user.ID)

	return &Result{
		Success:      true,
		Message:      MsgLoggedIn,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// generateTokenPair draws two independent tokens, redrawing the refresh token
// until it differs from the access token.
func (s *AuthService) generateTokenPair() (string, string, error) {
	access, err := s.newToken()
	if err != nil {
		return "", "", fmt.Errorf("error generating access token: %w", err)
	}

	refresh := access
	for refresh == access {
		refresh, err = s.newToken()
		if err != nil {
			return "", "", fmt.Errorf("error generating refresh token: %w", err)
		}
	}

	return access, refresh, nil
}
