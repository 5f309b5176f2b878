// Package services contains server-side business logic. This file implements
// UserService, which checks credentials and issues or validates access tokens.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/coursework/internal/common"
	"github.com/dmitrijs2005/coursework/internal/server/auth"
	"github.com/dmitrijs2005/coursework/internal/server/config"
)

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Username  string
	Role      string
}

// UserService provides authentication-related operations:
// - Login: verify credentials and mint an access token
// - Authenticate: resolve an access token to its principal
type UserService struct {
	verifier                    auth.CredentialVerifier
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService from a verifier and server config.
func NewUserService(v auth.CredentialVerifier, cfg *config.Config) *UserService {
	return &UserService{
		verifier:                    v,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Login verifies the credentials and returns a new Session. Unknown users and
// wrong passwords both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, username, password string) (*Session, error) {
	p, err := s.verifier.Verify(username, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	token, expiresAt, err := auth.GenerateToken(p.Username, p.Role, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return &Session{Token: token, ExpiresAt: expiresAt, Username: p.Username, Role: p.Role}, nil
}

// Authenticate returns the principal named by an access token.
func (s *UserService) Authenticate(token string) (*auth.Principal, error) {
	return auth.ParseToken(token, s.jwtSecret)
}
