package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fluentos/desktop-admin-api/src/logging"
	"github.com/fluentos/desktop-admin-api/src/models"
	"github.com/fluentos/desktop-admin-api/src/repositories"
	"github.com/rs/zerolog"
)

const (
	msgLoginSuccess = "Connexion réussie"
	msgLoginFailed  = "Identifiant ou mot de passe incorrect"

	// unknownUserPassword is hashed once so unknown usernames still pay for a comparison
	unknownUserPassword = "unknown-user-placeholder"
)

// LoginResult is returned for every login attempt. User is nil on failure.
type LoginResult struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
	Message string       `json:"message"`
}

// AuthService verifies credentials and records every attempt
type AuthService struct {
	users  repositories.UserRepository
	hasher PasswordHasher
	audit  *AuditLogService
	logger zerolog.Logger

	dummyHash string
}

// NewAuthService creates a new authentication service
func NewAuthService(users repositories.UserRepository, hasher PasswordHasher, audit *AuditLogService) *AuthService {
	logger := logging.NewLogger("auth_service")
	dummy, err := hasher.Hash(unknownUserPassword)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to prepare placeholder hash")
	}
	return &AuthService{
		users:     users,
		hasher:    hasher,
		audit:     audit,
		logger:    logger,
		dummyHash: dummy,
	}
}

// Login checks username (case-sensitive) and password. A wrong username and a
// wrong password produce the same result. The error return is reserved for
// store failures.
func (s *AuthService) Login(ctx context.Context, username, password, ip string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	var ok bool
	if user != nil {
		ok = s.hasher.Compare(user.PasswordHash, password)
	} else {
		s.hasher.Compare(s.dummyHash, password)
	}

	var role *models.Role
	if ok {
		r := user.Role
		role = &r
	}
	if err := s.audit.Record(ctx, username, ok, ip, role); err != nil {
		return nil, err
	}

	if !ok {
		s.logger.Info().Str("username", username).Str("ip", ip).Msg("Login failed")
		return &LoginResult{Success: false, Message: msgLoginFailed}, nil
	}

	s.logger.Info().Str("username", username).Str("ip", ip).Msg("Login succeeded")
	return &LoginResult{Success: true, User: user, Message: msgLoginSuccess}, nil
}
