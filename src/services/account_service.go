package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fluentos/desktop-admin-api/src/logging"
	"github.com/fluentos/desktop-admin-api/src/models"
	"github.com/fluentos/desktop-admin-api/src/repositories"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	msgUsernameTaken    = "Ce nom d'utilisateur existe déjà"
	msgUserNotFound     = "Utilisateur non trouvé"
	msgProtectedAccount = "Impossible de supprimer le compte SuperAdmin"
	msgProtectedRename  = "Impossible de renommer le compte SuperAdmin"
	msgUsernameRequired = "Le nom d'utilisateur est requis"
	msgPasswordRequired = "Le mot de passe est requis"
	msgInvalidRole      = "Rôle invalide"
)

// DefaultCredentials are the passwords used when seeding the default accounts
type DefaultCredentials struct {
	AdminPassword string
	UserPassword  string
}

// AccountService manages desktop user accounts
type AccountService struct {
	repo   repositories.UserRepository
	hasher PasswordHasher
	logger zerolog.Logger
}

// NewAccountService creates a new account service
func NewAccountService(repo repositories.UserRepository, hasher PasswordHasher) *AccountService {
	return &AccountService{
		repo:   repo,
		hasher: hasher,
		logger: logging.NewLogger("account_service"),
	}
}

// ListUsers returns every account, oldest first
func (s *AccountService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx, models.MaxListedUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// CreateUser registers a new account. An empty role means models.RoleUser.
func (s *AccountService) CreateUser(ctx context.Context, username, password string, role models.Role) (*models.User, error) {
	if role == "" {
		role = models.RoleUser
	}
	if err := validateAccount(username, password, role); err != nil {
		return nil, err
	}

	taken, err := s.usernameOwner(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken != nil {
		return nil, newServiceError(ErrConflict, msgUsernameTaken)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, newServiceError(ErrConflict, msgUsernameTaken)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("username", user.Username).
		Str("role", string(user.Role)).
		Msg("User created")

	return user, nil
}

// UpdateUser overwrites username, password and role of an existing account.
// The protected administrator keeps its username.
func (s *AccountService) UpdateUser(ctx context.Context, id, username, password string, role models.Role) error {
	if role == "" {
		role = models.RoleUser
	}
	if err := validateAccount(username, password, role); err != nil {
		return err
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return newServiceError(ErrNotFound, msgUserNotFound)
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	if username != user.Username {
		if user.IsProtected() {
			return newServiceError(ErrForbidden, msgProtectedRename)
		}
		owner, err := s.usernameOwner(ctx, username)
		if err != nil {
			return err
		}
		if owner != nil && owner.ID != id {
			return newServiceError(ErrConflict, msgUsernameTaken)
		}
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	user.Username = username
	user.PasswordHash = hash
	user.Role = role

	if err := s.repo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return newServiceError(ErrNotFound, msgUserNotFound)
		case errors.Is(err, repositories.ErrDuplicate):
			return newServiceError(ErrConflict, msgUsernameTaken)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info().Str("user_id", id).Str("username", username).Msg("User updated")
	return nil
}

// DeleteUser removes an account. The protected administrator cannot be deleted.
func (s *AccountService) DeleteUser(ctx context.Context, id string) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return newServiceError(ErrNotFound, msgUserNotFound)
		}
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user.IsProtected() {
		return newServiceError(ErrForbidden, msgProtectedAccount)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return newServiceError(ErrNotFound, msgUserNotFound)
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info().Str("user_id", id).Str("username", user.Username).Msg("User deleted")
	return nil
}

// EnsureDefaults seeds the administrator and trainer accounts when missing.
// Running it again is a no-op.
func (s *AccountService) EnsureDefaults(ctx context.Context, creds DefaultCredentials) error {
	if creds.AdminPassword == "" {
		creds.AdminPassword = models.DefaultAdminPassword
	}
	if creds.UserPassword == "" {
		creds.UserPassword = models.DefaultUserPassword
	}

	seeds := []struct {
		username  string
		password  string
		wellKnown string
		role      models.Role
	}{
		{models.ProtectedUsername, creds.AdminPassword, models.DefaultAdminPassword, models.RoleAdmin},
		{models.DefaultUsername, creds.UserPassword, models.DefaultUserPassword, models.RoleUser},
	}

	for _, seed := range seeds {
		existing, err := s.usernameOwner(ctx, seed.username)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}

		_, err = s.CreateUser(ctx, seed.username, seed.password, seed.role)
		if err != nil && !errors.Is(err, ErrConflict) {
			return fmt.Errorf("failed to seed %s: %w", seed.username, err)
		}
		if err == nil && seed.password == seed.wellKnown {
			s.logger.Warn().
				Str("username", seed.username).
				Msg("Default account seeded with the well-known password, change it")
		}
	}

	return nil
}

// usernameOwner returns the account holding username, or nil
func (s *AccountService) usernameOwner(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up username: %w", err)
	}
	return user, nil
}

func validateAccount(username, password string, role models.Role) error {
	if strings.TrimSpace(username) == "" {
		return newServiceError(ErrValidation, msgUsernameRequired)
	}
	if password == "" {
		return newServiceError(ErrValidation, msgPasswordRequired)
	}
	if !role.Valid() {
		return newServiceError(ErrValidation, msgInvalidRole)
	}
	return nil
}
