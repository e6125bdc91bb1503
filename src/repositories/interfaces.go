package repositories

import (
	"context"
	"errors"

	"github.com/fluentos/desktop-admin-api/src/models"
)

var (
	// ErrNotFound indicates no record matched the lookup
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a uniqueness constraint was violated
	ErrDuplicate = errors.New("record already exists")
)

// UserRepository defines the interface for user account data access
type UserRepository interface {
	List(ctx context.Context, limit int) ([]models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	// Update overwrites username, password hash and role of the matching record
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

// LoginLogRepository defines the interface for the authentication audit trail
type LoginLogRepository interface {
	Create(ctx context.Context, entry *models.LoginLog) error
	ListRecent(ctx context.Context, limit int) ([]models.LoginLog, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// BroadcastRepository defines the interface for broadcast data access
type BroadcastRepository interface {
	// Activate deactivates every active broadcast and inserts b as the only
	// active one, as a single atomic write
	Activate(ctx context.Context, b *models.Broadcast) error
	GetActive(ctx context.Context) (*models.Broadcast, error)
	GetByID(ctx context.Context, id string) (*models.Broadcast, error)
	// Deactivate clears the active flag; unknown ids are not an error
	Deactivate(ctx context.Context, id string) error
}
