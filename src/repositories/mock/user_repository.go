package mock

import (
	"context"

	"github.com/fluentos/desktop-admin-api/src/models"
	"github.com/fluentos/desktop-admin-api/src/repositories"
)

// UserRepository is a mock implementation of repositories.UserRepository
type UserRepository struct {
	// Function stubs that can be overridden in tests
	ListFunc          func(ctx context.Context, limit int) ([]models.User, error)
	GetByIDFunc       func(ctx context.Context, id string) (*models.User, error)
	GetByUsernameFunc func(ctx context.Context, username string) (*models.User, error)
	CreateFunc        func(ctx context.Context, user *models.User) error
	UpdateFunc        func(ctx context.Context, user *models.User) error
	DeleteFunc        func(ctx context.Context, id string) error

	// Call tracking
	Calls map[string][]interface{}
}

// NewUserRepository creates a new mock user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{
		Calls: make(map[string][]interface{}),
	}
}

func (m *UserRepository) List(ctx context.Context, limit int) ([]models.User, error) {
	m.Calls["List"] = append(m.Calls["List"], limit)
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit)
	}
	return nil, nil
}

func (m *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	m.Calls["GetByID"] = append(m.Calls["GetByID"], id)
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, repositories.ErrNotFound
}

func (m *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	m.Calls["GetByUsername"] = append(m.Calls["GetByUsername"], username)
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return nil, repositories.ErrNotFound
}

func (m *UserRepository) Create(ctx context.Context, user *models.User) error {
	m.Calls["Create"] = append(m.Calls["Create"], user)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *UserRepository) Update(ctx context.Context, user *models.User) error {
	m.Calls["Update"] = append(m.Calls["Update"], user)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *UserRepository) Delete(ctx context.Context, id string) error {
	m.Calls["Delete"] = append(m.Calls["Delete"], id)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// Ensure UserRepository implements the interface
var _ repositories.UserRepository = (*UserRepository)(nil)
