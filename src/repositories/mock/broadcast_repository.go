package mock

import (
	"context"

	"github.com/fluentos/desktop-admin-api/src/models"
	"github.com/fluentos/desktop-admin-api/src/repositories"
)

// BroadcastRepository is a mock implementation of repositories.BroadcastRepository
type BroadcastRepository struct {
	ActivateFunc   func(ctx context.Context, b *models.Broadcast) error
	GetActiveFunc  func(ctx context.Context) (*models.Broadcast, error)
	GetByIDFunc    func(ctx context.Context, id string) (*models.Broadcast, error)
	DeactivateFunc func(ctx context.Context, id string) error

	// Call tracking
	Calls map[string][]interface{}
}

// NewBroadcastRepository creates a new mock broadcast repository
func NewBroadcastRepository() *BroadcastRepository {
	return &BroadcastRepository{
		Calls: make(map[string][]interface{}),
	}
}

func (m *BroadcastRepository) Activate(ctx context.Context, b *models.Broadcast) error {
	m.Calls["Activate"] = append(m.Calls["Activate"], b)
	if m.ActivateFunc != nil {
		return m.ActivateFunc(ctx, b)
	}
	return nil
}

func (m *BroadcastRepository) GetActive(ctx context.Context) (*models.Broadcast, error) {
	m.Calls["GetActive"] = append(m.Calls["GetActive"], nil)
	if m.GetActiveFunc != nil {
		return m.GetActiveFunc(ctx)
	}
	return nil, repositories.ErrNotFound
}

func (m *BroadcastRepository) GetByID(ctx context.Context, id string) (*models.Broadcast, error) {
	m.Calls["GetByID"] = append(m.Calls["GetByID"], id)
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, repositories.ErrNotFound
}

func (m *BroadcastRepository) Deactivate(ctx context.Context, id string) error {
	m.Calls["Deactivate"] = append(m.Calls["Deactivate"], id)
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, id)
	}
	return nil
}

var _ repositories.BroadcastRepository = (*BroadcastRepository)(nil)
