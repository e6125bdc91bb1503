package mock

import (
	"context"

	"github.com/fluentos/desktop-admin-api/src/models"
	"github.com/fluentos/desktop-admin-api/src/repositories"
)

// LoginLogRepository is a mock implementation of repositories.LoginLogRepository
type LoginLogRepository struct {
	CreateFunc     func(ctx context.Context, entry *models.LoginLog) error
	ListRecentFunc func(ctx context.Context, limit int) ([]models.LoginLog, error)
	DeleteAllFunc  func(ctx context.Context) (int64, error)

	// Call tracking
	Calls map[string][]interface{}
}

// NewLoginLogRepository creates a new mock login log repository
func NewLoginLogRepository() *LoginLogRepository {
	return &LoginLogRepository{
		Calls: make(map[string][]interface{}),
	}
}

func (m *LoginLogRepository) Create(ctx context.Context, entry *models.LoginLog) error {
	m.Calls["Create"] = append(m.Calls["Create"], entry)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	return nil
}

func (m *LoginLogRepository) ListRecent(ctx context.Context, limit int) ([]models.LoginLog, error) {
	m.Calls["ListRecent"] = append(m.Calls["ListRecent"], limit)
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, limit)
	}
	return nil, nil
}

func (m *LoginLogRepository) DeleteAll(ctx context.Context) (int64, error) {
	m.Calls["DeleteAll"] = append(m.Calls["DeleteAll"], nil)
	if m.DeleteAllFunc != nil {
		return m.DeleteAllFunc(ctx)
	}
	return 0, nil
}

var _ repositories.LoginLogRepository = (*LoginLogRepository)(nil)
