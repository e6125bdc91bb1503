package services

import (
	"context"
	"fmt"
	"time"

	"github.com/fluentos/desktop-admin-api/src/logging"
	"github.com/fluentos/desktop-admin-api/src/models"
	"github.com/fluentos/desktop-admin-api/src/repositories"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AuditLogService stores and lists login attempts
type AuditLogService struct {
	repo   repositories.LoginLogRepository
	logger zerolog.Logger
	now    func() time.Time
}

// NewAuditLogService creates a new audit log service
func NewAuditLogService(repo repositories.LoginLogRepository) *AuditLogService {
	return &AuditLogService{
		repo:   repo,
		logger: logging.NewLogger("audit_service"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Record appends one attempt. An empty ip is stored as models.PlaceholderIP.
func (s *AuditLogService) Record(ctx context.Context, username string, success bool, ip string, role *models.Role) error {
	if ip == "" {
		ip = models.PlaceholderIP
	}
	entry := &models.LoginLog{
		ID:        uuid.NewString(),
		Username:  username,
		Success:   success,
		IPAddress: ip,
		Timestamp: s.now(),
		Role:      role,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to record login attempt: %w", err)
	}
	return nil
}

// ListLogs returns the most recent attempts, newest first
func (s *AuditLogService) ListLogs(ctx context.Context) ([]models.LoginLog, error) {
	logs, err := s.repo.ListRecent(ctx, models.MaxListedLogs)
	if err != nil {
		return nil, fmt.Errorf("failed to list login logs: %w", err)
	}
	if logs == nil {
		logs = []models.LoginLog{}
	}
	return logs, nil
}

// ClearLogs deletes every recorded attempt and returns how many were removed
func (s *AuditLogService) ClearLogs(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear login logs: %w", err)
	}
	s.logger.Info().Int64("deleted", n).Msg("Login logs cleared")
	return n, nil
}
