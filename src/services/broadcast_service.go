package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fluentos/desktop-admin-api/src/cache"
	"github.com/fluentos/desktop-admin-api/src/logging"
	"github.com/fluentos/desktop-admin-api/src/models"
	"github.com/fluentos/desktop-admin-api/src/repositories"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const msgMessageRequired = "Le message est requis"

// BroadcastService keeps at most one broadcast active
type BroadcastService struct {
	repo   repositories.BroadcastRepository
	cache  cache.BroadcastCache
	logger zerolog.Logger
}

// NewBroadcastService creates a new broadcast service. A nil cache disables caching.
func NewBroadcastService(repo repositories.BroadcastRepository, c cache.BroadcastCache) *BroadcastService {
	if c == nil {
		c = cache.Noop{}
	}
	return &BroadcastService{
		repo:   repo,
		cache:  c,
		logger: logging.NewLogger("broadcast_service"),
	}
}

// CreateBroadcast replaces the active broadcast with a new one
func (s *BroadcastService) CreateBroadcast(ctx context.Context, message, title, createdBy string) (*models.Broadcast, error) {
	if strings.TrimSpace(message) == "" {
		return nil, newServiceError(ErrValidation, msgMessageRequired)
	}
	if title == "" {
		title = models.DefaultBroadcastTitle
	}
	if createdBy == "" {
		createdBy = models.DefaultBroadcastCreator
	}

	b := &models.Broadcast{
		ID:        uuid.NewString(),
		Message:   message,
		Title:     title,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
		IsActive:  true,
	}
	if err := s.repo.Activate(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to create broadcast: %w", err)
	}
	s.invalidate(ctx)

	s.logger.Info().
		Str("broadcast_id", b.ID).
		Str("created_by", b.CreatedBy).
		Msg("Broadcast activated")

	return b, nil
}

// GetActiveBroadcast returns the active broadcast, or nil when none is active
func (s *BroadcastService) GetActiveBroadcast(ctx context.Context) (*models.Broadcast, error) {
	cached, hit, err := s.cache.Get(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Broadcast cache read failed")
	} else if hit {
		return cached, nil
	}

	b, err := s.repo.GetActive(ctx)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("failed to get active broadcast: %w", err)
		}
		b = nil
	}

	if err := s.cache.Set(ctx, b); err != nil {
		s.logger.Warn().Err(err).Msg("Broadcast cache write failed")
	}
	return b, nil
}

// DismissBroadcast deactivates a broadcast. Unknown or inactive ids are ignored.
func (s *BroadcastService) DismissBroadcast(ctx context.Context, id string) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load broadcast: %w", err)
	}
	if !b.IsActive {
		return nil
	}

	if err := s.repo.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("failed to dismiss broadcast: %w", err)
	}
	s.invalidate(ctx)

	s.logger.Info().Str("broadcast_id", id).Msg("Broadcast dismissed")
	return nil
}

func (s *BroadcastService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Broadcast cache invalidation failed")
	}
}
