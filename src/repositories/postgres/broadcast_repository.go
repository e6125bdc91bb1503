package postgres

import (
	"context"
	"fmt"

	"github.com/fluentos/desktop-admin-api/src/models"
	"github.com/fluentos/desktop-admin-api/src/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BroadcastRepository stores announcements in the broadcasts table
type BroadcastRepository struct {
	pool *pgxpool.Pool
}

// NewBroadcastRepository creates a PostgreSQL-backed broadcast repository
func NewBroadcastRepository(pool *pgxpool.Pool) *BroadcastRepository {
	return &BroadcastRepository{pool: pool}
}

const broadcastColumns = `id, message, title, created_by, created_at, is_active`

// Activate runs the deactivate+insert pair in one transaction. The table lock
// serializes concurrent activations; plain reads are not blocked.
func (r *BroadcastRepository) Activate(ctx context.Context, b *models.Broadcast) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `LOCK TABLE broadcasts IN EXCLUSIVE MODE`); err != nil {
			return fmt.Errorf("failed to lock broadcasts: %w", err)
		}
		if _, err := tx.Exec(ctx, `UPDATE broadcasts SET is_active = false WHERE is_active`); err != nil {
			return fmt.Errorf("failed to deactivate broadcasts: %w", err)
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO broadcasts (`+broadcastColumns+`) VALUES ($1, $2, $3, $4, $5, true)`,
			b.ID, b.Message, b.Title, b.CreatedBy, b.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert broadcast: %w", err)
		}
		return nil
	})
	if err != nil {
		return translate(err)
	}
	b.IsActive = true
	return nil
}

func (r *BroadcastRepository) GetActive(ctx context.Context) (*models.Broadcast, error) {
	return r.getOne(ctx, `SELECT `+broadcastColumns+` FROM broadcasts WHERE is_active LIMIT 1`)
}

func (r *BroadcastRepository) GetByID(ctx context.Context, id string) (*models.Broadcast, error) {
	return r.getOne(ctx, `SELECT `+broadcastColumns+` FROM broadcasts WHERE id = $1`, id)
}

func (r *BroadcastRepository) getOne(ctx context.Context, query string, args ...any) (*models.Broadcast, error) {
	b := &models.Broadcast{}
	err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID, &b.Message, &b.Title, &b.CreatedBy, &b.CreatedAt, &b.IsActive)
	if err != nil {
		return nil, translate(err)
	}
	return b, nil
}

func (r *BroadcastRepository) Deactivate(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `UPDATE broadcasts SET is_active = false WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to deactivate broadcast: %w", err)
	}
	return nil
}

var _ repositories.BroadcastRepository = (*BroadcastRepository)(nil)
