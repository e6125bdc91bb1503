package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fluentos/desktop-admin-api/src/models"
	"github.com/fluentos/desktop-admin-api/src/repositories"
)

// BroadcastRepository stores announcements in the broadcasts table
type BroadcastRepository struct {
	db *sql.DB
}

// NewBroadcastRepository creates a SQLite-backed broadcast repository
func NewBroadcastRepository(db *sql.DB) *BroadcastRepository {
	return &BroadcastRepository{db: db}
}

const broadcastColumns = `id, message, title, created_by, created_at, is_active`

// Activate runs the deactivate+insert pair in one transaction
func (r *BroadcastRepository) Activate(ctx context.Context, b *models.Broadcast) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `UPDATE broadcasts SET is_active = 0 WHERE is_active = 1`); err != nil {
		return fmt.Errorf("failed to deactivate broadcasts: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO broadcasts (`+broadcastColumns+`) VALUES (?, ?, ?, ?, ?, 1)`,
		b.ID, b.Message, b.Title, b.CreatedBy, toNanos(b.CreatedAt),
	)
	if err != nil {
		return translate(err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit broadcast: %w", err)
	}

	b.IsActive = true
	return nil
}

func (r *BroadcastRepository) GetActive(ctx context.Context) (*models.Broadcast, error) {
	return r.getOne(ctx, `SELECT `+broadcastColumns+` FROM broadcasts WHERE is_active = 1 LIMIT 1`)
}

func (r *BroadcastRepository) GetByID(ctx context.Context, id string) (*models.Broadcast, error) {
	return r.getOne(ctx, `SELECT `+broadcastColumns+` FROM broadcasts WHERE id = ?`, id)
}

func (r *BroadcastRepository) getOne(ctx context.Context, query string, args ...any) (*models.Broadcast, error) {
	var (
		b       models.Broadcast
		created int64
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.Message, &b.Title, &b.CreatedBy, &created, &b.IsActive)
	if err != nil {
		return nil, translate(err)
	}
	b.CreatedAt = fromNanos(created)
	return &b, nil
}

func (r *BroadcastRepository) Deactivate(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE broadcasts SET is_active = 0 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to deactivate broadcast: %w", err)
	}
	return nil
}

var _ repositories.BroadcastRepository = (*BroadcastRepository)(nil)
