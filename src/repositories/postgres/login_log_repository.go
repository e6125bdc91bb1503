package postgres

import (
	"context"
	"fmt"

	"github.com/fluentos/desktop-admin-api/src/models"
	"github.com/fluentos/desktop-admin-api/src/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LoginLogRepository stores authentication attempts in login_logs
type LoginLogRepository struct {
	pool *pgxpool.Pool
}

// NewLoginLogRepository creates a PostgreSQL-backed audit repository
func NewLoginLogRepository(pool *pgxpool.Pool) *LoginLogRepository {
	return &LoginLogRepository{pool: pool}
}

func (r *LoginLogRepository) Create(ctx context.Context, entry *models.LoginLog) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO login_logs (id, username, success, ip_address, attempted_at, role)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.Username, entry.Success, entry.IPAddress, entry.Timestamp, entry.Role,
	)
	if err != nil {
		return fmt.Errorf("failed to insert login log: %w", err)
	}
	return nil
}

func (r *LoginLogRepository) ListRecent(ctx context.Context, limit int) ([]models.LoginLog, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, username, success, ip_address, attempted_at, role
		 FROM login_logs
		 ORDER BY attempted_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query login logs: %w", err)
	}
	defer rows.Close()

	logs := make([]models.LoginLog, 0)
	for rows.Next() {
		var l models.LoginLog
		if err := rows.Scan(&l.ID, &l.Username, &l.Success, &l.IPAddress, &l.Timestamp, &l.Role); err != nil {
			return nil, fmt.Errorf("failed to scan login log: %w", err)
		}
		logs = append(logs, l)
	}

	return logs, rows.Err()
}

func (r *LoginLogRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM login_logs`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear login logs: %w", err)
	}
	return result.RowsAffected(), nil
}

var _ repositories.LoginLogRepository = (*LoginLogRepository)(nil)
