package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fluentos/desktop-admin-api/src/models"
	"github.com/fluentos/desktop-admin-api/src/repositories"
)

// LoginLogRepository stores authentication attempts in login_logs
type LoginLogRepository struct {
	db *sql.DB
}

// NewLoginLogRepository creates a SQLite-backed audit repository
func NewLoginLogRepository(db *sql.DB) *LoginLogRepository {
	return &LoginLogRepository{db: db}
}

func (r *LoginLogRepository) Create(ctx context.Context, entry *models.LoginLog) error {
	var role sql.NullString
	if entry.Role != nil {
		role = sql.NullString{String: string(*entry.Role), Valid: true}
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO login_logs (id, username, success, ip_address, attempted_at, role) VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Username, entry.Success, entry.IPAddress, toNanos(entry.Timestamp), role,
	)
	if err != nil {
		return fmt.Errorf("failed to insert login log: %w", err)
	}
	return nil
}

func (r *LoginLogRepository) ListRecent(ctx context.Context, limit int) ([]models.LoginLog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, username, success, ip_address, attempted_at, role
		 FROM login_logs
		 ORDER BY attempted_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query login logs: %w", err)
	}
	defer rows.Close()

	logs := make([]models.LoginLog, 0)
	for rows.Next() {
		var (
			l         models.LoginLog
			attempted int64
			role      sql.NullString
		)
		if err := rows.Scan(&l.ID, &l.Username, &l.Success, &l.IPAddress, &attempted, &role); err != nil {
			return nil, fmt.Errorf("failed to scan login log: %w", err)
		}
		l.Timestamp = fromNanos(attempted)
		if role.Valid {
			lr := models.Role(role.String)
			l.Role = &lr
		}
		logs = append(logs, l)
	}

	return logs, rows.Err()
}

func (r *LoginLogRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM login_logs`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear login logs: %w", err)
	}
	return result.RowsAffected()
}

var _ repositories.LoginLogRepository = (*LoginLogRepository)(nil)
