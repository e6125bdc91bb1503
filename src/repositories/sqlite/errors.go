package sqlite

import (
	"database/sql"
	"errors"
	"time"

	"github.com/fluentos/desktop-admin-api/src/repositories"
	"github.com/mattn/go-sqlite3"
)

// translate maps driver errors onto repository sentinels
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repositories.ErrNotFound
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) &&
		(sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique || sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey) {
		return repositories.ErrDuplicate
	}
	return err
}

// Timestamps are stored as UTC unix nanoseconds so ORDER BY is exact

func toNanos(t time.Time) int64 {
	return t.UTC().UnixNano()
}

func fromNanos(n int64) time.Time {
	return time.Unix(0, n).UTC()
}
