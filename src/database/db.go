package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// Supported drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Database holds the connection to the configured store. Exactly one of
// pool (postgres) or sqlDB (sqlite) is set.
type Database struct {
	driver string
	pool   *pgxpool.Pool
	sqlDB  *sql.DB
}

// New connects to the store and applies pending migrations
func New(ctx context.Context, driver, databaseURL string) (*Database, error) {
	switch driver {
	case DriverPostgres:
		return newPostgres(ctx, databaseURL)
	case DriverSQLite:
		return newSQLite(ctx, databaseURL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func newPostgres(ctx context.Context, databaseURL string) (*Database, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Configure connection pool
	config.MaxConns = 25
	config.MinConns = 5
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := migratePostgres(databaseURL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info().Str("driver", DriverPostgres).Msg("database schema up to date")
	return &Database{driver: DriverPostgres, pool: pool}, nil
}

func newSQLite(ctx context.Context, dsn string) (*Database, error) {
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// SQLite has a single writer; one connection also keeps in-memory databases alive
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to sqlite database: %w", err)
	}
	if _, err := sqlDB.ExecContext(ctx, `PRAGMA busy_timeout=5000`); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to configure sqlite: %w", err)
	}

	if err := migrateSQLite(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info().Str("driver", DriverSQLite).Msg("database schema up to date")
	return &Database{driver: DriverSQLite, sqlDB: sqlDB}, nil
}

// Driver returns the name of the active driver
func (db *Database) Driver() string {
	return db.driver
}

// GetPool returns the PostgreSQL connection pool, nil for sqlite
func (db *Database) GetPool() *pgxpool.Pool {
	return db.pool
}

// GetSQL returns the SQLite handle, nil for postgres
func (db *Database) GetSQL() *sql.DB {
	return db.sqlDB
}

// Close closes the underlying connections
func (db *Database) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
	if db.sqlDB != nil {
		_ = db.sqlDB.Close()
	}
}

// Health checks if the database is healthy
func (db *Database) Health(ctx context.Context) error {
	if db == nil || (db.pool == nil && db.sqlDB == nil) {
		return fmt.Errorf("database connection not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if db.pool != nil {
		return db.pool.Ping(ctx)
	}
	return db.sqlDB.PingContext(ctx)
}
