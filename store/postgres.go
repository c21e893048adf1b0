package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
)

// PostgresConfig contains PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// ConnectionString returns the PostgreSQL connection string.
func (c *PostgresConfig) ConnectionString() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, sslMode)
}

// PostgresStore implements Store with a single key-value table. Cache
// expiry is carried in an expires_at column instead of a background
// reaper; expired rows are invisible to readers and overwritten on write.
type PostgresStore struct {
	db  *sql.DB
	log *slog.Logger
}

// NewPostgresStore opens the database, verifies the connection and runs
// the schema migration.
func NewPostgresStore(cfg *PostgresConfig, log *slog.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &PostgresStore{db: db, log: log}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv_entries (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		expires_at TIMESTAMP WITH TIME ZONE
	);
	`

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (s *PostgresStore) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM kv_entries
		WHERE key = $1 AND (expires_at IS NULL OR expires_at > NOW())
	`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("postgres get %q: %w", key, err)
	}
	return value, nil
}

// CacheGet implements Store. Failures are logged and reported as a miss.
func (s *PostgresStore) CacheGet(ctx context.Context, key string) (string, bool) {
	v, err := s.get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return "", false
	}
	if err != nil {
		s.log.Warn("postgres cache read failed", "key", key, "err", err)
		return "", false
	}
	return v, true
}

// CacheSet implements Store, best-effort.
func (s *PostgresStore) CacheSet(ctx context.Context, key, value string, ttl time.Duration) {
	var expiresAt sql.NullTime
	if ttl > 0 {
		expiresAt = sql.NullTime{Time: time.Now().Add(ttl), Valid: true}
	}

	query := `
	INSERT INTO kv_entries (key, value, expires_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (key) DO UPDATE SET
		value = EXCLUDED.value,
		expires_at = EXCLUDED.expires_at
	`

	if _, err := s.db.ExecContext(ctx, query, key, value, expiresAt); err != nil {
		s.log.Warn("postgres cache write failed", "key", key, "err", err)
	}
}

// Get implements Store. Backend failures propagate.
func (s *PostgresStore) Get(ctx context.Context, key string) (string, error) {
	return s.get(ctx, key)
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
