package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"NewsTimeline/internal/domain"
	"NewsTimeline/internal/ports"
)

const cacheTable = "fetch_cache"

// SQLCache persists fetched article lists in sqlite or Postgres.
type SQLCache struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.FetchCache = (*SQLCache)(nil)

// NewSQLCache wires a sql.DB; driver selects the placeholder format.
func NewSQLCache(db *sql.DB, driver string) *SQLCache {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Question)
	if normalizeDriver(driver) == DriverPostgres {
		builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return &SQLCache{db: db, builder: builder}
}

// Migrate creates the cache table when missing.
func (c *SQLCache) Migrate(ctx context.Context) error {
	if c.db == nil {
		return nil
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ` + cacheTable + ` (
			cache_key  TEXT PRIMARY KEY,
			payload    TEXT NOT NULL,
			created_at BIGINT NOT NULL,
			expires_at BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fetch_cache_expires ON ` + cacheTable + ` (expires_at)`,
	}
	for _, stmt := range stmts {
		if _, err := c.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate cache: %w", err)
		}
	}
	return nil
}

// Load returns the cached records for key when present and not expired at now.
func (c *SQLCache) Load(ctx context.Context, key string, now time.Time) ([]domain.ArticleRecord, bool, error) {
	if c.db == nil {
		return nil, false, nil
	}

	query, args, err := c.builder.
		Select("payload").
		From(cacheTable).
		Where(sq.Eq{"cache_key": key}).
		Where(sq.Gt{"expires_at": now.Unix()}).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("build load query: %w", err)
	}

	var payload string
	if err := c.db.QueryRowContext(ctx, query, args...).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("load cache entry: %w", err)
	}

	var records []domain.ArticleRecord
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return nil, false, fmt.Errorf("decode cache entry: %w", err)
	}
	return records, true, nil
}

// Save upserts records under key until expiresAt.
func (c *SQLCache) Save(ctx context.Context, key string, records []domain.ArticleRecord, expiresAt time.Time) error {
	if c.db == nil {
		return nil
	}
	if records == nil {
		records = []domain.ArticleRecord{}
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	query, args, err := c.builder.
		Insert(cacheTable).
		Columns("cache_key", "payload", "created_at", "expires_at").
		Values(key, string(payload), time.Now().Unix(), expiresAt.Unix()).
		Suffix(`ON CONFLICT (cache_key) DO UPDATE
              SET payload = EXCLUDED.payload,
                  created_at = EXCLUDED.created_at,
                  expires_at = EXCLUDED.expires_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build save query: %w", err)
	}

	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert cache entry: %w", err)
	}
	return nil
}

// Purge deletes entries expired at now and reports how many were removed.
func (c *SQLCache) Purge(ctx context.Context, now time.Time) (int64, error) {
	if c.db == nil {
		return 0, nil
	}

	query, args, err := c.builder.
		Delete(cacheTable).
		Where(sq.LtOrEq{"expires_at": now.Unix()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build purge query: %w", err)
	}

	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("purge cache: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge rows affected: %w", err)
	}
	return removed, nil
}
