package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps the cache in a shared Postgres table so several
// analysts (or the refresh scheduler and the CLI) reuse the same fetched
// data instead of each burning API quota.
type PostgresStore struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

// NewPostgresStore creates a Postgres-backed cache and ensures its schema.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool, ttl time.Duration) (*PostgresStore, error) {
	s := &PostgresStore{pool: pool, ttl: ttl}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS market_data_cache (
			ticker     TEXT        NOT NULL,
			data_type  TEXT        NOT NULL,
			payload    JSONB       NOT NULL,
			fetched_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (ticker, data_type)
		)`)
	if err != nil {
		return fmt.Errorf("ensure cache schema: %w", err)
	}
	return nil
}

// Get implements Store.
func (s *PostgresStore) Get(ctx context.Context, ticker, dataType string, dest interface{}) (bool, error) {
	var payload []byte
	var fetchedAt time.Time

	err := s.pool.QueryRow(ctx,
		`SELECT payload, fetched_at FROM market_data_cache WHERE ticker = $1 AND data_type = $2`,
		strings.ToUpper(ticker), dataType,
	).Scan(&payload, &fetchedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query cache: %w", err)
	}

	if time.Since(fetchedAt) > s.ttl {
		return false, nil // expired
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("decode cached payload: %w", err)
	}

	return true, nil
}

// Set implements Store.
func (s *PostgresStore) Set(ctx context.Context, ticker, dataType string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO market_data_cache (ticker, data_type, payload, fetched_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (ticker, data_type)
		DO UPDATE SET payload = EXCLUDED.payload, fetched_at = now()`,
		strings.ToUpper(ticker), dataType, payload)
	if err != nil {
		return fmt.Errorf("upsert cache entry: %w", err)
	}

	return nil
}

// Delete implements Store.
func (s *PostgresStore) Delete(ctx context.Context, tickers ...string) (int, error) {
	if len(tickers) == 0 {
		res, err := s.pool.Exec(ctx, `DELETE FROM market_data_cache`)
		if err != nil {
			return 0, fmt.Errorf("clear cache: %w", err)
		}
		return int(res.RowsAffected()), nil
	}

	upper := make([]string, len(tickers))
	for i, t := range tickers {
		upper[i] = strings.ToUpper(t)
	}

	res, err := s.pool.Exec(ctx,
		`DELETE FROM market_data_cache WHERE ticker = ANY($1)`, upper)
	if err != nil {
		return 0, fmt.Errorf("delete cache entries: %w", err)
	}

	return int(res.RowsAffected()), nil
}

// Entries implements Store.
func (s *PostgresStore) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT ticker, data_type, fetched_at FROM market_data_cache ORDER BY ticker, data_type`)
	if err != nil {
		return nil, fmt.Errorf("query cache entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.Ticker, &entry.DataType, &entry.FetchedAt); err != nil {
			return nil, fmt.Errorf("scan cache entry: %w", err)
		}
		entry.Expired = time.Since(entry.FetchedAt) > s.ttl
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
