package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GetCachedResponse retrieves a cached response by key.
// Returns nil, nil when no entry exists.
func (db *DB) GetCachedResponse(ctx context.Context, cacheKey string) (*CachedResponse, error) {
	var r CachedResponse
	err := db.pool.QueryRow(ctx,
		`SELECT id, cache_key, provider, model, response, created_at
		 FROM llm_responses WHERE cache_key = $1`,
		cacheKey,
	).Scan(&r.ID, &r.CacheKey, &r.Provider, &r.Model, &r.Response, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached response: %w", err)
	}
	return &r, nil
}

// SaveCachedResponse stores a response unless the key is already present.
// Entries are immutable: an existing row is never overwritten.
// Reports whether a new row was written.
func (db *DB) SaveCachedResponse(ctx context.Context, input *CachedResponseInput) (bool, error) {
	if input == nil || input.CacheKey == "" {
		return false, fmt.Errorf("cache key is required")
	}

	result, err := db.pool.Exec(ctx,
		`INSERT INTO llm_responses (id, cache_key, provider, model, response)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (cache_key) DO NOTHING`,
		uuid.New(), input.CacheKey, input.Provider, input.Model, input.Response,
	)
	if err != nil {
		return false, fmt.Errorf("failed to save cached response: %w", err)
	}
	return result.RowsAffected() == 1, nil
}

// ClearCachedResponses removes every cached response and returns how many were deleted
func (db *DB) ClearCachedResponses(ctx context.Context) (int64, error) {
	result, err := db.pool.Exec(ctx, `DELETE FROM llm_responses`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear cached responses: %w", err)
	}
	return result.RowsAffected(), nil
}

// CountCachedResponses returns the number of cached responses
func (db *DB) CountCachedResponses(ctx context.Context) (int64, error) {
	var n int64
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM llm_responses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count cached responses: %w", err)
	}
	return n, nil
}
