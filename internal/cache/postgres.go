package cache

import (
	"context"

	"github.com/jonathan/agent-selector/internal/db"
)

// ResponseDB is the subset of db.DB the Postgres store needs
type ResponseDB interface {
	GetCachedResponse(ctx context.Context, cacheKey string) (*db.CachedResponse, error)
	SaveCachedResponse(ctx context.Context, input *db.CachedResponseInput) (bool, error)
	ClearCachedResponses(ctx context.Context) (int64, error)
	CountCachedResponses(ctx context.Context) (int64, error)
}

// PostgresStore keeps responses in the llm_responses table
type PostgresStore struct {
	db ResponseDB
}

// NewPostgresStore creates a Store over a response database
func NewPostgresStore(database ResponseDB) *PostgresStore {
	return &PostgresStore{db: database}
}

// Get implements Store
func (s *PostgresStore) Get(ctx context.Context, key Key) (string, bool, error) {
	r, err := s.db.GetCachedResponse(ctx, key.Hash())
	if err != nil {
		return "", false, err
	}
	if r == nil {
		return "", false, nil
	}
	return r.Response, true, nil
}

// PutIfAbsent implements Store
func (s *PostgresStore) PutIfAbsent(ctx context.Context, key Key, response string) error {
	_, err := s.db.SaveCachedResponse(ctx, &db.CachedResponseInput{
		CacheKey: key.Hash(),
		Provider: string(key.Provider),
		Model:    key.Model,
		Response: response,
	})
	return err
}

// Clear implements Store
func (s *PostgresStore) Clear(ctx context.Context) (int64, error) {
	return s.db.ClearCachedResponses(ctx)
}

// Count implements Store
func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	return s.db.CountCachedResponses(ctx)
}
