package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedResponseType(t *testing.T) {
	r := CachedResponse{
		CacheKey: "abc",
		Provider: "groq",
		Model:    "llama3-70b-8192",
		Response: "text",
	}

	assert.Equal(t, "abc", r.CacheKey)
	assert.Equal(t, "groq", r.Provider)
	assert.True(t, r.CreatedAt.IsZero())
}

func TestSchemaDefinesUniqueKey(t *testing.T) {
	assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS llm_responses")
	assert.Contains(t, schema, "cache_key TEXT NOT NULL UNIQUE")
}

func TestSaveCachedResponse_RequiresKey(t *testing.T) {
	db := &DB{}

	_, err := db.SaveCachedResponse(context.Background(), nil)
	require.Error(t, err)

	_, err = db.SaveCachedResponse(context.Background(), &CachedResponseInput{Response: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache key is required")
}

func TestClose_NilPool(t *testing.T) {
	db := &DB{}
	assert.NotPanics(t, db.Close)
}
