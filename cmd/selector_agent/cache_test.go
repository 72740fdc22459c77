package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/jonathan/agent-selector/internal/cache"
	"github.com/jonathan/agent-selector/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheStatsAndClear(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	for _, prompt := range []string{"a", "b"} {
		require.NoError(t, store.PutIfAbsent(ctx, cache.KeyFor(llm.NewRequest(prompt)), "answer"))
	}

	var buf bytes.Buffer
	require.NoError(t, writeCacheStats(ctx, &buf, "memory", store))
	assert.Equal(t, "2 cached responses (memory)\n", buf.String())

	buf.Reset()
	require.NoError(t, clearCache(ctx, &buf, store))
	assert.Equal(t, "Removed 2 cached responses\n", buf.String())

	buf.Reset()
	require.NoError(t, writeCacheStats(ctx, &buf, "memory", store))
	assert.Equal(t, "0 cached responses (memory)\n", buf.String())
}
