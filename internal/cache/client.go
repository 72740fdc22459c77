package cache

import (
	"context"
	"log/slog"

	"github.com/jonathan/agent-selector/internal/llm"
	"golang.org/x/sync/singleflight"
)

// Client answers queries from the cache and falls through to next on a miss.
// Concurrent misses for the same key share one upstream call.
type Client struct {
	next   llm.Querier
	store  Store
	logger *slog.Logger
	group  singleflight.Group
}

var _ llm.Querier = (*Client)(nil)

// NewClient wraps next with a cache backed by store
func NewClient(next llm.Querier, store Store, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{next: next, store: store, logger: logger}
}

// Query implements llm.Querier. Store errors degrade to an uncached call.
func (c *Client) Query(ctx context.Context, req llm.Request) (string, error) {
	key := KeyFor(req)

	text, hit, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.WarnContext(ctx, "cache read failed, querying provider", slog.String("error", err.Error()))
	} else if hit {
		c.logger.DebugContext(ctx, "cache hit", slog.String("key", key.Hash()))
		return text, nil
	}

	v, err, shared := c.group.Do(key.Hash(), func() (any, error) {
		// a call that finished between our read and now has already stored its result
		if text, hit, err := c.store.Get(ctx, key); err == nil && hit {
			return text, nil
		}
		text, err := c.next.Query(ctx, req)
		if err != nil {
			return "", err
		}
		if err := c.store.PutIfAbsent(ctx, key, text); err != nil {
			c.logger.WarnContext(ctx, "cache write failed", slog.String("error", err.Error()))
		}
		return text, nil
	})
	if err != nil {
		return "", err
	}
	if shared {
		c.logger.DebugContext(ctx, "shared in-flight query", slog.String("key", key.Hash()))
	}
	return v.(string), nil
}

// Clear removes every cached response
func (c *Client) Clear(ctx context.Context) (int64, error) {
	return c.store.Clear(ctx)
}
