// Package cache memoizes successful LLM responses keyed by the full request.
//
// Entries are immutable once written and are only removed by a full Clear.
// Failed queries are never cached.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/jonathan/agent-selector/internal/llm"
)

// Key identifies a cacheable request
type Key struct {
	Prompt      string       `json:"prompt"`
	Provider    llm.Provider `json:"provider"`
	Model       string       `json:"model"`
	MaxTokens   int          `json:"max_tokens"`
	Temperature float64      `json:"temperature"`
}

// KeyFor derives the cache key of a request. The preferred pair is part of
// the key; an unset preference leaves provider and model empty.
func KeyFor(req llm.Request) Key {
	k := Key{
		Prompt:      req.Prompt,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	if req.Preferred != nil {
		k.Provider = req.Preferred.Provider
		k.Model = req.Preferred.Model
	}
	return k
}

// Hash returns the hex sha256 of the key's canonical JSON form
func (k Key) Hash() string {
	data, _ := json.Marshal(k)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Store persists cached responses
type Store interface {
	// Get returns the cached response and whether one exists
	Get(ctx context.Context, key Key) (string, bool, error)
	// PutIfAbsent stores a response unless the key is already cached
	PutIfAbsent(ctx context.Context, key Key, response string) error
	// Clear removes every entry and returns how many were removed
	Clear(ctx context.Context) (int64, error)
	// Count returns the number of cached entries
	Count(ctx context.Context) (int64, error)
}
