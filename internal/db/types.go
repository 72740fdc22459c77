package db

import (
	"time"

	"github.com/google/uuid"
)

// CachedResponse represents a stored LLM response
type CachedResponse struct {
	ID        uuid.UUID `json:"id"`
	CacheKey  string    `json:"cache_key"`
	Provider  string    `json:"provider,omitempty"`
	Model     string    `json:"model,omitempty"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

// CachedResponseInput is the data needed to store a response
type CachedResponseInput struct {
	CacheKey string
	Provider string
	Model    string
	Response string
}
