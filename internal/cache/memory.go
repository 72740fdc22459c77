package cache

import (
	"context"
	"sync"
)

// MemoryStore is a process-local Store
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

// Get implements Store
func (m *MemoryStore) Get(_ context.Context, key Key) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key.Hash()]
	return v, ok, nil
}

// PutIfAbsent implements Store
func (m *MemoryStore) PutIfAbsent(_ context.Context, key Key, response string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := key.Hash()
	if _, ok := m.entries[h]; !ok {
		m.entries[h] = response
	}
	return nil
}

// Clear implements Store
func (m *MemoryStore) Clear(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.entries))
	m.entries = make(map[string]string)
	return n, nil
}

// Count implements Store
func (m *MemoryStore) Count(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.entries)), nil
}
