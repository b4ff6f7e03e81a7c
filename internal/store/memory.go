package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps values in process memory. Values are stored encoded so
// callers never share mutable state with the cache.
type MemoryStore struct {
	c *cache.Cache
}

// NewMemoryStore creates a MemoryStore that sweeps expired keys every
// cleanupInterval.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{c: cache.New(cache.NoExpiration, cleanupInterval)}
}

func (m *MemoryStore) Get(_ context.Context, key string, dest interface{}) error {
	v, ok := m.c.Get(key)
	if !ok {
		return ErrNotFound
	}
	data, ok := v.([]byte)
	if !ok {
		return fmt.Errorf("memory store: unexpected value type %T for %q", v, key)
	}
	return json.Unmarshal(data, dest)
}

func (m *MemoryStore) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("memory store: encode %q: %w", key, err)
	}
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	m.c.Set(key, data, ttl)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.c.Delete(key)
	return nil
}
