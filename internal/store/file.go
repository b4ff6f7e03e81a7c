package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type fileEntry struct {
	Value     json.RawMessage `json:"value"`
	ExpiresAt *time.Time      `json:"expires_at,omitempty"`
}

// FileStore persists every key in a single JSON file, rewritten on each
// mutation. It suits the small state of a single bot process.
type FileStore struct {
	mu      sync.Mutex
	path    string
	entries map[string]fileEntry
	now     func() time.Time
}

// NewFileStore loads path, starting empty if the file doesn't exist.
func NewFileStore(path string) (*FileStore, error) {
	fs := &FileStore{path: path, entries: map[string]fileEntry{}, now: time.Now}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fs, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return fs, nil
	}
	if err := json.Unmarshal(data, &fs.entries); err != nil {
		return nil, fmt.Errorf("parse store file %s: %w", path, err)
	}
	return fs, nil
}

func (f *FileStore) Get(_ context.Context, key string, dest interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.entries[key]
	if !ok {
		return ErrNotFound
	}
	if e.ExpiresAt != nil && !f.now().Before(*e.ExpiresAt) {
		return ErrNotFound
	}
	return json.Unmarshal(e.Value, dest)
}

func (f *FileStore) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("file store: encode %q: %w", key, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	e := fileEntry{Value: data}
	if ttl > 0 {
		exp := f.now().Add(ttl)
		e.ExpiresAt = &exp
	}
	f.entries[key] = e
	return f.save()
}

func (f *FileStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.entries[key]; !ok {
		return nil
	}
	delete(f.entries, key)
	return f.save()
}

// save must be called with mu held. Expired entries are dropped on write.
func (f *FileStore) save() error {
	now := f.now()
	for k, e := range f.entries {
		if e.ExpiresAt != nil && !now.Before(*e.ExpiresAt) {
			delete(f.entries, k)
		}
	}
	data, err := json.MarshalIndent(f.entries, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(f.path, data, 0644)
}
