package database

import (
	"context"
	"sync"
)

// Store is the persistence boundary: a key to JSON-blob store with
// load/save/clear semantics. The engine never interprets storage errors as
// fatal; a missing key loads as nil.
type Store interface {
	// Load returns the blob stored under key, or nil when the key is absent.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save writes the blob under key, replacing any previous value.
	Save(ctx context.Context, key string, data []byte) error
	// Clear removes the key. Clearing an absent key is not an error.
	Clear(ctx context.Context, key string) error
}

// MemoryStore is an in-process Store used by tests and the "memory"
// storage backend.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *MemoryStore) Save(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	s.blobs[key] = stored
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}
