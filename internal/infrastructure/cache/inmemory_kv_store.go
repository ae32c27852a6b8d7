package cache

import (
	"context"
	"sync"

	"github.com/orderpad/backend/internal/domain/shared"
)

// InMemoryKeyValueStore implements KeyValueStore using an in-memory map.
// This is suitable for single-instance deployments and testing; contents are
// lost on restart.
type InMemoryKeyValueStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
	closed  bool
}

// NewInMemoryKeyValueStore creates a new in-memory store
func NewInMemoryKeyValueStore() *InMemoryKeyValueStore {
	return &InMemoryKeyValueStore{
		entries: make(map[string][]byte),
	}
}

// Get returns a copy of the stored value or shared.ErrKeyNotFound
func (s *InMemoryKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.entries[key]
	if !ok {
		return nil, shared.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

// Put stores a copy of value under key
func (s *InMemoryKeyValueStore) Put(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes key. Missing keys are not an error.
func (s *InMemoryKeyValueStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

// Close drops all entries. Safe to call multiple times.
func (s *InMemoryKeyValueStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.entries = make(map[string][]byte)
		s.closed = true
	}
	return nil
}

// Size returns the number of entries in the store (for testing/monitoring)
func (s *InMemoryKeyValueStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Ensure InMemoryKeyValueStore implements KeyValueStore
var _ shared.KeyValueStore = (*InMemoryKeyValueStore)(nil)
