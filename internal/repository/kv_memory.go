package repository

import (
	"context"
	"sync"
)

// memoryKV keeps the key space in process memory
type memoryKV struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryKV creates an empty in-memory key-value store
func NewMemoryKV() KVStore {
	return &memoryKV{entries: make(map[string]string)}
}

func (s *memoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok, nil
}

func (s *memoryKV) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}

func (s *memoryKV) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *memoryKV) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}
