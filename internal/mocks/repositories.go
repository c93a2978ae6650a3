package mocks

import (
	"context"
	"sync"

	"github.com/nashra-news-api/internal/repository"
)

// MockKV is a map-backed KVStore with error injection
type MockKV struct {
	mu       sync.Mutex
	Entries  map[string]string
	GetError error
	SetError error
	SetCalls int
}

// Verify interface compliance
var _ repository.KVStore = (*MockKV)(nil)

func NewMockKV() *MockKV {
	return &MockKV{Entries: make(map[string]string)}
}

func (m *MockKV) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetError != nil {
		return "", false, m.GetError
	}
	v, ok := m.Entries[key]
	return v, ok, nil
}

func (m *MockKV) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	if m.SetError != nil {
		return m.SetError
	}
	m.Entries[key] = value
	return nil
}

func (m *MockKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Entries, key)
	return nil
}

func (m *MockKV) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Entries), nil
}
