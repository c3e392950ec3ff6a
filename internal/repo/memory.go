package repo

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkordes/travel-calendar/internal/domain"
)

// memoryKV is an in-process KV. Values are lost when the process exits.
type memoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryKV returns an empty in-memory KV.
func NewMemoryKV() KV {
	return &memoryKV{values: make(map[string]string)}
}

func (m *memoryKV) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", fmt.Errorf("repo.memoryKV.Get: %w", domain.ErrNotFound)
	}
	return v, nil
}

func (m *memoryKV) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
