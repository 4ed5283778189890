package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"shoresquad/internal/domain"
)

// StateStore keeps blobs in process memory. Nothing survives a restart.
type StateStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewStateStore() *StateStore {
	return &StateStore{data: make(map[string][]byte)}
}

func (s *StateStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, fmt.Errorf("key %q: %w", key, domain.ErrNotFound)
	}
	return slices.Clone(v), nil
}

func (s *StateStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = slices.Clone(value)
	return nil
}
