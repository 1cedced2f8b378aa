package prefs

import (
	"context"
	"sync"
)

// MemoryStore is the fallback when redis is not configured, and the test
// double.
type MemoryStore struct {
	mu    sync.RWMutex
	codes map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{codes: make(map[string]string)}
}

func (s *MemoryStore) CurrencyCode(ctx context.Context, clientID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	code, ok := s.codes[clientID]
	if !ok {
		return "", ErrNotSet
	}
	return code, nil
}

func (s *MemoryStore) SetCurrencyCode(ctx context.Context, clientID, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[clientID] = code
	return nil
}

var _ Store = (*MemoryStore)(nil)
