package session

import (
	"context"
	"sync"
)

// MemoryStore keeps sessions in process. Used by tests and the CLI.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]map[string]string{}}
}

func (s *MemoryStore) Get(_ context.Context, sid, field string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[sid][field]
	if !ok {
		return "", ErrMiss
	}
	return v, nil
}

func (s *MemoryStore) Set(_ context.Context, sid, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data[sid] == nil {
		s.data[sid] = map[string]string{}
	}
	s.data[sid][field] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, sid)
	return nil
}
