package media

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

var ErrImagesDisabled = httperr.ErrBusiness("images_disabled")

// ErrObjectNotFound is returned by Get for an unknown key.
var ErrObjectNotFound = fmt.Errorf("object not found: %w", httperr.ErrNotFound)

// Store keeps processed images by key.
type Store interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// NewKey names a new image of one entity of one company.
func NewKey(companyID uint, entity string, id uint) string {
	return fmt.Sprintf("companies/%d/%s/%d-%s.webp", companyID, entity, id, uuid.NewString())
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: map[string][]byte{}}
}

func (s *MemoryStore) Put(_ context.Context, key, _ string, body []byte) error {
	if key == "" {
		return errors.New("empty object key")
	}
	cp := make([]byte, len(body))
	copy(cp, body)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = cp
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	body, ok := s.objects[key]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return body, nil
}
