package docstore

import (
	"context"
	"sync"

	apperrors "club-signup/internal/common/errors"
	"club-signup/internal/models"
)

// MemoryStore keeps documents in process. Used for local development and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]map[string]models.Application
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]map[string]models.Application)}
}

func (s *MemoryStore) Create(ctx context.Context, collection, id string, app models.Application) error {
	if err := ctx.Err(); err != nil {
		return writeError(ctx, collection, id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	coll, ok := s.docs[collection]
	if !ok {
		coll = make(map[string]models.Application)
		s.docs[collection] = coll
	}
	if _, exists := coll[id]; exists {
		return apperrors.NewDocumentExistsError(collection, id)
	}
	coll[id] = app
	return nil
}

// Documents returns a copy of the documents in collection keyed by ID.
func (s *MemoryStore) Documents(collection string) map[string]models.Application {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]models.Application, len(s.docs[collection]))
	for id, app := range s.docs[collection] {
		out[id] = app
	}
	return out
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
