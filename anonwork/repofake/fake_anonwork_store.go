package fakeanonworkstore

import (
	"context"
	"errors"
	"sync"

	"github.com/jrsteele09/uigen-server/anonwork"
)

var _ anonwork.Store = (*InMemoryStore)(nil)

// InMemoryStore is a thread-safe in-memory implementation of anonwork.Store
type InMemoryStore struct {
	mu     sync.RWMutex
	drafts map[string]anonwork.Work
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		drafts: make(map[string]anonwork.Work),
	}
}

func (s *InMemoryStore) Get(_ context.Context, draftID string) (*anonwork.Work, error) {
	if draftID == "" {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	work, ok := s.drafts[draftID]
	if !ok {
		return nil, nil
	}
	return &work, nil
}

func (s *InMemoryStore) Save(_ context.Context, draftID string, work anonwork.Work) error {
	if draftID == "" {
		return errors.New("draftID cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.drafts[draftID] = work
	return nil
}

func (s *InMemoryStore) Clear(_ context.Context, draftID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.drafts, draftID)
	return nil
}
