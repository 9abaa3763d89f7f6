// Package memory provides in-process implementations of the selection and
// server URL stores. Used when REDIS_URL is not configured, and in tests.
package memory

import (
	"context"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/srichitra/communicator-teams-app-sub001/internal/domain"
)

// SelectionStore implements domain.SelectionStore over a mutex-guarded map.
// Expiry semantics match the Redis store: expired entries are removed on load.
type SelectionStore struct {
	mu    sync.Mutex
	items map[string]domain.Selection
	clock clockwork.Clock
}

func NewSelectionStore(clock clockwork.Clock) *SelectionStore {
	return &SelectionStore{
		items: make(map[string]domain.Selection),
		clock: clock,
	}
}

func (s *SelectionStore) Load(_ context.Context, clientID string) (*domain.Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel, ok := s.items[clientID]
	if !ok {
		return nil, nil
	}
	if sel.Expired(s.clock.Now()) {
		delete(s.items, clientID)
		return nil, nil
	}
	return &sel, nil
}

func (s *SelectionStore) Save(_ context.Context, clientID string, sel domain.Selection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[clientID] = sel
	return nil
}

func (s *SelectionStore) Clear(_ context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, clientID)
	return nil
}

// ServerURLStore implements domain.ServerURLStore over a mutex-guarded map.
type ServerURLStore struct {
	mu    sync.Mutex
	items map[string]string
}

func NewServerURLStore() *ServerURLStore {
	return &ServerURLStore{items: make(map[string]string)}
}

func (s *ServerURLStore) Load(_ context.Context, clientID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[clientID], nil
}

func (s *ServerURLStore) Save(_ context.Context, clientID string, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[clientID] = url
	return nil
}
