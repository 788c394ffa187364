package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/framescope/internal/core/domain"
	"github.com/custodia-labs/framescope/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore keeps search history for the lifetime of the process.
type HistoryStore struct {
	mu      sync.RWMutex
	entries []domain.SearchContext
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// Load returns the stored entries.
func (s *HistoryStore) Load(_ context.Context) ([]domain.SearchContext, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.SearchContext, len(s.entries))
	copy(result, s.entries)
	return result, nil
}

// Save replaces the stored entries.
func (s *HistoryStore) Save(_ context.Context, entries []domain.SearchContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make([]domain.SearchContext, len(entries))
	copy(s.entries, entries)
	return nil
}

// Clear removes all entries.
func (s *HistoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return nil
}
