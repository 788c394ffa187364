package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/framescope/internal/core/domain"
	"github.com/custodia-labs/framescope/internal/core/ports/driven"
	"github.com/custodia-labs/framescope/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService keeps the most recent searches of a session.
type HistoryService struct {
	mu        sync.Mutex
	store     driven.HistoryStore
	prevQuery string
	now       func() time.Time
}

// NewHistoryService creates a new history service.
func NewHistoryService(store driven.HistoryStore) *HistoryService {
	return &HistoryService{
		store: store,
		now:   time.Now,
	}
}

// Record prepends entry and keeps at most domain.MaxHistory entries.
// A missing id or timestamp is filled in.
func (s *HistoryService) Record(ctx context.Context, entry domain.SearchContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}

	entries, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	entries = append([]domain.SearchContext{entry}, entries...)
	if len(entries) > domain.MaxHistory {
		entries = entries[:domain.MaxHistory]
	}

	if err := s.store.Save(ctx, entries); err != nil {
		return fmt.Errorf("save history: %w", err)
	}

	s.prevQuery = domain.TruncateQuery(entry.Query)
	return nil
}

// Entries returns the history, most recent first.
func (s *HistoryService) Entries(ctx context.Context) ([]domain.SearchContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return entries, nil
}

// Get returns the entry at position i.
func (s *HistoryService) Get(ctx context.Context, i int) (*domain.SearchContext, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(entries) {
		return nil, fmt.Errorf("history entry %d: %w", i, domain.ErrNotFound)
	}
	entry := entries[i]
	return &entry, nil
}

// Latest returns the most recent entry.
func (s *HistoryService) Latest(ctx context.Context) (*domain.SearchContext, error) {
	return s.Get(ctx, 0)
}

// Clear empties the history and blanks the previous-query label.
func (s *HistoryService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	s.prevQuery = ""
	return nil
}

// PreviousQuery returns the truncated query of the last recorded search.
func (s *HistoryService) PreviousQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prevQuery
}
