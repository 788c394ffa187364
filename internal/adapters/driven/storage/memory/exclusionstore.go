package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/framescope/internal/core/domain"
	"github.com/custodia-labs/framescope/internal/core/ports/driven"
)

// Ensure ExclusionStore implements the interface.
var _ driven.ExclusionStore = (*ExclusionStore)(nil)

// ExclusionStore is an in-memory implementation of driven.ExclusionStore.
// Exclusions are transient and live for the session only.
type ExclusionStore struct {
	mu     sync.RWMutex
	frames []domain.ExcludedFrame
	keys   map[string]struct{}
}

// NewExclusionStore creates a new in-memory exclusion store.
func NewExclusionStore() *ExclusionStore {
	return &ExclusionStore{
		keys: make(map[string]struct{}),
	}
}

// Add appends the frame unless its key is already present.
func (s *ExclusionStore) Add(_ context.Context, frame domain.ExcludedFrame) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.keys[frame.Key()]; ok {
		return false, nil
	}
	s.keys[frame.Key()] = struct{}{}
	s.frames = append(s.frames, frame)
	return true, nil
}

// RemoveAt removes the entry at position i.
func (s *ExclusionStore) RemoveAt(_ context.Context, i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.frames) {
		return fmt.Errorf("exclusion %d: %w", i, domain.ErrNotFound)
	}
	delete(s.keys, s.frames[i].Key())
	s.frames = append(s.frames[:i], s.frames[i+1:]...)
	return nil
}

// List returns the entries in insertion order.
func (s *ExclusionStore) List(_ context.Context) ([]domain.ExcludedFrame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.ExcludedFrame, len(s.frames))
	copy(result, s.frames)
	return result, nil
}

// Replace swaps the whole list, keeping the first of any duplicate keys.
func (s *ExclusionStore) Replace(_ context.Context, frames []domain.ExcludedFrame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = nil
	s.keys = make(map[string]struct{}, len(frames))
	for _, f := range frames {
		if _, ok := s.keys[f.Key()]; ok {
			continue
		}
		s.keys[f.Key()] = struct{}{}
		s.frames = append(s.frames, f)
	}
	return nil
}

// Clear removes all entries.
func (s *ExclusionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = nil
	s.keys = make(map[string]struct{})
	return nil
}
