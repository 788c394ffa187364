package services

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/custodia-labs/framescope/internal/core/domain"
	"github.com/custodia-labs/framescope/internal/core/ports/driven"
	"github.com/custodia-labs/framescope/internal/core/ports/driving"
	"github.com/custodia-labs/framescope/internal/logger"
)

// Ensure FilterService implements the interface.
var _ driving.FilterService = (*FilterService)(nil)

// FilterService holds the filter panel: selected videos, transcript and
// time filters, and the exclusion list.
type FilterService struct {
	mu         sync.RWMutex
	exclusions driven.ExclusionStore
	hub        driven.Hub

	videos     []string
	s2t        string
	timeIn     string
	timeOut    string
	videoNames []string
}

// NewFilterService creates a new filter service. hub may be nil, in which
// case video names cannot be loaded.
func NewFilterService(exclusions driven.ExclusionStore, hub driven.Hub) *FilterService {
	return &FilterService{
		exclusions: exclusions,
		hub:        hub,
	}
}

// Exclude adds a result frame to the exclusion list.
func (s *FilterService) Exclude(ctx context.Context, rec domain.FrameRecord) (bool, error) {
	added, err := s.exclusions.Add(ctx, domain.ExcludedFrameFrom(rec))
	if err != nil {
		return false, fmt.Errorf("exclude frame: %w", err)
	}
	if added {
		logger.Debug("filters: excluded %s/%s", rec.BaseVideoName(), rec.KeyframeID)
	}
	return added, nil
}

// RemoveExcluded removes the exclusion at position i.
func (s *FilterService) RemoveExcluded(ctx context.Context, i int) error {
	if err := s.exclusions.RemoveAt(ctx, i); err != nil {
		return fmt.Errorf("remove exclusion: %w", err)
	}
	return nil
}

// Excluded returns the exclusion list in insertion order.
func (s *FilterService) Excluded(ctx context.Context) ([]domain.ExcludedFrame, error) {
	return s.exclusions.List(ctx)
}

// SetVideos selects the videos to search within.
func (s *FilterService) SetVideos(videos []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videos = slices.Clone(videos)
}

// SetS2T sets the transcript filter.
func (s *FilterService) SetS2T(s2t string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.s2t = s2t
}

// SetTimeRange sets the scroll time bounds.
func (s *FilterService) SetTimeRange(timeIn, timeOut string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeIn = timeIn
	s.timeOut = timeOut
}

// Reset clears every filter, the exclusion list, and the loaded video names.
func (s *FilterService) Reset(ctx context.Context) error {
	if err := s.exclusions.Clear(ctx); err != nil {
		return fmt.Errorf("clear exclusions: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.videos = nil
	s.s2t = ""
	s.timeIn = ""
	s.timeOut = ""
	s.videoNames = nil
	return nil
}

// Filters returns a snapshot of the current filters.
func (s *FilterService) Filters(ctx context.Context) (domain.Filters, error) {
	excluded, err := s.exclusions.List(ctx)
	if err != nil {
		return domain.Filters{}, fmt.Errorf("list exclusions: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Filters{
		Videos:   slices.Clone(s.videos),
		S2T:      s.s2t,
		TimeIn:   s.timeIn,
		TimeOut:  s.timeOut,
		Excluded: excluded,
	}, nil
}

// Restore rehydrates the filters from a history record. The exclusion list
// is only replaced when the record carries one.
func (s *FilterService) Restore(ctx context.Context, c domain.ContextFilters) error {
	restored := c.Restore()
	if c.SkipFrames != "" {
		if err := s.exclusions.Replace(ctx, restored.Excluded); err != nil {
			return fmt.Errorf("restore exclusions: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.videos = restored.Videos
	s.s2t = restored.S2T
	s.timeIn = restored.TimeIn
	s.timeOut = restored.TimeOut
	return nil
}

// LoadVideoNames fetches the selectable video names for the given batches.
func (s *FilterService) LoadVideoNames(ctx context.Context, batches []string) ([]string, error) {
	if s.hub == nil {
		return nil, domain.ErrHubUnavailable
	}

	names, err := s.hub.VideoNamesOfBatch(ctx, batches)
	if err != nil {
		return nil, fmt.Errorf("fetch video names: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.videoNames = names
	return slices.Clone(names), nil
}

// VideoNames returns the last loaded video names.
func (s *FilterService) VideoNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.videoNames)
}
