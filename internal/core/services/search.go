package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/framescope/internal/core/domain"
	"github.com/custodia-labs/framescope/internal/core/ports/driven"
	"github.com/custodia-labs/framescope/internal/core/ports/driving"
	"github.com/custodia-labs/framescope/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService is the coordinating controller of the pipeline:
// form -> router -> hub -> normaliser -> results view -> history.
type SearchService struct {
	hub        driven.Hub
	router     driving.QueryRouter
	normalizer driving.ResultNormalizer
	view       driving.ResultsView
	history    driving.HistoryService
	filters    driving.FilterService

	// installMu serialises the generation check with installing results.
	installMu sync.Mutex
	gen       atomic.Uint64
	busy      atomic.Int32
	now       func() time.Time
}

// NewSearchService creates a new search service.
func NewSearchService(
	hub driven.Hub,
	router driving.QueryRouter,
	normalizer driving.ResultNormalizer,
	view driving.ResultsView,
	history driving.HistoryService,
	filters driving.FilterService,
) *SearchService {
	return &SearchService{
		hub:        hub,
		router:     router,
		normalizer: normalizer,
		view:       view,
		history:    history,
		filters:    filters,
		now:        time.Now,
	}
}

// Busy reports whether a blocking operation is in flight.
func (s *SearchService) Busy() bool {
	return s.busy.Load() > 0
}

// begin raises the busy guard and returns its release function.
func (s *SearchService) begin() func() {
	s.busy.Add(1)
	return func() { s.busy.Add(-1) }
}

// Submit routes, dispatches, normalises, installs, and records a search.
// The translated query replaces the submitted one in the recorded context.
func (s *SearchService) Submit(ctx context.Context, req domain.SearchRequest) (*domain.SearchContext, error) {
	if s.hub == nil {
		return nil, domain.ErrHubUnavailable
	}
	defer s.begin()()
	gen := s.gen.Add(1)

	logger.Section("Search")

	req.Query = strings.TrimSpace(req.Query)
	if req.AutoTranslate && req.Type == domain.QueryText && req.Query != "" {
		translated, err := s.hub.Translate(ctx, req.Query)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrTranslation, err)
		}
		logger.Debug("search: translated %q -> %q", req.Query, translated)
		req.Query = translated
	}

	routed, err := s.router.Route(req)
	if err != nil {
		return nil, err
	}

	payload, err := s.hub.Search(ctx, routed.Endpoint, routed.Form)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", routed.Endpoint, err)
	}

	entry := domain.SearchContext{
		Query:     req.Query,
		QueryType: routed.Type,
		Model:     routed.Model,
		Filters:   req.Filters.Snapshot(),
		Settings:  req.Settings,
		Results:   s.normalizer.Normalize(payload),
	}
	if err := s.install(ctx, gen, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// ScrollAround searches the shot containing frame and records it like any search.
func (s *SearchService) ScrollAround(
	ctx context.Context,
	frame domain.FrameRecord,
	model domain.Model,
	settings domain.SearchSettings,
) (*domain.SearchContext, error) {
	if s.hub == nil {
		return nil, domain.ErrHubUnavailable
	}
	defer s.begin()()
	gen := s.gen.Add(1)

	routed, err := s.router.ScrollAround(frame, model, settings)
	if err != nil {
		return nil, err
	}

	payload, err := s.hub.Search(ctx, routed.Endpoint, routed.Form)
	if err != nil {
		return nil, fmt.Errorf("scroll search: %w", err)
	}

	entry := domain.SearchContext{
		QueryType: domain.QueryScroll,
		Model:     routed.Model,
		Filters: domain.ContextFilters{
			VideoFilter: routed.Form[fieldVideoFilter],
			TimeIn:      routed.Form[fieldTimeIn],
			TimeOut:     routed.Form[fieldTimeOut],
		},
		Settings: settings,
		Results:  s.normalizer.Normalize(payload),
	}
	if err := s.install(ctx, gen, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// install renders and records entry unless a newer request has started.
func (s *SearchService) install(ctx context.Context, gen uint64, entry *domain.SearchContext) error {
	s.installMu.Lock()
	defer s.installMu.Unlock()

	if !s.Accept(gen) {
		logger.Debug("search: dropping stale response %d (latest %d)", gen, s.gen.Load())
		return domain.ErrStaleResponse
	}

	entry.ID = uuid.NewString()
	entry.Timestamp = s.now()
	s.view.SetResults(entry.Results)

	if s.history != nil {
		if err := s.history.Record(ctx, *entry); err != nil {
			logger.Warn("search: recording history: %v", err)
		}
	}
	return nil
}

// Accept reports whether gen is the latest request generation.
func (s *SearchService) Accept(gen uint64) bool {
	return gen == s.gen.Load()
}

// RerankColor sends the current results to the colour reranker and
// installs the reordered list as a flat result set.
func (s *SearchService) RerankColor(ctx context.Context) (domain.ResultSet, error) {
	if s.hub == nil {
		return domain.ResultSet{}, domain.ErrHubUnavailable
	}
	current := s.view.Results()
	if current.IsEmpty() {
		return domain.ResultSet{}, domain.ErrNoResults
	}
	defer s.begin()()
	gen := s.gen.Add(1)

	records, err := s.hub.RerankColor(ctx, current.Records)
	if err != nil {
		return domain.ResultSet{}, fmt.Errorf("rerank: %w", err)
	}

	rs := domain.NewFlatResultSet(records)

	s.installMu.Lock()
	defer s.installMu.Unlock()
	if !s.Accept(gen) {
		return domain.ResultSet{}, domain.ErrStaleResponse
	}
	s.view.SetResults(rs)
	return rs, nil
}

// Replay re-renders history entry i without a network call and returns the
// query form rehydrated from it. Temporal and scroll entries keep the form's
// query type; a temporal entry selects the temporal variant of its model.
func (s *SearchService) Replay(ctx context.Context, i int, form domain.SearchRequest) (domain.SearchRequest, error) {
	if s.history == nil {
		return form, domain.ErrNotFound
	}
	entry, err := s.history.Get(ctx, i)
	if err != nil {
		return form, err
	}

	// A replay supersedes any in-flight search.
	s.installMu.Lock()
	defer s.installMu.Unlock()
	s.gen.Add(1)

	out := form
	out.Query = entry.Query
	if entry.QueryType != domain.QueryScroll && entry.QueryType != domain.QueryTemporal {
		out.Type = entry.QueryType
	}
	out.Model = entry.Model
	if entry.QueryType == domain.QueryTemporal {
		out.Model = entry.Model.Temporal()
	}
	out.Settings = entry.Settings

	if s.filters != nil {
		if err := s.filters.Restore(ctx, entry.Filters); err != nil {
			return form, err
		}
		filters, err := s.filters.Filters(ctx)
		if err != nil {
			return form, err
		}
		out.Filters = filters
	} else {
		out.Filters = entry.Filters.Restore()
	}

	s.view.SetResults(entry.Results)
	logger.Debug("search: replayed %q (%s)", entry.Summary(), entry.Model)
	return out, nil
}
