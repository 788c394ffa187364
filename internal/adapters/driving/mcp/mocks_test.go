package mcp

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/custodia-labs/framescope/internal/core/domain"
	"github.com/custodia-labs/framescope/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	entry *domain.SearchContext
	err   error

	lastRequest  domain.SearchRequest
	lastFrame    domain.FrameRecord
	lastModel    domain.Model
	lastSettings domain.SearchSettings
}

func (m *mockSearchService) Submit(_ context.Context, req domain.SearchRequest) (*domain.SearchContext, error) {
	m.lastRequest = req
	if m.err != nil {
		return nil, m.err
	}
	return m.result(req.Query), nil
}

func (m *mockSearchService) ScrollAround(
	_ context.Context,
	frame domain.FrameRecord,
	model domain.Model,
	settings domain.SearchSettings,
) (*domain.SearchContext, error) {
	m.lastFrame = frame
	m.lastModel = model
	m.lastSettings = settings
	if m.err != nil {
		return nil, m.err
	}
	return m.result(""), nil
}

func (m *mockSearchService) result(query string) *domain.SearchContext {
	if m.entry != nil {
		return m.entry
	}
	return &domain.SearchContext{Query: query, QueryType: domain.QueryText, Results: domain.EmptyResultSet()}
}

func (m *mockSearchService) RerankColor(context.Context) (domain.ResultSet, error) {
	return domain.ResultSet{}, m.err
}

func (m *mockSearchService) Replay(_ context.Context, _ int, form domain.SearchRequest) (domain.SearchRequest, error) {
	return form, m.err
}

func (m *mockSearchService) Busy() bool {
	return false
}

var _ driving.SearchService = (*mockSearchService)(nil)

// neighborHub serves neighbour paths; every other call fails.
type neighborHub struct {
	paths *domain.NeighborPaths
	err   error
}

func (h *neighborHub) Search(context.Context, string, map[string]string) (json.RawMessage, error) {
	return nil, errors.New("not used")
}

func (h *neighborHub) VideoNamesOfBatch(context.Context, []string) ([]string, error) {
	return nil, errors.New("not used")
}

func (h *neighborHub) NeighboringFrames(context.Context, string, string, int) (*domain.NeighborPaths, error) {
	return h.paths, h.err
}

func (h *neighborHub) Translate(context.Context, string) (string, error) {
	return "", errors.New("not used")
}

func (h *neighborHub) RerankColor(context.Context, []domain.FrameRecord) ([]domain.FrameRecord, error) {
	return nil, errors.New("not used")
}

func (h *neighborHub) SessionAndEvalID(context.Context) (*domain.DRESSession, error) {
	return nil, errors.New("not used")
}

func (h *neighborHub) SubmitDRES(context.Context, domain.Submission) (*domain.SubmissionResult, error) {
	return nil, errors.New("not used")
}
