package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/custodia-labs/framescope/internal/core/domain"
	"github.com/custodia-labs/framescope/internal/core/ports/driven"
)

// mockHub implements driven.Hub for testing. Unset funcs return zero values.
type mockHub struct {
	mu    sync.Mutex
	calls []string

	searchFn     func(ctx context.Context, endpoint string, form map[string]string) (json.RawMessage, error)
	videoNamesFn func(ctx context.Context, batches []string) ([]string, error)
	neighborsFn  func(ctx context.Context, videoName, frameNum string, k int) (*domain.NeighborPaths, error)
	translateFn  func(ctx context.Context, text string) (string, error)
	rerankFn     func(ctx context.Context, records []domain.FrameRecord) ([]domain.FrameRecord, error)
	sessionFn    func(ctx context.Context) (*domain.DRESSession, error)
	submitFn     func(ctx context.Context, sub domain.Submission) (*domain.SubmissionResult, error)
}

var _ driven.Hub = (*mockHub)(nil)

func (m *mockHub) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *mockHub) callCount(call string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (m *mockHub) Search(ctx context.Context, endpoint string, form map[string]string) (json.RawMessage, error) {
	m.record("search")
	if m.searchFn == nil {
		return json.RawMessage(`[]`), nil
	}
	return m.searchFn(ctx, endpoint, form)
}

func (m *mockHub) VideoNamesOfBatch(ctx context.Context, batches []string) ([]string, error) {
	m.record("video_names")
	if m.videoNamesFn == nil {
		return nil, nil
	}
	return m.videoNamesFn(ctx, batches)
}

func (m *mockHub) NeighboringFrames(ctx context.Context, videoName, frameNum string, k int) (*domain.NeighborPaths, error) {
	m.record("neighbors")
	if m.neighborsFn == nil {
		return &domain.NeighborPaths{}, nil
	}
	return m.neighborsFn(ctx, videoName, frameNum, k)
}

func (m *mockHub) Translate(ctx context.Context, text string) (string, error) {
	m.record("translate")
	if m.translateFn == nil {
		return text, nil
	}
	return m.translateFn(ctx, text)
}

func (m *mockHub) RerankColor(ctx context.Context, records []domain.FrameRecord) ([]domain.FrameRecord, error) {
	m.record("rerank")
	if m.rerankFn == nil {
		return records, nil
	}
	return m.rerankFn(ctx, records)
}

func (m *mockHub) SessionAndEvalID(ctx context.Context) (*domain.DRESSession, error) {
	m.record("session")
	if m.sessionFn == nil {
		return &domain.DRESSession{SessionID: "sess", EvalID: "eval"}, nil
	}
	return m.sessionFn(ctx)
}

func (m *mockHub) SubmitDRES(ctx context.Context, sub domain.Submission) (*domain.SubmissionResult, error) {
	m.record("submit")
	if m.submitFn == nil {
		return &domain.SubmissionResult{Description: "ok", Verdict: domain.SubmissionCorrect}, nil
	}
	return m.submitFn(ctx, sub)
}

// failingHistoryStore implements driven.HistoryStore and fails every call.
type failingHistoryStore struct {
	err error
}

func (f *failingHistoryStore) Load(context.Context) ([]domain.SearchContext, error) {
	return nil, f.err
}

func (f *failingHistoryStore) Save(context.Context, []domain.SearchContext) error {
	return f.err
}

func (f *failingHistoryStore) Clear(context.Context) error {
	return f.err
}
