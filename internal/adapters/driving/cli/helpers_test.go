package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/framescope/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/framescope/internal/core/domain"
	"github.com/custodia-labs/framescope/internal/core/services"
)

const twoFrames = `[
	{"video_name": "L01_V001.mp4", "keyframe_id": "00100", "fps": 25, "score": 0.91, "s2t": ["xin", "chao"]},
	{"video_name": "L01_V002.mp4", "keyframe_id": "00250", "fps": 25, "score": 0.52, "object": [{"object": "car", "conf": 0.8}]}
]`

// fakeHub is a scripted hub that records what it was asked.
type fakeHub struct {
	payload   string
	searchErr error
	endpoint  string
	form      map[string]string

	neighbors *domain.NeighborPaths
	videos    []string
	verdict   string
	submitted *domain.Submission
}

func (h *fakeHub) Search(_ context.Context, endpoint string, form map[string]string) (json.RawMessage, error) {
	h.endpoint = endpoint
	h.form = form
	if h.searchErr != nil {
		return nil, h.searchErr
	}
	return json.RawMessage(h.payload), nil
}

func (h *fakeHub) VideoNamesOfBatch(context.Context, []string) ([]string, error) {
	return h.videos, nil
}

func (h *fakeHub) NeighboringFrames(context.Context, string, string, int) (*domain.NeighborPaths, error) {
	if h.neighbors == nil {
		return nil, errors.New("no neighbours")
	}
	return h.neighbors, nil
}

func (h *fakeHub) Translate(_ context.Context, text string) (string, error) {
	return "translated " + text, nil
}

func (h *fakeHub) RerankColor(_ context.Context, records []domain.FrameRecord) ([]domain.FrameRecord, error) {
	return records, nil
}

func (h *fakeHub) SessionAndEvalID(context.Context) (*domain.DRESSession, error) {
	return &domain.DRESSession{SessionID: "sess-1", EvalID: "eval-1"}, nil
}

func (h *fakeHub) SubmitDRES(_ context.Context, sub domain.Submission) (*domain.SubmissionResult, error) {
	h.submitted = &sub
	return &domain.SubmissionResult{Verdict: h.verdict, Description: "checked"}, nil
}

// testEnv holds the services installed for one test.
type testEnv struct {
	hub      *fakeHub
	history  *services.HistoryService
	filter   *services.FilterService
	settings *services.SettingsService
	results  *services.ResultsView
}

// setupTestServices wires real services over a fake hub and memory stores.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()
	hub := &fakeHub{payload: twoFrames, verdict: domain.SubmissionCorrect}
	results := services.NewResultsView(domain.DefaultResultsPerPage)
	history := services.NewHistoryService(memory.NewHistoryStore())
	filter := services.NewFilterService(memory.NewExclusionStore(), hub)
	submission := services.NewSubmissionService(hub)
	settings := services.NewSettingsService(memory.NewConfigStore())

	SetServices(&Services{
		Search: services.NewSearchService(
			hub, services.NewQueryRouter(), services.NewResultNormalizer(), results, history, filter,
		),
		History:    history,
		Filter:     filter,
		Navigator:  services.NewNeighborNavigator(hub, submission, 2),
		Submission: submission,
		Settings:   settings,
		Results:    results,
	})
	t.Cleanup(func() {
		SetServices(nil)
		resetFlags()
	})
	return &testEnv{hub: hub, history: history, filter: filter, settings: settings, results: results}
}

// resetFlags restores flag variables that persist between Execute calls.
func resetFlags() {
	searchModel, searchImage, searchS2T = "", "", ""
	searchK, searchPage = 0, 1
	searchVideos = nil
	searchJSON, searchTranslate = false, false
	for _, name := range []string{"video", "s2t"} {
		searchCmd.Flags().Lookup(name).Changed = false
	}
	scrollModel = ""
	scrollStart, scrollEnd, scrollPage = 0, 0, 1
	historyShowJSON, historyShowYAML = false, false
	historyPage = 1
	submitSession, submitEval, submitDryRun = "", "", false
	videosBatches = []string{"0"}
	neighborsFPS, scrollFPS, submitFPS = 25, 25, 25
}

// execute runs the root command with args and returns everything it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(t, args...)
	require.NoError(t, err, out)
	return out
}
