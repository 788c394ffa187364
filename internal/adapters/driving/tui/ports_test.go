package tui

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/framescope/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/framescope/internal/core/domain"
	"github.com/custodia-labs/framescope/internal/core/services"
)

// stubHub returns one flat result page and a pair of neighbours.
type stubHub struct{}

func (stubHub) Search(context.Context, string, map[string]string) (json.RawMessage, error) {
	return json.RawMessage(`[
		{"video_name": "L02_V003.mp4", "keyframe_id": "00250", "fps": 25, "score": 0.75}
	]`), nil
}

func (stubHub) VideoNamesOfBatch(context.Context, []string) ([]string, error) {
	return nil, nil
}

func (stubHub) NeighboringFrames(context.Context, string, string, int) (*domain.NeighborPaths, error) {
	return &domain.NeighborPaths{
		Prev: []string{"keyframes/L02_V003/00249.jpg"},
		Next: []string{"keyframes/L02_V003/00251.jpg"},
	}, nil
}

func (stubHub) Translate(_ context.Context, text string) (string, error) {
	return text, nil
}

func (stubHub) RerankColor(_ context.Context, records []domain.FrameRecord) ([]domain.FrameRecord, error) {
	return records, nil
}

func (stubHub) SessionAndEvalID(context.Context) (*domain.DRESSession, error) {
	return nil, errors.New("no evaluation server")
}

func (stubHub) SubmitDRES(context.Context, domain.Submission) (*domain.SubmissionResult, error) {
	return nil, errors.New("no evaluation server")
}

func newTestPorts() *Ports {
	hub := stubHub{}
	results := services.NewResultsView(10)
	history := services.NewHistoryService(memory.NewHistoryStore())
	filter := services.NewFilterService(memory.NewExclusionStore(), hub)
	submission := services.NewSubmissionService(hub)
	return &Ports{
		Search: services.NewSearchService(
			hub, services.NewQueryRouter(), services.NewResultNormalizer(), results, history, filter,
		),
		History:    history,
		Filter:     filter,
		Results:    results,
		Navigator:  services.NewNeighborNavigator(hub, submission, 2),
		Submission: submission,
	}
}

func TestNewPorts(t *testing.T) {
	full := newTestPorts()

	p := NewPorts(full.Search, full.History, full.Filter, full.Results, full.Navigator)

	assert.NoError(t, p.Validate())
	assert.Nil(t, p.Submission)
	assert.Nil(t, p.Settings)
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name  string
		strip func(*Ports)
		want  error
	}{
		{"complete", func(*Ports) {}, nil},
		{"no search", func(p *Ports) { p.Search = nil }, ErrMissingSearchService},
		{"no history", func(p *Ports) { p.History = nil }, ErrMissingHistoryService},
		{"no filter", func(p *Ports) { p.Filter = nil }, ErrMissingFilterService},
		{"no results", func(p *Ports) { p.Results = nil }, ErrMissingResultsView},
		{"no navigator", func(p *Ports) { p.Navigator = nil }, ErrMissingNavigator},
		{"optional submission", func(p *Ports) { p.Submission = nil }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPorts()
			tt.strip(p)
			err := p.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPorts_ValidateNil(t *testing.T) {
	var p *Ports
	assert.ErrorIs(t, p.Validate(), ErrInvalidPorts)
}
