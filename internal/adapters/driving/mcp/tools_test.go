package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/framescope/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/framescope/internal/core/domain"
	"github.com/custodia-labs/framescope/internal/core/services"
)

func flatEntry(n int) *domain.SearchContext {
	records := make([]domain.FrameRecord, n)
	for i := range records {
		records[i] = domain.FrameRecord{
			VideoName:  "L01_V001.mp4",
			KeyframeID: "00100",
			FPS:        25,
			Score:      0.5,
			S2T:        domain.Transcript{"xin", "chao"},
			Objects:    domain.ObjectList{{Object: "car", Conf: 0.9}},
		}
	}
	return &domain.SearchContext{
		Query:     "a car",
		QueryType: domain.QueryText,
		Model:     domain.ModelSiglipV2,
		Results:   domain.NewFlatResultSet(records),
	}
}

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns frames", func(t *testing.T) {
		mock := &mockSearchService{entry: flatEntry(1)}
		server, err := NewServer(&Ports{Search: mock}, "test")
		require.NoError(t, err)

		_, out, err := server.handleSearch(ctx, nil, SearchInput{Query: "a car"})

		require.NoError(t, err)
		assert.Equal(t, "flat", out.Shape)
		assert.Equal(t, 1, out.Count)
		require.Len(t, out.Frames, 1)
		f := out.Frames[0]
		assert.Equal(t, "L01_V001", f.Video)
		assert.Equal(t, "00100", f.Keyframe)
		assert.Equal(t, "00:04", f.Timecode)
		assert.Equal(t, "xin chao", f.Transcript)
		assert.Equal(t, []string{"car"}, f.Objects)
	})

	t.Run("applies limit", func(t *testing.T) {
		mock := &mockSearchService{entry: flatEntry(30)}
		server, err := NewServer(&Ports{Search: mock}, "test")
		require.NoError(t, err)

		_, out, err := server.handleSearch(ctx, nil, SearchInput{Query: "a car"})
		require.NoError(t, err)
		assert.Equal(t, 30, out.Count)
		assert.Len(t, out.Frames, defaultLimit)

		_, out, err = server.handleSearch(ctx, nil, SearchInput{Query: "a car", Limit: 3})
		require.NoError(t, err)
		assert.Len(t, out.Frames, 3)
	})

	t.Run("builds request from input", func(t *testing.T) {
		mock := &mockSearchService{}
		server, err := NewServer(&Ports{Search: mock}, "test")
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{
			Query:  "a boat",
			Model:  "temporal_meta",
			K:      40,
			Videos: []string{"L01_V001"},
			S2T:    "hello",
			TimeIn: "00:10",
		})

		require.NoError(t, err)
		req := mock.lastRequest
		assert.Equal(t, domain.QueryText, req.Type)
		assert.Equal(t, domain.Model("TEMPORAL_META"), req.Model)
		assert.Equal(t, 40, req.Settings.K)
		assert.Equal(t, []string{"L01_V001"}, req.Filters.Videos)
		assert.Equal(t, "hello", req.Filters.S2T)
		assert.Equal(t, "00:10", req.Filters.TimeIn)
	})

	t.Run("image reference switches query type", func(t *testing.T) {
		mock := &mockSearchService{}
		server, err := NewServer(&Ports{Search: mock}, "test")
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Image: "https://example.com/frame.jpg"})

		require.NoError(t, err)
		assert.Equal(t, domain.QueryImage, mock.lastRequest.Type)
		assert.Equal(t, "https://example.com/frame.jpg", mock.lastRequest.ImagePath)
	})

	t.Run("uses settings and exclusions", func(t *testing.T) {
		settings := services.NewSettingsService(memory.NewConfigStore())
		require.NoError(t, settings.Set("search.model", "META_V2"))
		require.NoError(t, settings.Set("search.k", "15"))

		filter := services.NewFilterService(memory.NewExclusionStore(), &neighborHub{})
		_, err := filter.Exclude(ctx, domain.FrameRecord{VideoName: "L01_V002.mp4", KeyframeID: "00007"})
		require.NoError(t, err)

		mock := &mockSearchService{}
		server, err := NewServer(&Ports{Search: mock, Settings: settings, Filter: filter}, "test")
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "x"})

		require.NoError(t, err)
		assert.Equal(t, domain.ModelMetaV2, mock.lastRequest.Model)
		assert.Equal(t, 15, mock.lastRequest.Settings.K)
		assert.Len(t, mock.lastRequest.Filters.Excluded, 1)
	})

	t.Run("temporal results become rows", func(t *testing.T) {
		first := domain.FrameRecord{Index: 0, VideoName: "L01_V001.mp4", KeyframeID: "00010", FPS: 25}
		second := domain.FrameRecord{Index: 1, VideoName: "L01_V001.mp4", KeyframeID: "00090", FPS: 25}
		mock := &mockSearchService{entry: &domain.SearchContext{
			QueryType: domain.QueryTemporal,
			Model:     domain.ModelSiglipV2,
			Results: domain.ResultSet{
				Shape:      domain.ShapeTemporal,
				Records:    []domain.FrameRecord{first, second},
				Rows:       []domain.TemporalRow{{VideoName: "L01_V001.mp4", Cells: []*domain.FrameRecord{&first, nil, &second}}},
				SceneCount: 3,
			},
		}}
		server, err := NewServer(&Ports{Search: mock}, "test")
		require.NoError(t, err)

		_, out, err := server.handleSearch(ctx, nil, SearchInput{Query: "One. Two. Three."})

		require.NoError(t, err)
		assert.Equal(t, "temporal", out.Shape)
		assert.Equal(t, 3, out.SceneCount)
		assert.Empty(t, out.Frames)
		require.Len(t, out.Rows, 1)
		assert.Equal(t, "L01_V001", out.Rows[0].Video)
		require.Len(t, out.Rows[0].Scenes, 2)
		assert.Equal(t, 1, out.Rows[0].Scenes[0].Scene)
		assert.Equal(t, 3, out.Rows[0].Scenes[1].Scene)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		mock := &mockSearchService{err: errors.New("search failed")}
		server, err := NewServer(&Ports{Search: mock}, "test")
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "test"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "search failed")
	})
}

func TestServer_handleScroll(t *testing.T) {
	ctx := context.Background()

	t.Run("builds focal frame", func(t *testing.T) {
		mock := &mockSearchService{entry: flatEntry(2)}
		server, err := NewServer(&Ports{Search: mock}, "test")
		require.NoError(t, err)

		_, out, err := server.handleScroll(ctx, nil, ScrollInput{
			Video: "L01_V001", Keyframe: "00120", FPS: 25, StartFrame: 100,
		})

		require.NoError(t, err)
		assert.Len(t, out.Frames, 2)
		assert.Equal(t, "L01_V001.mp4", mock.lastFrame.VideoName)
		assert.Equal(t, domain.FlexFloat(100), mock.lastFrame.RelatedStartFrame)
		assert.Equal(t, domain.FlexFloat(120), mock.lastFrame.RelatedEndFrame)
		assert.Equal(t, domain.ModelSiglipV2, mock.lastModel)
	})

	t.Run("requires video and keyframe", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}}, "test")
		require.NoError(t, err)

		_, _, err = server.handleScroll(ctx, nil, ScrollInput{Video: "L01_V001"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleNeighbors(t *testing.T) {
	ctx := context.Background()

	t.Run("lists strip around focal frame", func(t *testing.T) {
		hub := &neighborHub{paths: &domain.NeighborPaths{
			Prev: []string{"keyframes/L01_V001/00098.jpg", "keyframes/L01_V001/00099.jpg"},
			Next: []string{"keyframes/L01_V001/00101.jpg"},
		}}
		nav := services.NewNeighborNavigator(hub, nil, 2)
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Navigator: nav}, "test")
		require.NoError(t, err)

		_, out, err := server.handleNeighbors(ctx, nil, NeighborsInput{Video: "L01_V001", Keyframe: "00100", FPS: 25})

		require.NoError(t, err)
		assert.True(t, out.Available)
		require.Len(t, out.Frames, 4)
		assert.Equal(t, 2, out.Focal)
		assert.Equal(t, "00100", out.Frames[out.Focal].Keyframe)
		assert.Equal(t, "00098", out.Frames[0].Keyframe)
		assert.Equal(t, domain.NavigatorIdle, nav.State())
	})

	t.Run("hub failure leaves only focal frame", func(t *testing.T) {
		nav := services.NewNeighborNavigator(&neighborHub{err: errors.New("down")}, nil, 2)
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Navigator: nav}, "test")
		require.NoError(t, err)

		_, out, err := server.handleNeighbors(ctx, nil, NeighborsInput{Video: "L01_V001", Keyframe: "00100"})

		require.NoError(t, err)
		assert.False(t, out.Available)
	})

	t.Run("without navigator", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}}, "test")
		require.NoError(t, err)

		_, _, err = server.handleNeighbors(ctx, nil, NeighborsInput{Video: "v", Keyframe: "1"})

		assert.ErrorIs(t, err, ErrNavigatorUnavailable)
	})
}
