package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/framescope/internal/core/domain"
)

func textRequest(query string, model domain.Model) domain.SearchRequest {
	return domain.SearchRequest{
		Query:    query,
		Type:     domain.QueryText,
		Model:    model,
		Settings: domain.DefaultSearchSettings(),
	}
}

func TestCountSentences(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"a dog runs", 1},
		{"a dog runs.", 1},
		{"a dog runs. a cat sleeps", 2},
		{"first! second? third.", 3},
		{"...", 0},
		{"one.. . two", 3},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, CountSentences(tt.text))
		})
	}
}

func TestQueryRouter_Route_Text(t *testing.T) {
	router := NewQueryRouter()

	got, err := router.Route(textRequest("a red car", domain.ModelSiglipV2))

	require.NoError(t, err)
	assert.Equal(t, "hub/siglip_v2_text_search", got.Endpoint)
	assert.Equal(t, domain.QueryText, got.Type)
	assert.Equal(t, domain.ModelSiglipV2, got.Model)
	assert.Equal(t, "a red car", got.Form["text"])
	assert.Equal(t, "100", got.Form["k"])
	assert.Equal(t, "true", got.Form["return_s2t"])
	assert.Equal(t, "[]", got.Form["skip_frames"])
	assert.NotContains(t, got.Form, "return_list")
}

func TestQueryRouter_Route_EmptyTextBecomesScroll(t *testing.T) {
	router := NewQueryRouter()

	got, err := router.Route(textRequest("   ", domain.ModelMetaV2))

	require.NoError(t, err)
	assert.Equal(t, domain.QueryScroll, got.Type)
	assert.Equal(t, "hub/metaclip_v2_scroll", got.Endpoint)
}

func TestQueryRouter_Route_TemporalSingleSentenceFallsBack(t *testing.T) {
	router := NewQueryRouter()

	got, err := router.Route(textRequest("a man riding a horse.", domain.ModelSiglipV2.Temporal()))

	require.NoError(t, err)
	assert.Equal(t, domain.QueryText, got.Type)
	assert.Equal(t, domain.ModelSiglipV2, got.Model)
	assert.Equal(t, "hub/siglip_v2_text_search", got.Endpoint)
}

func TestQueryRouter_Route_TemporalMultiSentence(t *testing.T) {
	router := NewQueryRouter()

	got, err := router.Route(textRequest("a man rides a horse. he falls off!", domain.ModelMeta.Temporal()))

	require.NoError(t, err)
	assert.Equal(t, domain.QueryTemporal, got.Type)
	assert.Equal(t, domain.ModelMeta, got.Model)
	assert.Equal(t, "hub/metaclip_temporal_search", got.Endpoint)
	assert.Equal(t, "true", got.Form["return_list"])
}

func TestQueryRouter_Route_TemporalModelNeedsTextQuery(t *testing.T) {
	router := NewQueryRouter()
	tests := []struct {
		name string
		req  domain.SearchRequest
	}{
		{
			name: "image",
			req: domain.SearchRequest{
				Type:      domain.QueryImage,
				Model:     domain.ModelMetaV2.Temporal(),
				ImagePath: "https://example.com/a.jpg",
				Settings:  domain.DefaultSearchSettings(),
			},
		},
		{
			name: "empty text becomes scroll",
			req:  textRequest("   ", domain.ModelMetaV2.Temporal()),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := router.Route(tt.req)

			assert.Nil(t, got)
			assert.ErrorIs(t, err, domain.ErrNoRoute)
		})
	}
}

func TestQueryRouter_Route_ImageRequiresReference(t *testing.T) {
	router := NewQueryRouter()

	for _, path := range []string{"", "   ", "not a url", "/tmp/a.jpg", "ftp://host/a.jpg"} {
		req := domain.SearchRequest{Type: domain.QueryImage, Model: domain.ModelMeta, ImagePath: path}
		_, err := router.Route(req)
		assert.ErrorIs(t, err, domain.ErrImageRequired, path)
	}

	req := domain.SearchRequest{Type: domain.QueryImage, Model: domain.ModelMeta, ImagePath: "data:image/png;base64,AAAA"}
	got, err := router.Route(req)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAAA", got.Form["image_path"])
}

func TestQueryRouter_Route_UnknownModel(t *testing.T) {
	router := NewQueryRouter()

	_, err := router.Route(textRequest("cat", domain.Model("CLIP_X")))

	assert.ErrorIs(t, err, domain.ErrNoRoute)
}

func TestQueryRouter_Route_Filters(t *testing.T) {
	router := NewQueryRouter()
	req := textRequest("cat", domain.ModelMeta)
	req.Filters = domain.Filters{
		Videos:  []string{"L01_V001", "L01_V002"},
		S2T:     "xin chao",
		TimeIn:  "01:00",
		TimeOut: "02:00",
		Excluded: []domain.ExcludedFrame{
			{VideoName: "L01_V003", FrameName: "007"},
		},
	}

	got, err := router.Route(req)

	require.NoError(t, err)
	assert.Equal(t, "L01_V001, L01_V002", got.Form["video_filter"])
	assert.Equal(t, "xin chao", got.Form["s2t_filter"])
	assert.Equal(t, "01:00", got.Form["time_in"])
	assert.Equal(t, "02:00", got.Form["time_out"])
	assert.Contains(t, got.Form["skip_frames"], `"video_name":"L01_V003"`)
}

func TestQueryRouter_ScrollAround(t *testing.T) {
	router := NewQueryRouter()
	frame := domain.FrameRecord{
		VideoName:         "L01_V001.mp4",
		KeyframeID:        "01500",
		FPS:               25,
		RelatedStartFrame: 1500,
		RelatedEndFrame:   3100,
	}

	got, err := router.ScrollAround(frame, domain.ModelSiglipV2.Temporal(), domain.DefaultSearchSettings())

	require.NoError(t, err)
	assert.Equal(t, domain.QueryScroll, got.Type)
	assert.Equal(t, domain.ModelSiglipV2, got.Model)
	assert.Equal(t, "hub/siglip_v2_scroll", got.Endpoint)
	assert.Equal(t, "273", got.Form["k"])
	assert.Equal(t, "L01_V001", got.Form["video_filter"])
	assert.Equal(t, "01:00", got.Form["time_in"])
	assert.Equal(t, "02:04", got.Form["time_out"])
	assert.NotContains(t, got.Form, "skip_frames")
}

func TestQueryRouter_ScrollAround_InvalidFPS(t *testing.T) {
	router := NewQueryRouter()

	_, err := router.ScrollAround(domain.FrameRecord{VideoName: "v.mp4"}, domain.ModelMeta, domain.DefaultSearchSettings())

	assert.ErrorIs(t, err, domain.ErrInvalidFPS)
}

func TestFrameToTimecode(t *testing.T) {
	assert.Equal(t, "00:00", FrameToTimecode(0, 25))
	assert.Equal(t, "00:59", FrameToTimecode(1499, 25))
	assert.Equal(t, "01:00", FrameToTimecode(1500, 25))
	assert.Equal(t, "61:01", FrameToTimecode(3661, 1))
}
