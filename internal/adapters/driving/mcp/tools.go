package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/framescope/internal/adapters/driving/imageref"
	"github.com/custodia-labs/framescope/internal/core/domain"
)

const defaultLimit = 20

// SearchInput is the input schema for the search_frames tool.
type SearchInput struct {
	Query   string   `json:"query,omitempty" jsonschema:"description of the frame; with a TEMPORAL_ model, two or more sentences match consecutive scenes"`
	Image   string   `json:"image,omitempty" jsonschema:"image URL, data URI or local file to search by example instead of text"`
	Model   string   `json:"model,omitempty" jsonschema:"retrieval model: META, META_V2, SIGLIP_V2, optionally prefixed with TEMPORAL_"`
	K       int      `json:"k,omitempty" jsonschema:"number of results to request from the hub"`
	Videos  []string `json:"videos,omitempty" jsonschema:"restrict the search to these videos"`
	S2T     string   `json:"s2t,omitempty" jsonschema:"only frames whose transcript matches this text"`
	TimeIn  string   `json:"time_in,omitempty" jsonschema:"start of the time window as mm:ss"`
	TimeOut string   `json:"time_out,omitempty" jsonschema:"end of the time window as mm:ss"`
	Limit   int      `json:"limit,omitempty" jsonschema:"maximum frames or rows to return (default 20)"`
}

// ScrollInput is the input schema for the scroll_frames tool.
type ScrollInput struct {
	Video      string  `json:"video" jsonschema:"video name, with or without .mp4"`
	Keyframe   string  `json:"keyframe" jsonschema:"keyframe id, e.g. 00120"`
	FPS        float64 `json:"fps" jsonschema:"frame rate of the video"`
	StartFrame float64 `json:"start_frame,omitempty" jsonschema:"first frame of the shot"`
	EndFrame   float64 `json:"end_frame,omitempty" jsonschema:"last frame of the shot (default: the keyframe)"`
	Model      string  `json:"model,omitempty" jsonschema:"retrieval model (default from settings)"`
	Limit      int     `json:"limit,omitempty" jsonschema:"maximum frames to return (default 20)"`
}

// NeighborsInput is the input schema for the neighbors tool.
type NeighborsInput struct {
	Video    string  `json:"video" jsonschema:"video name, with or without .mp4"`
	Keyframe string  `json:"keyframe" jsonschema:"keyframe id, e.g. 00120"`
	FPS      float64 `json:"fps,omitempty" jsonschema:"frame rate of the video, used for timecodes"`
}

// FrameOutput is one keyframe.
type FrameOutput struct {
	Index      int      `json:"index"`
	Video      string   `json:"video"`
	Keyframe   string   `json:"keyframe"`
	Timecode   string   `json:"timecode"`
	Score      float64  `json:"score,omitempty"`
	FPS        float64  `json:"fps,omitempty"`
	FramePath  string   `json:"frame_path,omitempty"`
	Transcript string   `json:"transcript,omitempty"`
	Objects    []string `json:"objects,omitempty"`
}

// SceneOutput is one present cell of a temporal row.
type SceneOutput struct {
	Scene int         `json:"scene"`
	Frame FrameOutput `json:"frame"`
}

// RowOutput is one video of a temporal result.
type RowOutput struct {
	Video  string        `json:"video"`
	Scenes []SceneOutput `json:"scenes"`
}

// SearchOutput is the output schema for the search tools.
type SearchOutput struct {
	Query      string        `json:"query,omitempty"`
	QueryType  string        `json:"query_type"`
	Model      string        `json:"model"`
	Shape      string        `json:"shape"`
	Count      int           `json:"count"`
	SceneCount int           `json:"scene_count,omitempty"`
	Frames     []FrameOutput `json:"frames,omitempty"`
	Rows       []RowOutput   `json:"rows,omitempty"`
}

// NeighborsOutput is the output schema for the neighbors tool.
type NeighborsOutput struct {
	Frames    []FrameOutput `json:"frames"`
	Focal     int           `json:"focal"`
	Available bool          `json:"available"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_frames",
		Description: "Search video keyframes by text description or example image",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "scroll_frames",
		Description: "List every frame of the shot containing a keyframe",
	}, s.handleScroll)

	if s.ports.Navigator != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "neighbors",
			Description: "List the keyframes just before and after a keyframe",
		}, s.handleNeighbors)
	}
}

// handleSearch handles the search_frames tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	req, err := s.defaultRequest()
	if err != nil {
		return nil, SearchOutput{}, err
	}
	req.Query = input.Query
	if input.Image != "" {
		image, err := imageref.Resolve(input.Image)
		if err != nil {
			return nil, SearchOutput{}, err
		}
		req.Type = domain.QueryImage
		req.ImagePath = image
	}
	if input.Model != "" {
		req.Model = domain.Model(strings.ToUpper(input.Model))
	}
	if input.K > 0 {
		req.Settings.K = input.K
	}
	req.Filters = domain.Filters{
		Videos:  input.Videos,
		S2T:     input.S2T,
		TimeIn:  input.TimeIn,
		TimeOut: input.TimeOut,
	}
	if s.ports.Filter != nil {
		excluded, err := s.ports.Filter.Excluded(ctx)
		if err != nil {
			return nil, SearchOutput{}, err
		}
		req.Filters.Excluded = excluded
	}

	entry, err := s.ports.Search.Submit(ctx, req)
	if err != nil {
		return nil, SearchOutput{}, err
	}
	return nil, toSearchOutput(entry, input.Limit), nil
}

// handleScroll handles the scroll_frames tool invocation.
func (s *Server) handleScroll(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ScrollInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	if input.Video == "" || input.Keyframe == "" {
		return nil, SearchOutput{}, fmt.Errorf("%w: video and keyframe are required", domain.ErrInvalidInput)
	}
	req, err := s.defaultRequest()
	if err != nil {
		return nil, SearchOutput{}, err
	}
	if input.Model != "" {
		req.Model = domain.Model(strings.ToUpper(input.Model))
	}

	frame := frameRef(input.Video, input.Keyframe, input.FPS)
	frame.RelatedStartFrame = domain.FlexFloat(input.StartFrame)
	frame.RelatedEndFrame = domain.FlexFloat(input.EndFrame)
	if input.EndFrame == 0 {
		frame.RelatedEndFrame = domain.FlexFloat(frame.FrameNumber())
	}

	entry, err := s.ports.Search.ScrollAround(ctx, frame, req.Model, req.Settings)
	if err != nil {
		return nil, SearchOutput{}, err
	}
	return nil, toSearchOutput(entry, input.Limit), nil
}

// handleNeighbors handles the neighbors tool invocation.
func (s *Server) handleNeighbors(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input NeighborsInput,
) (*mcp.CallToolResult, NeighborsOutput, error) {
	nav := s.ports.Navigator
	if nav == nil {
		return nil, NeighborsOutput{}, ErrNavigatorUnavailable
	}
	if input.Video == "" || input.Keyframe == "" {
		return nil, NeighborsOutput{}, fmt.Errorf("%w: video and keyframe are required", domain.ErrInvalidInput)
	}

	gen := nav.Open(frameRef(input.Video, input.Keyframe, input.FPS))
	defer nav.Close()
	nav.Load(ctx, gen)

	frames := nav.Frames()
	out := NeighborsOutput{
		Frames:    make([]FrameOutput, 0, len(frames)),
		Focal:     nav.Cursor(),
		Available: nav.StripVisible(),
	}
	for _, f := range frames {
		out.Frames = append(out.Frames, toFrameOutput(f))
	}
	return nil, out, nil
}

// defaultRequest builds a text request from the stored settings.
func (s *Server) defaultRequest() (domain.SearchRequest, error) {
	defaults := domain.DefaultAppSettings()
	req := domain.SearchRequest{
		Type:     domain.QueryText,
		Model:    defaults.Query.Model,
		Settings: defaults.Query.Settings,
	}
	if s.ports.Settings == nil {
		return req, nil
	}
	settings, err := s.ports.Settings.Get()
	if err != nil {
		return req, fmt.Errorf("reading settings: %w", err)
	}
	req.Model = settings.Query.Model
	req.Settings = settings.Query.Settings
	req.AutoTranslate = settings.Query.AutoTranslate
	return req, nil
}

func frameRef(video, keyframe string, fps float64) domain.FrameRecord {
	if !strings.HasSuffix(video, domain.VideoExtension) {
		video += domain.VideoExtension
	}
	return domain.FrameRecord{
		Index:      -1,
		VideoName:  video,
		KeyframeID: keyframe,
		FPS:        domain.FlexFloat(fps),
	}
}

func toSearchOutput(entry *domain.SearchContext, limit int) SearchOutput {
	if limit <= 0 {
		limit = defaultLimit
	}
	rs := entry.Results
	out := SearchOutput{
		Query:      entry.Query,
		QueryType:  string(entry.QueryType),
		Model:      entry.Model.Display(),
		Shape:      rs.Shape.String(),
		Count:      rs.Len(),
		SceneCount: rs.SceneCount,
	}

	if rs.Shape == domain.ShapeTemporal {
		for _, row := range rs.Rows[:min(limit, len(rs.Rows))] {
			r := RowOutput{Video: strings.TrimSuffix(row.VideoName, domain.VideoExtension)}
			for i, cell := range row.Cells {
				if cell != nil {
					r.Scenes = append(r.Scenes, SceneOutput{Scene: i + 1, Frame: toFrameOutput(*cell)})
				}
			}
			out.Rows = append(out.Rows, r)
		}
		return out
	}

	for _, rec := range rs.Records[:min(limit, len(rs.Records))] {
		out.Frames = append(out.Frames, toFrameOutput(rec))
	}
	return out
}

func toFrameOutput(rec domain.FrameRecord) FrameOutput {
	out := FrameOutput{
		Index:      rec.Index,
		Video:      rec.BaseVideoName(),
		Keyframe:   rec.FrameNumberText(),
		Timecode:   rec.Timecode(),
		Score:      float64(rec.Score),
		FPS:        float64(rec.FPS),
		FramePath:  rec.FramePath,
		Transcript: rec.Transcript(),
	}
	for _, o := range rec.Objects {
		out.Objects = append(out.Objects, o.Object)
	}
	return out
}
