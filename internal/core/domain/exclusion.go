package domain

import (
	"encoding/json"
	"strings"
)

// ExcludedFrame is a frame the hub should skip in subsequent searches.
// Identity is the (VideoName, FrameName) pair.
type ExcludedFrame struct {
	// VideoName is the video name without its ".mp4" suffix.
	VideoName string `json:"video_name"`

	// FrameName is the keyframe id.
	FrameName string `json:"frame_name"`

	// RelatedStartFrame is the first frame of the excluded shot.
	RelatedStartFrame FlexFloat `json:"related_start_frame"`

	// RelatedEndFrame is the last frame of the excluded shot.
	RelatedEndFrame FlexFloat `json:"related_end_frame"`
}

// ExcludedFrameFrom builds an exclusion for a result record.
func ExcludedFrameFrom(rec FrameRecord) ExcludedFrame {
	return ExcludedFrame{
		VideoName:         rec.BaseVideoName(),
		FrameName:         rec.KeyframeID,
		RelatedStartFrame: rec.RelatedStartFrame,
		RelatedEndFrame:   rec.RelatedEndFrame,
	}
}

// Key returns the identity of the exclusion.
func (e ExcludedFrame) Key() string {
	return e.VideoName + "/" + e.FrameName
}

// Filters narrows a search.
type Filters struct {
	// Videos restricts the search to these videos.
	Videos []string

	// S2T restricts the search to frames whose transcript matches.
	S2T string

	// TimeIn and TimeOut bound a scroll search as "mm:ss".
	TimeIn  string
	TimeOut string

	// Excluded lists frames to skip, in insertion order.
	Excluded []ExcludedFrame
}

// VideoFilter returns the video list joined as the hub expects.
func (f Filters) VideoFilter() string {
	return strings.Join(f.Videos, ", ")
}

// SkipFrames returns the JSON encoding of the exclusion list.
func (f Filters) SkipFrames() string {
	excluded := f.Excluded
	if excluded == nil {
		excluded = []ExcludedFrame{}
	}
	data, err := json.Marshal(excluded)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// Snapshot returns the flat record stored in a SearchContext.
func (f Filters) Snapshot() ContextFilters {
	return ContextFilters{
		VideoFilter: f.VideoFilter(),
		S2TFilter:   f.S2T,
		TimeIn:      f.TimeIn,
		TimeOut:     f.TimeOut,
		SkipFrames:  f.SkipFrames(),
	}
}

// ContextFilters is the flat filter record kept in history.
type ContextFilters struct {
	VideoFilter string `json:"video_filter" yaml:"video_filter"`
	S2TFilter   string `json:"s2t_filter" yaml:"s2t_filter"`
	TimeIn      string `json:"time_in" yaml:"time_in"`
	TimeOut     string `json:"time_out" yaml:"time_out"`
	SkipFrames  string `json:"skip_frames" yaml:"skip_frames"`
}

// Restore rebuilds Filters from a history record. The video list is split on
// commas; an unreadable exclusion list restores as empty.
func (c ContextFilters) Restore() Filters {
	f := Filters{
		S2T:     c.S2TFilter,
		TimeIn:  c.TimeIn,
		TimeOut: c.TimeOut,
	}
	for _, v := range strings.Split(c.VideoFilter, ",") {
		if v = strings.TrimSpace(v); v != "" {
			f.Videos = append(f.Videos, v)
		}
	}
	if c.SkipFrames != "" {
		var excluded []ExcludedFrame
		if err := json.Unmarshal([]byte(c.SkipFrames), &excluded); err == nil {
			f.Excluded = excluded
		}
	}
	return f
}
