package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// VideoExtension is the container suffix stripped from video names in filters and labels.
const VideoExtension = ".mp4"

// FrameRecord is one keyframe hit returned by the hub.
type FrameRecord struct {
	// Index is the record's position in the current result set (currentVideos).
	// For temporal results it is a global counter over the present cells.
	Index int `json:"index"`

	// VideoName is the source video file name, usually with a ".mp4" suffix.
	VideoName string `json:"video_name"`

	// KeyframeID is the frame identifier, e.g. "01234" or "01234.jpg".
	KeyframeID string `json:"keyframe_id"`

	// FramePath is the hub-relative path of the frame image.
	FramePath string `json:"frame_path"`

	// VideoPath is the hub-relative path of the source video.
	VideoPath string `json:"video_path,omitempty"`

	// FPS is the frame rate of the source video.
	FPS FlexFloat `json:"fps,omitempty"`

	// Score is the similarity score assigned by the retrieval model.
	Score FlexFloat `json:"score,omitempty"`

	// S2T is the speech-to-text transcript near the frame.
	S2T Transcript `json:"s2t,omitempty"`

	// Objects lists detected objects in the frame.
	Objects ObjectList `json:"object,omitempty"`

	// RelatedStartFrame is the first frame of the shot containing this keyframe.
	RelatedStartFrame FlexFloat `json:"related_start_frame,omitempty"`

	// RelatedEndFrame is the last frame of the shot containing this keyframe.
	RelatedEndFrame FlexFloat `json:"related_end_frame,omitempty"`
}

// BaseVideoName returns the video name without its ".mp4" suffix.
func (r FrameRecord) BaseVideoName() string {
	return strings.TrimSuffix(r.VideoName, VideoExtension)
}

// FrameNumberText returns the keyframe id up to the first dot.
func (r FrameRecord) FrameNumberText() string {
	id, _, _ := strings.Cut(r.KeyframeID, ".")
	return id
}

// FrameNumber parses the leading integer of the keyframe id.
// Ids without leading digits yield 0.
func (r FrameRecord) FrameNumber() int {
	s := strings.TrimSpace(r.KeyframeID)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// EffectiveFPS returns the frame rate, defaulting to 1 when missing or invalid.
func (r FrameRecord) EffectiveFPS() float64 {
	fps := float64(r.FPS)
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return 1
	}
	return fps
}

// Timecode returns the frame's position in its video as "mm:ss".
func (r FrameRecord) Timecode() string {
	total := int(math.Floor(float64(r.FrameNumber()) / r.EffectiveFPS()))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// CacheKey identifies the record for render caching.
func (r FrameRecord) CacheKey() string {
	return r.VideoName + "_" + r.KeyframeID
}

// Transcript returns the speech-to-text tokens joined with spaces.
func (r FrameRecord) Transcript() string {
	return strings.Join(r.S2T, " ")
}

// DetectedObject is one object detection inside a frame.
type DetectedObject struct {
	Object string    `json:"object"`
	Conf   float64   `json:"conf"`
	BBox   []float64 `json:"bbox"`
}

// FlexFloat decodes from a JSON number or a numeric string.
// Null, empty, and non-numeric strings decode to zero.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexFloat(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decoding number %s: %w", data, err)
	}
	*f = FlexFloat(v)
	return nil
}

// Transcript holds speech-to-text tokens. It decodes from a JSON list or
// from a string, which is repaired with ParseLegacyStringArray.
type Transcript []string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Transcript) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = nil
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = ParseLegacyStringArray(s)
		return nil
	case '[':
		var items []any
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				out = append(out, s)
				continue
			}
			out = append(out, fmt.Sprint(item))
		}
		*t = out
		return nil
	default:
		*t = Transcript{string(data)}
		return nil
	}
}

// ObjectList holds detected objects. It decodes from a JSON list or from a
// string, which is repaired with ParseLegacyObjectArray.
type ObjectList []DetectedObject

// UnmarshalJSON implements json.Unmarshaler.
func (o *ObjectList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*o = nil
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*o = ParseLegacyObjectArray(s)
		return nil
	}

	var objs []DetectedObject
	if err := json.Unmarshal(data, &objs); err != nil {
		// Malformed detections should not drop the whole frame.
		*o = ObjectList{}
		return nil
	}
	*o = objs
	return nil
}

// NeighborPaths are the frame image paths around a focal frame, nearest last
// for Prev and nearest first for Next.
type NeighborPaths struct {
	Prev []string `json:"prev_frames"`
	Next []string `json:"next_frames"`
}

// NeighborFrame builds a record for a neighbouring frame path. The keyframe
// id is the path's base name without its image extension; video name and
// fps are inherited from the focal frame.
func NeighborFrame(path string, focal FrameRecord) FrameRecord {
	base := path
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	base = strings.TrimSuffix(base, ".avif")
	base = strings.TrimSuffix(base, ".jpg")
	return FrameRecord{
		Index:      -1,
		VideoName:  focal.VideoName,
		KeyframeID: base,
		FramePath:  path,
		VideoPath:  focal.VideoPath,
		FPS:        focal.FPS,
	}
}
