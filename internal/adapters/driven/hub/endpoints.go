package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/framescope/internal/core/domain"
)

// Hub endpoint paths.
const (
	EndpointVideoNames  = "hub/get_video_names_of_batch"
	EndpointNeighbors   = "hub/get_neighboring_frames"
	EndpointTranslate   = "hub/translate"
	EndpointRerankColor = "hub/rerank_color"
	EndpointSessionIDs  = "hub/get_session_and_eval_id"
	EndpointSubmitDRES  = "hub/submitDRES"
)

// Search posts a routed query. The payload is data.data when the envelope
// nests it, otherwise data.
func (c *Client) Search(ctx context.Context, endpoint string, form map[string]string) (json.RawMessage, error) {
	data, err := c.postForm(ctx, endpoint, form)
	if err != nil {
		return nil, err
	}
	if inner, ok := nested(data); ok {
		return inner, nil
	}
	return data, nil
}

// VideoNamesOfBatch lists the video names belonging to the given batches.
// Batch ids are sent as a JSON array of integers.
func (c *Client) VideoNamesOfBatch(ctx context.Context, batches []string) ([]string, error) {
	ids := make([]int, 0, len(batches))
	for _, b := range batches {
		id, err := strconv.Atoi(strings.TrimSpace(b))
		if err != nil {
			return nil, fmt.Errorf("%w: batch id %q", domain.ErrInvalidInput, b)
		}
		ids = append(ids, id)
	}
	encoded, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("marshal batch ids: %w", err)
	}

	data, err := c.postForm(ctx, EndpointVideoNames, map[string]string{"batch_id": string(encoded)})
	if err != nil {
		return nil, err
	}
	if inner, ok := nested(data); ok {
		data = inner
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("%w: video names: %w", ErrUnexpectedPayload, err)
	}
	return names, nil
}

// NeighboringFrames returns up to k frame paths on each side of a frame.
func (c *Client) NeighboringFrames(ctx context.Context, videoName, frameNum string, k int) (*domain.NeighborPaths, error) {
	if n, err := strconv.Atoi(frameNum); err == nil {
		frameNum = strconv.Itoa(n)
	}
	data, err := c.postForm(ctx, EndpointNeighbors, map[string]string{
		"video_name": strings.TrimSuffix(videoName, domain.VideoExtension),
		"frame_num":  frameNum,
		"k":          strconv.Itoa(k),
	})
	if err != nil {
		return nil, err
	}

	var paths domain.NeighborPaths
	if err := json.Unmarshal(data, &paths); err != nil {
		return nil, fmt.Errorf("%w: neighbours: %w", ErrUnexpectedPayload, err)
	}
	return &paths, nil
}

// Translate returns an English translation of text.
func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no text to translate", domain.ErrInvalidInput)
	}
	data, err := c.postForm(ctx, EndpointTranslate, map[string]string{"text": text})
	if err != nil {
		return "", err
	}

	var translated string
	if err := json.Unmarshal(data, &translated); err != nil || translated == "" {
		return "", fmt.Errorf("%w: translation", ErrUnexpectedPayload)
	}
	return translated, nil
}

// RerankColor sends records as video_metadata_list and returns them in the
// hub's order. The payload may be data or data.data.
func (c *Client) RerankColor(ctx context.Context, records []domain.FrameRecord) ([]domain.FrameRecord, error) {
	encoded, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("marshal records: %w", err)
	}

	data, err := c.postForm(ctx, EndpointRerankColor, map[string]string{"video_metadata_list": string(encoded)})
	if err != nil {
		return nil, err
	}
	if !isArray(data) {
		inner, ok := nested(data)
		if !ok || !isArray(inner) {
			return nil, fmt.Errorf("%w: invalid rerank response format", ErrUnexpectedPayload)
		}
		data = inner
	}

	var out []domain.FrameRecord
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: rerank: %w", ErrUnexpectedPayload, err)
	}
	return out, nil
}

// SessionAndEvalID fetches the active DRES session and evaluation ids.
func (c *Client) SessionAndEvalID(ctx context.Context) (*domain.DRESSession, error) {
	data, err := c.get(ctx, EndpointSessionIDs)
	if err != nil {
		return nil, err
	}

	var sess domain.DRESSession
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("%w: session ids: %w", ErrUnexpectedPayload, err)
	}
	return &sess, nil
}

// SubmitDRES submits a frame interval for judgement.
func (c *Client) SubmitDRES(ctx context.Context, sub domain.Submission) (*domain.SubmissionResult, error) {
	data, err := c.postForm(ctx, EndpointSubmitDRES, map[string]string{
		"session_id":    sub.SessionID,
		"eval_id":       sub.EvalID,
		"mediaItemName": sub.MediaItem,
		"start":         strconv.FormatInt(sub.StartMS, 10),
		"end":           strconv.FormatInt(sub.EndMS, 10),
	})
	if err != nil {
		return nil, err
	}

	var result domain.SubmissionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("%w: submission: %w", ErrUnexpectedPayload, err)
	}
	return &result, nil
}

// nested returns data.data when data is an object carrying a "data" key.
func nested(data json.RawMessage) (json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, false
	}
	inner, ok := obj["data"]
	return inner, ok
}

func isArray(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '['
}
