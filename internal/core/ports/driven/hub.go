package driven

import (
	"context"
	"encoding/json"

	"github.com/custodia-labs/framescope/internal/core/domain"
)

// Hub is the retrieval backend. Implementations handle transport,
// envelope unwrapping, and rate limiting.
type Hub interface {
	// Search posts a routed query to the given endpoint and returns the raw
	// result payload, unwrapped from the response envelope.
	Search(ctx context.Context, endpoint string, form map[string]string) (json.RawMessage, error)

	// VideoNamesOfBatch lists the video names belonging to the given batches.
	VideoNamesOfBatch(ctx context.Context, batches []string) ([]string, error)

	// NeighboringFrames returns up to k frame paths on each side of a frame.
	// videoName has no ".mp4" suffix; frameNum is the keyframe id before its first dot.
	NeighboringFrames(ctx context.Context, videoName, frameNum string, k int) (*domain.NeighborPaths, error)

	// Translate returns an English translation of text.
	Translate(ctx context.Context, text string) (string, error)

	// RerankColor reorders records by colour similarity.
	RerankColor(ctx context.Context, records []domain.FrameRecord) ([]domain.FrameRecord, error)

	// SessionAndEvalID fetches the active DRES session and evaluation ids.
	SessionAndEvalID(ctx context.Context) (*domain.DRESSession, error)

	// SubmitDRES submits a frame interval for judgement.
	SubmitDRES(ctx context.Context, sub domain.Submission) (*domain.SubmissionResult, error)
}
