package driving

import (
	"context"

	"github.com/custodia-labs/framescope/internal/core/domain"
)

// SubmissionService manages the DRES submission form.
type SubmissionService interface {
	// Fill prepares a submission for a frame, reusing known session ids.
	Fill(ctx context.Context, frame domain.FrameRecord) (*domain.Submission, error)

	// Pending returns the last filled submission, if any.
	Pending() (*domain.Submission, bool)

	// SessionIDs fetches and caches the active session and evaluation ids.
	SessionIDs(ctx context.Context) (*domain.DRESSession, error)

	// Submit sends a submission. All fields must be filled.
	Submit(ctx context.Context, sub domain.Submission) (*domain.SubmissionResult, error)
}
