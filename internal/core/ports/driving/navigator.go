package driving

import (
	"context"

	"github.com/custodia-labs/framescope/internal/core/domain"
)

// NeighborNavigator drives the frame detail overlay and its neighbour strip.
type NeighborNavigator interface {
	// Open shows the focal frame and returns the open generation that a
	// later Load call must carry.
	Open(focal domain.FrameRecord) uint64

	// Load fetches neighbours for the frame opened at generation gen.
	// Failures degrade to the focal frame alone; a stale gen is ignored.
	Load(ctx context.Context, gen uint64)

	// State returns the lifecycle state.
	State() domain.NavigatorState

	// Frames returns the frame list shown in the overlay.
	Frames() []domain.FrameRecord

	// Cursor returns the position of the current frame.
	Cursor() int

	// Current returns the frame under the cursor.
	Current() (domain.FrameRecord, bool)

	// StripVisible reports whether the neighbour strip is shown.
	StripVisible() bool

	// Navigate moves the cursor by delta, wrapping around.
	Navigate(delta int)

	// Select jumps to strip item i.
	Select(i int)

	// Close clears the list and closes the overlay.
	Close()

	// CommitToSubmission hands the current frame to the submission form and closes.
	CommitToSubmission(ctx context.Context) (*domain.Submission, error)
}
