package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/framescope/internal/core/domain"
	"github.com/custodia-labs/framescope/internal/core/ports/driven"
	"github.com/custodia-labs/framescope/internal/core/ports/driving"
	"github.com/custodia-labs/framescope/internal/logger"
)

// Ensure NeighborNavigator implements the interface.
var _ driving.NeighborNavigator = (*NeighborNavigator)(nil)

// NeighborNavigator is the detail overlay's state machine:
//
//	idle --Open--> loading --Load--> displaying
//	loading|displaying --Close--> idle
//
// Only the navigator writes its frame list and cursor.
type NeighborNavigator struct {
	mu          sync.Mutex
	hub         driven.Hub
	submissions driving.SubmissionService
	k           int

	state  domain.NavigatorState
	frames []domain.FrameRecord
	cursor int
	strip  bool
	gen    uint64
}

// NewNeighborNavigator creates a navigator fetching k frames on each side.
func NewNeighborNavigator(hub driven.Hub, submissions driving.SubmissionService, k int) *NeighborNavigator {
	if k < 1 {
		k = domain.DefaultNeighborFrames
	}
	return &NeighborNavigator{
		hub:         hub,
		submissions: submissions,
		k:           k,
	}
}

// Open shows focal alone and returns the generation Load must carry.
func (n *NeighborNavigator) Open(focal domain.FrameRecord) uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.gen++
	n.state = domain.NavigatorLoading
	n.frames = []domain.FrameRecord{focal}
	n.cursor = 0
	n.strip = false
	return n.gen
}

// Load fetches the neighbours of the frame opened at gen. A failure leaves
// the focal frame alone with the strip hidden. Results for a closed or
// superseded open are dropped.
func (n *NeighborNavigator) Load(ctx context.Context, gen uint64) {
	n.mu.Lock()
	if gen != n.gen || n.state != domain.NavigatorLoading {
		n.mu.Unlock()
		return
	}
	focal := n.frames[0]
	n.mu.Unlock()

	var paths *domain.NeighborPaths
	var err error
	if n.hub == nil {
		err = domain.ErrHubUnavailable
	} else {
		paths, err = n.hub.NeighboringFrames(ctx, focal.BaseVideoName(), focal.FrameNumberText(), n.k)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if gen != n.gen || n.state == domain.NavigatorIdle {
		logger.Debug("navigator: dropping neighbours for stale open %d", gen)
		return
	}

	n.state = domain.NavigatorDisplaying
	if err != nil || paths == nil {
		logger.Warn("navigator: neighbours of %s/%s unavailable: %v", focal.VideoName, focal.KeyframeID, err)
		n.frames = []domain.FrameRecord{focal}
		n.cursor = 0
		n.strip = false
		return
	}

	frames := make([]domain.FrameRecord, 0, len(paths.Prev)+1+len(paths.Next))
	for _, p := range paths.Prev {
		frames = append(frames, domain.NeighborFrame(p, focal))
	}
	frames = append(frames, focal)
	for _, p := range paths.Next {
		frames = append(frames, domain.NeighborFrame(p, focal))
	}

	n.frames = frames
	n.cursor = len(paths.Prev)
	n.strip = true
}

// State returns the lifecycle state.
func (n *NeighborNavigator) State() domain.NavigatorState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Frames returns a copy of the frame list.
func (n *NeighborNavigator) Frames() []domain.FrameRecord {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]domain.FrameRecord, len(n.frames))
	copy(out, n.frames)
	return out
}

// Cursor returns the position of the current frame.
func (n *NeighborNavigator) Cursor() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.cursor
}

// Current returns the frame under the cursor.
func (n *NeighborNavigator) Current() (domain.FrameRecord, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state == domain.NavigatorIdle || len(n.frames) == 0 {
		return domain.FrameRecord{}, false
	}
	return n.frames[n.cursor], true
}

// StripVisible reports whether the neighbour strip is shown.
func (n *NeighborNavigator) StripVisible() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.strip
}

// Navigate moves the cursor by delta, wrapping around the list.
func (n *NeighborNavigator) Navigate(delta int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	size := len(n.frames)
	if n.state == domain.NavigatorIdle || size == 0 {
		return
	}
	n.cursor = ((n.cursor+delta)%size + size) % size
}

// Select jumps to strip item i. Out-of-range indexes are ignored.
func (n *NeighborNavigator) Select(i int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state == domain.NavigatorIdle || i < 0 || i >= len(n.frames) {
		return
	}
	n.cursor = i
}

// Close clears the list and returns to idle.
func (n *NeighborNavigator) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.state = domain.NavigatorIdle
	n.frames = nil
	n.cursor = 0
	n.strip = false
}

// CommitToSubmission fills the submission form from the current frame and closes.
func (n *NeighborNavigator) CommitToSubmission(ctx context.Context) (*domain.Submission, error) {
	current, ok := n.Current()
	if !ok {
		return nil, domain.ErrNoResults
	}
	defer n.Close()

	if n.submissions == nil {
		sub := domain.SubmissionFromFrame(current)
		return &sub, nil
	}
	return n.submissions.Fill(ctx, current)
}
