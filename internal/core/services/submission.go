package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/framescope/internal/core/domain"
	"github.com/custodia-labs/framescope/internal/core/ports/driven"
	"github.com/custodia-labs/framescope/internal/core/ports/driving"
	"github.com/custodia-labs/framescope/internal/logger"
)

// Ensure SubmissionService implements the interface.
var _ driving.SubmissionService = (*SubmissionService)(nil)

// SubmissionService fills and sends DRES submissions.
type SubmissionService struct {
	mu      sync.Mutex
	hub     driven.Hub
	session *domain.DRESSession
	pending *domain.Submission
}

// NewSubmissionService creates a new submission service.
func NewSubmissionService(hub driven.Hub) *SubmissionService {
	return &SubmissionService{hub: hub}
}

// Fill prepares a submission for frame. Session ids are fetched on first
// use; a failed fetch is logged and leaves them empty.
func (s *SubmissionService) Fill(ctx context.Context, frame domain.FrameRecord) (*domain.Submission, error) {
	sub := domain.SubmissionFromFrame(frame)

	session, err := s.cachedSession(ctx)
	if err != nil {
		logger.Warn("submission: fetching session ids: %v", err)
	} else {
		sub.SessionID = session.SessionID
		sub.EvalID = session.EvalID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = &sub
	logger.Debug("submission: %s at %dms", sub.MediaItem, sub.StartMS)
	out := sub
	return &out, nil
}

// Pending returns the last filled submission.
func (s *SubmissionService) Pending() (*domain.Submission, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return nil, false
	}
	out := *s.pending
	return &out, true
}

// SessionIDs fetches the active session and evaluation ids, replacing any cached ones.
func (s *SubmissionService) SessionIDs(ctx context.Context) (*domain.DRESSession, error) {
	if s.hub == nil {
		return nil, domain.ErrHubUnavailable
	}
	session, err := s.hub.SessionAndEvalID(ctx)
	if err != nil {
		return nil, fmt.Errorf("get session ids: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
	out := *session
	return &out, nil
}

// Submit sends sub for judgement. Every field must be filled.
func (s *SubmissionService) Submit(ctx context.Context, sub domain.Submission) (*domain.SubmissionResult, error) {
	if !sub.Ready() {
		return nil, fmt.Errorf("%w: please fill all fields", domain.ErrInvalidInput)
	}
	if s.hub == nil {
		return nil, domain.ErrHubUnavailable
	}

	result, err := s.hub.SubmitDRES(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	logger.Info("submission: %s %d-%d -> %s", sub.MediaItem, sub.StartMS, sub.EndMS, result.Verdict)
	return result, nil
}

func (s *SubmissionService) cachedSession(ctx context.Context) (*domain.DRESSession, error) {
	s.mu.Lock()
	session := s.session
	s.mu.Unlock()
	if session != nil {
		return session, nil
	}
	return s.SessionIDs(ctx)
}
