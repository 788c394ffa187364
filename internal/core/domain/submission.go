package domain

import "math"

// SubmissionCorrect is the verdict the evaluation server returns for a hit.
const SubmissionCorrect = "CORRECT"

// Submission is a frame handed to the DRES evaluation server.
type Submission struct {
	// SessionID and EvalID identify the evaluation run.
	SessionID string
	EvalID    string

	// MediaItem is the video name.
	MediaItem string

	// StartMS and EndMS bound the submitted moment in milliseconds.
	StartMS int64
	EndMS   int64
}

// SubmissionFromFrame converts a frame into a single-instant submission:
// ms = round(frameNumber / fps * 1000), with fps defaulting to 1.
func SubmissionFromFrame(rec FrameRecord) Submission {
	ms := FrameToMillis(rec.FrameNumber(), rec.EffectiveFPS())
	return Submission{
		MediaItem: rec.VideoName,
		StartMS:   ms,
		EndMS:     ms,
	}
}

// FrameToMillis converts a frame number to milliseconds at the given rate.
func FrameToMillis(frame int, fps float64) int64 {
	if fps <= 0 {
		fps = 1
	}
	return int64(math.Round(float64(frame) / fps * 1000))
}

// Ready reports whether every field the server requires is filled.
func (s Submission) Ready() bool {
	return s.SessionID != "" && s.EvalID != "" && s.MediaItem != "" && s.StartMS >= 0 && s.EndMS >= s.StartMS
}

// DRESSession identifies an evaluation session.
type DRESSession struct {
	SessionID string `json:"session_id"`
	EvalID    string `json:"eval_id"`
}

// SubmissionResult is the evaluation server's verdict.
type SubmissionResult struct {
	Description string `json:"description"`
	Verdict     string `json:"submission"`
}

// Correct reports whether the submission was judged correct.
func (r SubmissionResult) Correct() bool {
	return r.Verdict == SubmissionCorrect
}
