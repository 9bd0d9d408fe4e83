package models

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrFlowBusy is returned when a flow is started while the same flow is
// still running for the session.
var ErrFlowBusy = errors.New("request already in progress")

// Session is the per-visitor state behind the form. It is created on the
// first request, lives in memory only, and is destroyed on reset or after
// it has been idle for the configured TTL.
//
// Each flow (match, notify) has its own state and reentrancy guard; the
// two flows are independent and may run at the same time.
type Session struct {
	ID        string
	CreatedAt time.Time

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	lastSeen    time.Time
	description string
	resume      *ResumeFile
	resumeError string
	match       FlowState[MatchResult]
	lastResult  *MatchResult
	notify      FlowState[NotifyOutcome]
}

// SessionSnapshot is a consistent copy of a session for rendering.
type SessionSnapshot struct {
	ID          string                   `json:"id"`
	Description string                   `json:"job_description"`
	Resume      *ResumeFile              `json:"resume,omitempty"`
	ResumeError string                   `json:"resume_error,omitempty"`
	Match       FlowState[MatchResult]   `json:"match"`
	LastResult  *MatchResult             `json:"last_result,omitempty"`
	Notify      FlowState[NotifyOutcome] `json:"notify"`
}

func NewSession(id string, now time.Time) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		ID:        id,
		CreatedAt: now,
		ctx:       ctx,
		cancel:    cancel,
		lastSeen:  now,
		match:     Idle[MatchResult](),
		notify:    Idle[NotifyOutcome](),
	}
}

// Context is cancelled when the session ends. Requests issued on behalf of
// the session are bound to it.
func (s *Session) Context() context.Context {
	return s.ctx
}

func (s *Session) Ended() bool {
	return s.ctx.Err() != nil
}

// End cancels in-flight requests and detaches the selected resume so the
// caller can remove its stored bytes.
func (s *Session) End() *ResumeFile {
	s.cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	resume := s.resume
	s.resume = nil
	return resume
}

func (s *Session) Touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) Resume() *ResumeFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyResume(s.resume)
}

// SelectResume fills the resume slot and returns the file it replaced.
func (s *Session) SelectResume(resume *ResumeFile) *ResumeFile {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.resume
	s.resume = resume
	s.resumeError = ""
	return previous
}

// RejectResume empties the resume slot and records why the last selection
// was refused. It returns the file that was in the slot, if any.
func (s *Session) RejectResume(reason string) *ResumeFile {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.resume
	s.resume = nil
	s.resumeError = reason
	return previous
}

func (s *Session) RemoveResume() *ResumeFile {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.resume
	s.resume = nil
	s.resumeError = ""
	return previous
}

// BeginMatch moves the match flow to running and clears the last result.
// check runs under the session lock against the current resume; its error
// becomes the failure reason and the last result is kept.
// A running match flow yields ErrFlowBusy and leaves the state untouched.
func (s *Session) BeginMatch(description string, check func(description string, resume *ResumeFile) error) (*ResumeFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.match.IsRunning() {
		return nil, ErrFlowBusy
	}

	s.description = description
	if err := check(description, s.resume); err != nil {
		s.match = Failed[MatchResult](err.Error())
		return nil, err
	}

	s.match = Running[MatchResult]()
	s.lastResult = nil
	return copyResume(s.resume), nil
}

// FinishMatch stores the outcome of a match flow. Outcomes arriving after
// the session ended are dropped and false is returned.
func (s *Session) FinishMatch(state FlowState[MatchResult]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Ended() {
		return false
	}
	s.match = state
	switch {
	case state.Status == FlowSucceeded && state.Data != nil:
		result := *state.Data
		s.lastResult = &result
	case state.Status == FlowFailed:
		s.lastResult = nil
	}
	return true
}

// BeginNotify moves the notify flow to running and returns the resume and
// the last successful match result as of this moment. The result may be
// nil and need not belong to the same resume.
func (s *Session) BeginNotify(check func(resume *ResumeFile) error) (*ResumeFile, *MatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.notify.IsRunning() {
		return nil, nil, ErrFlowBusy
	}

	if err := check(s.resume); err != nil {
		s.notify = Failed[NotifyOutcome](err.Error())
		return nil, nil, err
	}

	last := copyResult(s.lastResult)

	s.notify = Running[NotifyOutcome]()
	return copyResume(s.resume), last, nil
}

func (s *Session) FinishNotify(state FlowState[NotifyOutcome]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Ended() {
		return false
	}
	s.notify = state
	return true
}

func (s *Session) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return SessionSnapshot{
		ID:          s.ID,
		Description: s.description,
		Resume:      copyResume(s.resume),
		ResumeError: s.resumeError,
		Match:       s.match,
		LastResult:  copyResult(s.lastResult),
		Notify:      s.notify,
	}
}

func copyResume(r *ResumeFile) *ResumeFile {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

func copyResult(r *MatchResult) *MatchResult {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}
