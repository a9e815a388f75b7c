// Package session owns per-connection negotiation sessions: the mentee
// reference, the candidate set, per-candidate negotiation state and the
// outgoing fragment stream.
package session

import (
	"sync"
	"time"

	"github.com/owlconnect/matching-platform/internal/model"
	"github.com/owlconnect/matching-platform/internal/stream"
)

// Session is one client-initiated negotiation run covering one mentee
// against a candidate set of mentors. The session id is client-generated
// and opaque.
type Session struct {
	ID     string
	Mentee *model.MenteeProfile
	Mux    *stream.Multiplexer

	mu         sync.RWMutex
	order      []string
	states     map[string]*model.NegotiationState
	started    bool
	finished   bool
	finishedAt time.Time
}

// New creates a session with a fragment buffer of the given size.
func New(id string, mentee *model.MenteeProfile, fragmentBuffer int) *Session {
	return &Session{
		ID:     id,
		Mentee: mentee,
		Mux:    stream.NewMultiplexer(fragmentBuffer),
		states: make(map[string]*model.NegotiationState),
	}
}

// Begin marks the session started. Returns false if it already ran, which
// makes the start command idempotent.
func (s *Session) Begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return false
	}
	s.started = true
	return true
}

// SetCandidates initializes one pending NegotiationState per candidate,
// in selection order.
func (s *Session) SetCandidates(mentors []model.MentorProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = s.order[:0]
	for _, m := range mentors {
		s.order = append(s.order, m.ID)
		s.states[m.ID] = &model.NegotiationState{
			MentorID:   m.ID,
			MentorName: m.Name,
			Status:     model.StatusPending,
		}
	}
}

// Update applies fn to one candidate's state under the session lock. The
// negotiation task owning the candidate is the only writer.
func (s *Session) Update(mentorID string, fn func(*model.NegotiationState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.states[mentorID]; ok {
		fn(st)
	}
}

// States returns a snapshot of all candidate states in selection order.
func (s *Session) States() []model.NegotiationState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.NegotiationState, 0, len(s.order))
	for _, id := range s.order {
		st := s.states[id]
		copied := *st
		copied.Dialogue = append([]model.Utterance(nil), st.Dialogue...)
		out = append(out, copied)
	}
	return out
}

// Complete reports whether every candidate reached a terminal status.
func (s *Session) Complete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.order) == 0 {
		return s.finished
	}
	for _, st := range s.states {
		if !st.Status.Terminal() {
			return false
		}
	}
	return true
}

// Finished reports whether the session ran to completion.
func (s *Session) Finished() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.finished
}

// Finish records session completion for retention accounting.
func (s *Session) Finish() {
	s.mu.Lock()
	s.finished = true
	s.finishedAt = time.Now()
	s.mu.Unlock()
}

// Expired reports whether a finished session has outlived the retention
// window.
func (s *Session) Expired(retention time.Duration, now time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.finished && now.Sub(s.finishedAt) > retention
}
