package session

import (
	"context"
	"sync"
	"time"

	"github.com/owlconnect/matching-platform/internal/model"
)

// Registry tracks live sessions by id and reaps finished ones after the
// retention window.
type Registry struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	retention time.Duration
	buffer    int
}

// NewRegistry creates a registry with the given retention window and
// per-session fragment buffer size.
func NewRegistry(retention time.Duration, fragmentBuffer int) *Registry {
	return &Registry{
		sessions:  make(map[string]*Session),
		retention: retention,
		buffer:    fragmentBuffer,
	}
}

// Obtain returns the session for id, creating it with the given mentee if
// absent. Reconnecting with a known id resumes that session.
func (r *Registry) Obtain(id string, mentee *model.MenteeProfile) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		return s
	}
	s := New(id, mentee, r.buffer)
	r.sessions[id] = s
	return s
}

// Get returns the session for id, or ErrSessionNotFound.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return s, nil
}

// Remove drops a session from the registry and closes its stream.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	r.mu.Unlock()
	if ok {
		s.Mux.Close()
	}
}

// Sweep runs the retention reaper until ctx is done.
func (r *Registry) Sweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			r.reap(now)
		}
	}
}

func (r *Registry) reap(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if s.Expired(r.retention, now) {
			s.Mux.Close()
			delete(r.sessions, id)
		}
	}
}
