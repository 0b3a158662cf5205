package session

import (
	"sync"

	"github.com/Egor213/RBACPanel/internal/domain"
)

// Session owns the cached authentication of one browser session. All four cache fields
// are read and replaced together under the mutex.
type Session struct {
	ID string

	mu    sync.Mutex
	state domain.SessionState
}

func New(id string) *Session {
	return &Session{ID: id}
}

// State returns a copy of the current state.
func (s *Session) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Set(state domain.SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// Update applies fn to a copy and stores the result. Returning false discards the change,
// which lets callers drop a stale remote result when the token changed meanwhile.
func (s *Session) Update(fn func(state *domain.SessionState) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	if !fn(&next) {
		return false
	}
	s.state = next
	return true
}

func (s *Session) Clear() {
	s.Set(domain.SessionState{})
}
