package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const (
	DefaultIdleTimeout = 30 * time.Minute
	cleanupFactor      = 2
)

// Store keeps sessions in memory and expires them after an idle timeout.
// Every successful Get extends the session's lifetime.
type Store struct {
	sessions    *cache.Cache
	idleTimeout time.Duration
}

func NewStore(idleTimeout time.Duration) *Store {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	return &Store{
		sessions:    cache.New(idleTimeout, cleanupFactor*idleTimeout),
		idleTimeout: idleTimeout,
	}
}

func (s *Store) Create() *Session {
	sess := New(uuid.NewString())
	s.sessions.Set(sess.ID, sess, s.idleTimeout)
	return sess
}

func (s *Store) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	v, ok := s.sessions.Get(id)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*Session)
	if !ok {
		return nil, false
	}
	s.sessions.Set(id, sess, s.idleTimeout)
	return sess, true
}

func (s *Store) Delete(id string) {
	s.sessions.Delete(id)
}

func (s *Store) Len() int {
	return s.sessions.ItemCount()
}
