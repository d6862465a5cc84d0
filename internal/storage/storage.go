package storage

import (
	"sync"
	"time"
)

// SessionStore keeps live sessions in memory. Entries idle for longer than
// the TTL are dropped on the next Sweep.
type SessionStore[T any] struct {
	sessions map[string]*entry[T]
	ttl      time.Duration
	now      func() time.Time
	mu       sync.RWMutex
}

type entry[T any] struct {
	value    T
	lastSeen time.Time
}

func NewSessionStore[T any](ttl time.Duration) *SessionStore[T] {
	return &SessionStore[T]{
		sessions: make(map[string]*entry[T]),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the session and refreshes its idle timer
func (s *SessionStore[T]) Get(sessionID string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, exists := s.sessions[sessionID]
	if !exists {
		var zero T
		return zero, false
	}
	e.lastSeen = s.now()
	return e.value, true
}

func (s *SessionStore[T]) Set(sessionID string, session T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = &entry[T]{value: session, lastSeen: s.now()}
}

func (s *SessionStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *SessionStore[T]) Delete(sessionID string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, exists := s.sessions[sessionID]
	if !exists {
		var zero T
		return zero, false
	}
	delete(s.sessions, sessionID)
	return e.value, true
}

// Sweep removes sessions idle past the TTL and returns them so the caller
// can close them. A zero TTL disables expiry.
func (s *SessionStore[T]) Sweep() []T {
	if s.ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	var expired []T
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			expired = append(expired, e.value)
			delete(s.sessions, id)
		}
	}
	return expired
}
