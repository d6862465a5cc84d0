package editor

import (
	"context"
	"log/slog"
	"time"

	"github.com/gibbs-towing/fleetsite/internal/storage"
	"github.com/google/uuid"
)

// Manager tracks open editor sessions by ID.
type Manager struct {
	backend  *Backend
	sessions *storage.SessionStore[*Session]
}

func NewManager(backend *Backend, ttl time.Duration) *Manager {
	return &Manager{
		backend:  backend,
		sessions: storage.NewSessionStore[*Session](ttl),
	}
}

// Open starts a fresh, unauthenticated session.
func (m *Manager) Open(ctx context.Context) *Session {
	session := NewSession(uuid.NewString(), m.backend)
	session.Open(ctx)
	m.sessions.Set(session.ID, session)
	return session
}

func (m *Manager) Get(id string) (*Session, error) {
	session, ok := m.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Close discards the session. Reopening the panel needs a new login.
func (m *Manager) Close(id string) error {
	session, ok := m.sessions.Delete(id)
	if !ok {
		return ErrSessionNotFound
	}
	session.Close()
	return nil
}

// Run expires idle sessions every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, session := range m.sessions.Sweep() {
				session.Close()
				slog.Info("Editor session expired", "session_id", session.ID)
			}
		}
	}
}
