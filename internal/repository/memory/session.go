package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dtroode/internhub/internal/model"
)

var _ model.SessionStore = (*SessionRepository)(nil)

// SessionRepository keeps issued sessions keyed by token id.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]model.Session
	now      func() time.Time
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]model.Session),
		now:      time.Now,
	}
}

func (r *SessionRepository) Create(ctx context.Context, session model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Tokens never live in the store, only their hash.
	session.Token = ""
	session.TokenHash = slices.Clone(session.TokenHash)
	r.sessions[session.JTI] = session

	return nil
}

func (r *SessionRepository) GetByJTI(ctx context.Context, jti string) (model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[jti]
	if !ok {
		return model.Session{}, model.ErrNotFound
	}

	return session, nil
}

func (r *SessionRepository) RevokeByJTI(ctx context.Context, jti string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[jti]
	if !ok {
		return model.ErrNotFound
	}
	if session.RevokedAt != nil {
		return nil
	}

	now := r.now()
	session.RevokedAt = &now
	r.sessions[jti] = session

	return nil
}
