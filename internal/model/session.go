package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionStore persists issued login sessions.
type SessionStore interface {
	Create(ctx context.Context, session Session) error
	GetByJTI(ctx context.Context, jti string) (Session, error)
	RevokeByJTI(ctx context.Context, jti string) error
}

// Session is the explicit value that identifies the current user.
type Session struct {
	ID  uuid.UUID
	JTI string
	// Token is only populated on the value returned at login; stores keep
	// TokenHash instead.
	Token     string
	User      User
	TokenHash []byte
	IssuedAt  time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// SessionClaims is what a session token carries.
type SessionClaims struct {
	UserID uuid.UUID
	Role   Role
	JTI    string
}
