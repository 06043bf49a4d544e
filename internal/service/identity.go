package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/internhub/internal/logger"
	"github.com/dtroode/internhub/internal/metrics"
	"github.com/dtroode/internhub/internal/model"
)

// IdentityConfig holds session parameters.
type IdentityConfig struct {
	SessionTTL time.Duration
	// LoginDelay simulates the latency of a remote login.
	LoginDelay time.Duration
}

// Identity resolves credentials to users and owns issued sessions.
type Identity struct {
	verifier model.CredentialVerifier
	tokens   model.TokenManager
	sessions model.SessionStore
	cfg      IdentityConfig
	metrics  *metrics.Collector
	logger   *logger.Logger
	now      func() time.Time
}

func NewIdentity(
	verifier model.CredentialVerifier,
	tokens model.TokenManager,
	sessions model.SessionStore,
	cfg IdentityConfig,
	metrics *metrics.Collector,
	logger *logger.Logger,
) *Identity {
	return &Identity{
		verifier: verifier,
		tokens:   tokens,
		sessions: sessions,
		cfg:      cfg,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// Authenticate verifies the credentials and issues a new session.
func (s *Identity) Authenticate(ctx context.Context, creds model.Credentials) (model.Session, error) {
	s.logger.Debug("Identity service: authenticating",
		"email", creds.Email,
		"role", creds.Role)

	if err := creds.Validate(); err != nil {
		s.metrics.IncFailure("login", "validation")
		return model.Session{}, err
	}

	if err := simulateLatency(ctx, s.cfg.LoginDelay); err != nil {
		return model.Session{}, err
	}

	user, err := s.verifier.Verify(ctx, creds)
	if err != nil {
		s.metrics.IncFailure("login", "credentials")
		s.logger.Info("Identity service: login refused",
			"email", creds.Email,
			"role", creds.Role,
			"error", err.Error())
		return model.Session{}, err
	}

	token, jti, err := s.tokens.GenerateSessionToken(user, s.cfg.SessionTTL)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to issue session token: %w", err)
	}

	now := s.now()
	session := model.Session{
		ID:        uuid.New(),
		JTI:       jti,
		Token:     token,
		User:      user,
		TokenHash: hashToken(token),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.cfg.SessionTTL),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return model.Session{}, fmt.Errorf("failed to persist session: %w", err)
	}

	s.metrics.IncLogin(string(user.Role))
	s.logger.Info("Identity service: login succeeded",
		"user_id", user.ID,
		"role", user.Role,
		"session_id", session.ID)

	return session, nil
}

// Resolve returns the live session identified by token.
func (s *Identity) Resolve(ctx context.Context, token string) (model.Session, error) {
	if token == "" {
		return model.Session{}, model.ErrUnauthenticated
	}

	claims, err := s.tokens.ParseSessionToken(token)
	if err != nil {
		return model.Session{}, err
	}

	session, err := s.sessions.GetByJTI(ctx, claims.JTI)
	if errors.Is(err, model.ErrNotFound) {
		return model.Session{}, model.ErrUnauthenticated
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get session: %w", err)
	}

	if err := validateSession(session, hashToken(token), s.now()); err != nil {
		return model.Session{}, err
	}

	session.Token = token
	return session, nil
}

// Logout revokes the session identified by token. Revoking an already
// revoked session is not an error.
func (s *Identity) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.ParseSessionToken(token)
	if errors.Is(err, model.ErrSessionExpired) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.sessions.RevokeByJTI(ctx, claims.JTI); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	s.logger.Info("Identity service: logged out",
		"user_id", claims.UserID)

	return nil
}

func hashToken(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}

func validateSession(session model.Session, presentedHash []byte, now time.Time) error {
	if session.RevokedAt != nil {
		return model.ErrSessionRevoked
	}
	if now.After(session.ExpiresAt) {
		return model.ErrSessionExpired
	}
	if subtle.ConstantTimeCompare(session.TokenHash, presentedHash) != 1 {
		return model.ErrSessionMismatch
	}
	return nil
}
