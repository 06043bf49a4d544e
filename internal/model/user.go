package model

import (
	"context"

	"github.com/google/uuid"
)

// CredentialVerifier resolves login credentials to a user profile.
type CredentialVerifier interface {
	Verify(ctx context.Context, creds Credentials) (User, error)
}

// User represents an authenticated actor.
type User struct {
	ID         uuid.UUID
	Email      string
	Name       string
	Role       Role
	Department string
	// Year is the study year for students, zero otherwise.
	Year int
}

// Credentials is what the login surface collects.
type Credentials struct {
	Email    string
	Password string
	Role     Role
}

// Validate checks that the credentials are complete.
func (c Credentials) Validate() error {
	if c.Email == "" {
		return NewValidationError("email", "is required")
	}
	if c.Password == "" {
		return NewValidationError("password", "is required")
	}
	if !c.Role.Valid() {
		return NewValidationError("role", "unknown role "+string(c.Role))
	}
	return nil
}
