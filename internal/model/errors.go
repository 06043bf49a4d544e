package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrValidation             = errors.New("validation failed")
	ErrNotFound               = errors.New("not found")
	ErrDuplicateApplication   = errors.New("application already exists")
	ErrInvalidStateTransition = errors.New("invalid application state transition")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not logged in")
	ErrForbidden          = errors.New("operation not permitted for role")

	ErrSessionRevoked  = errors.New("session revoked")
	ErrSessionExpired  = errors.New("session expired")
	ErrSessionMismatch = errors.New("session token mismatch")
)

// ValidationError reports a malformed or missing input field.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError creates a ValidationError for the field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError reports a reference to a nonexistent entity.
type NotFoundError struct {
	Kind string
	ID   string
}

// NewErrInternshipNotFound creates a NotFoundError for an internship id.
func NewErrInternshipNotFound(id uuid.UUID) *NotFoundError {
	return &NotFoundError{Kind: "internship", ID: id.String()}
}

// NewErrApplicationNotFound creates a NotFoundError for an application id.
func NewErrApplicationNotFound(id uuid.UUID) *NotFoundError {
	return &NotFoundError{Kind: "application", ID: id.String()}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// DuplicateApplicationError is returned when a student re-applies.
type DuplicateApplicationError struct {
	StudentID    uuid.UUID
	InternshipID uuid.UUID
}

func (e *DuplicateApplicationError) Error() string {
	return fmt.Sprintf("student %s already applied to internship %s", e.StudentID, e.InternshipID)
}

func (e *DuplicateApplicationError) Is(target error) bool {
	return target == ErrDuplicateApplication
}

// InvalidStateTransitionError is returned when a review targets an
// application that is no longer pending.
type InvalidStateTransitionError struct {
	ApplicationID uuid.UUID
	From          ApplicationStatus
	To            ApplicationStatus
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("application %s cannot move from %s to %s", e.ApplicationID, e.From, e.To)
}

func (e *InvalidStateTransitionError) Is(target error) bool {
	return target == ErrInvalidStateTransition
}

// AuthError wraps a failed authentication attempt.
type AuthError struct {
	Email string
	Err   error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed for %s: %v", e.Email, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// ForbiddenError reports an operation invoked by the wrong role.
type ForbiddenError struct {
	Operation string
	Role      Role
}

// RequireRole returns a ForbiddenError unless user has the role.
func RequireRole(user User, role Role, operation string) error {
	if user.Role != role {
		return &ForbiddenError{Operation: operation, Role: user.Role}
	}
	return nil
}

func (e *ForbiddenError) Error() string {
	if e.Role == "" {
		return fmt.Sprintf("%s: not permitted", e.Operation)
	}
	return fmt.Sprintf("%s: not permitted for %s", e.Operation, e.Role)
}

func (e *ForbiddenError) Is(target error) bool {
	return target == ErrForbidden
}
