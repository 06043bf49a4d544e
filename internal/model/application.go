package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ApplicationStore defines storage operations for the application ledger.
type ApplicationStore interface {
	// Create appends the application to the ledger.
	Create(ctx context.Context, application Application) (Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	List(ctx context.Context) ([]Application, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]Application, error)
	ListByInternship(ctx context.Context, internshipID uuid.UUID) ([]Application, error)
	ListByStatus(ctx context.Context, statuses ...ApplicationStatus) ([]Application, error)
	FindByStudentAndInternship(ctx context.Context, studentID, internshipID uuid.UUID) (Application, error)
	// UpdateStatus applies the review only if the application is still in
	// the expected status.
	UpdateStatus(ctx context.Context, id uuid.UUID, expected ApplicationStatus, review Review) (Application, error)
}

// ApplicationStatus is the lifecycle state of an application.
type ApplicationStatus string

const (
	// StatusPending is the initial state of every application.
	StatusPending ApplicationStatus = "pending"
	// StatusApproved is a terminal state set by a mentor.
	StatusApproved ApplicationStatus = "approved"
	// StatusRejected is a terminal state set by a mentor.
	StatusRejected ApplicationStatus = "rejected"
)

// Valid reports whether s is a known status.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransitionTo reports whether s may move to next.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	return s == StatusPending && next.IsTerminal()
}

func (s ApplicationStatus) String() string {
	return string(s)
}

// ParseDecision converts a review decision into a terminal status.
func ParseDecision(s string) (ApplicationStatus, error) {
	status := ApplicationStatus(s)
	if !status.IsTerminal() {
		return "", NewValidationError("decision", "must be approved or rejected")
	}
	return status, nil
}

// Application represents a student's application to an internship.
type Application struct {
	ID           uuid.UUID
	InternshipID uuid.UUID
	StudentID    uuid.UUID
	StudentName  string
	StudentEmail string
	Status       ApplicationStatus
	AppliedAt    time.Time
	ReviewedAt   *time.Time
	ReviewedBy   string
	Notes        string
}

// Review is the outcome a mentor stamps on a pending application.
type Review struct {
	Decision   ApplicationStatus
	ReviewedBy string
	Notes      string
	ReviewedAt time.Time
}

// ReviewParams contains parameters to review an application.
type ReviewParams struct {
	ApplicationID uuid.UUID
	Decision      ApplicationStatus
	Notes         string
}

// StatusCounts aggregates applications by status.
type StatusCounts struct {
	Total    int
	Pending  int
	Approved int
	Rejected int
}
