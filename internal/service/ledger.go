package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/internhub/internal/logger"
	"github.com/dtroode/internhub/internal/metrics"
	"github.com/dtroode/internhub/internal/model"
)

// LedgerConfig holds ledger parameters.
type LedgerConfig struct {
	// ApplyDelay simulates the latency before a new application is visible.
	ApplyDelay time.Duration
}

// Ledger records applications and their review outcomes.
type Ledger struct {
	applicationStore model.ApplicationStore
	internshipStore  model.InternshipStore
	cfg              LedgerConfig
	metrics          *metrics.Collector
	logger           *logger.Logger
	now              func() time.Time

	// writeMu makes the check-then-write sequences of Apply and Review
	// indivisible.
	writeMu sync.Mutex
}

func NewLedger(
	applicationStore model.ApplicationStore,
	internshipStore model.InternshipStore,
	cfg LedgerConfig,
	metrics *metrics.Collector,
	logger *logger.Logger,
) *Ledger {
	return &Ledger{
		applicationStore: applicationStore,
		internshipStore:  internshipStore,
		cfg:              cfg,
		metrics:          metrics,
		logger:           logger,
		now:              time.Now,
	}
}

// Apply records a pending application of student to the internship.
func (s *Ledger) Apply(ctx context.Context, student model.User, internshipID uuid.UUID) (model.Application, error) {
	s.logger.Debug("Ledger service: applying",
		"student_id", student.ID,
		"internship_id", internshipID)

	if err := model.RequireRole(student, model.RoleStudent, "apply"); err != nil {
		s.metrics.IncFailure("apply", "forbidden")
		return model.Application{}, err
	}

	if err := simulateLatency(ctx, s.cfg.ApplyDelay); err != nil {
		return model.Application{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_, err := s.internshipStore.GetByID(ctx, internshipID)
	if errors.Is(err, model.ErrNotFound) {
		s.metrics.IncFailure("apply", "not_found")
		return model.Application{}, model.NewErrInternshipNotFound(internshipID)
	}
	if err != nil {
		return model.Application{}, fmt.Errorf("failed to get internship by id: %w", err)
	}

	existing, err := s.applicationStore.FindByStudentAndInternship(ctx, student.ID, internshipID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Application{}, fmt.Errorf("failed to look up existing application: %w", err)
	}
	if err == nil {
		s.metrics.IncFailure("apply", "duplicate")
		s.logger.Info("Ledger service: duplicate application refused",
			"student_id", student.ID,
			"internship_id", internshipID,
			"application_id", existing.ID)
		return model.Application{}, &model.DuplicateApplicationError{StudentID: student.ID, InternshipID: internshipID}
	}

	application := model.Application{
		ID:           uuid.New(),
		InternshipID: internshipID,
		StudentID:    student.ID,
		StudentName:  student.Name,
		StudentEmail: student.Email,
		Status:       model.StatusPending,
		AppliedAt:    model.Day(s.now()),
	}

	application, err = s.applicationStore.Create(ctx, application)
	if err != nil {
		return model.Application{}, fmt.Errorf("failed to create application: %w", err)
	}

	s.metrics.IncApplicationSubmitted()
	s.logger.Info("Ledger service: application submitted",
		"application_id", application.ID,
		"student_id", student.ID,
		"internship_id", internshipID)

	return application, nil
}

// Review moves a pending application to approved or rejected.
func (s *Ledger) Review(ctx context.Context, mentor model.User, params model.ReviewParams) (model.Application, error) {
	s.logger.Debug("Ledger service: reviewing",
		"application_id", params.ApplicationID,
		"decision", params.Decision)

	if err := model.RequireRole(mentor, model.RoleMentor, "review"); err != nil {
		s.metrics.IncFailure("review", "forbidden")
		return model.Application{}, err
	}

	if !params.Decision.IsTerminal() {
		s.metrics.IncFailure("review", "validation")
		return model.Application{}, model.NewValidationError("decision", "must be approved or rejected")
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current, err := s.applicationStore.GetByID(ctx, params.ApplicationID)
	if errors.Is(err, model.ErrNotFound) {
		s.metrics.IncFailure("review", "not_found")
		return model.Application{}, model.NewErrApplicationNotFound(params.ApplicationID)
	}
	if err != nil {
		return model.Application{}, fmt.Errorf("failed to get application by id: %w", err)
	}

	if !current.Status.CanTransitionTo(params.Decision) {
		s.metrics.IncFailure("review", "invalid_state")
		return model.Application{}, &model.InvalidStateTransitionError{
			ApplicationID: current.ID,
			From:          current.Status,
			To:            params.Decision,
		}
	}

	updated, err := s.applicationStore.UpdateStatus(ctx, current.ID, model.StatusPending, model.Review{
		Decision:   params.Decision,
		ReviewedBy: mentor.Name,
		Notes:      params.Notes,
		ReviewedAt: model.Day(s.now()),
	})
	if err != nil {
		if errors.Is(err, model.ErrInvalidStateTransition) {
			s.metrics.IncFailure("review", "invalid_state")
			return model.Application{}, err
		}
		return model.Application{}, fmt.Errorf("failed to update application status: %w", err)
	}

	s.metrics.IncApplicationReviewed(string(params.Decision))
	s.logger.Info("Ledger service: application reviewed",
		"application_id", updated.ID,
		"decision", updated.Status,
		"reviewed_by", updated.ReviewedBy)

	return updated, nil
}

func (s *Ledger) Get(ctx context.Context, id uuid.UUID) (model.Application, error) {
	application, err := s.applicationStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Application{}, model.NewErrApplicationNotFound(id)
	}
	if err != nil {
		return model.Application{}, fmt.Errorf("failed to get application by id: %w", err)
	}

	return application, nil
}

func (s *Ledger) ListAll(ctx context.Context) ([]model.Application, error) {
	applications, err := s.applicationStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	return applications, nil
}

func (s *Ledger) ListForStudent(ctx context.Context, studentID uuid.UUID) ([]model.Application, error) {
	applications, err := s.applicationStore.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications by student: %w", err)
	}

	return applications, nil
}

func (s *Ledger) ListForInternship(ctx context.Context, internshipID uuid.UUID) ([]model.Application, error) {
	applications, err := s.applicationStore.ListByInternship(ctx, internshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications by internship: %w", err)
	}

	return applications, nil
}

func (s *Ledger) ListPending(ctx context.Context) ([]model.Application, error) {
	return s.listByStatus(ctx, model.StatusPending)
}

func (s *Ledger) ListReviewed(ctx context.Context) ([]model.Application, error) {
	return s.listByStatus(ctx, model.StatusApproved, model.StatusRejected)
}

func (s *Ledger) listByStatus(ctx context.Context, statuses ...model.ApplicationStatus) ([]model.Application, error) {
	applications, err := s.applicationStore.ListByStatus(ctx, statuses...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications by status %v: %w", statuses, err)
	}

	return applications, nil
}
