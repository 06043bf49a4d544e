package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/internhub/internal/model"
)

var _ model.ApplicationStore = (*ApplicationRepository)(nil)

// ApplicationRepository keeps the ledger in append order.
type ApplicationRepository struct {
	mu           sync.RWMutex
	applications []model.Application
}

func NewApplicationRepository() *ApplicationRepository {
	return &ApplicationRepository{}
}

func (r *ApplicationRepository) Create(ctx context.Context, application model.Application) (model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	application = cloneApplication(application)
	r.applications = append(r.applications, application)

	return cloneApplication(application), nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return model.Application{}, model.ErrNotFound
	}

	return cloneApplication(r.applications[idx]), nil
}

func (r *ApplicationRepository) List(ctx context.Context) ([]model.Application, error) {
	return r.filter(func(model.Application) bool { return true }), nil
}

func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.Application, error) {
	return r.filter(func(a model.Application) bool { return a.StudentID == studentID }), nil
}

func (r *ApplicationRepository) ListByInternship(ctx context.Context, internshipID uuid.UUID) ([]model.Application, error) {
	return r.filter(func(a model.Application) bool { return a.InternshipID == internshipID }), nil
}

func (r *ApplicationRepository) ListByStatus(ctx context.Context, statuses ...model.ApplicationStatus) ([]model.Application, error) {
	return r.filter(func(a model.Application) bool { return slices.Contains(statuses, a.Status) }), nil
}

func (r *ApplicationRepository) FindByStudentAndInternship(ctx context.Context, studentID, internshipID uuid.UUID) (model.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.applications {
		if a.StudentID == studentID && a.InternshipID == internshipID {
			return cloneApplication(a), nil
		}
	}

	return model.Application{}, model.ErrNotFound
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, expected model.ApplicationStatus, review model.Review) (model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return model.Application{}, model.ErrNotFound
	}

	current := r.applications[idx]
	if current.Status != expected {
		return model.Application{}, &model.InvalidStateTransitionError{
			ApplicationID: id,
			From:          current.Status,
			To:            review.Decision,
		}
	}

	reviewedAt := review.ReviewedAt
	current.Status = review.Decision
	current.ReviewedAt = &reviewedAt
	current.ReviewedBy = review.ReviewedBy
	current.Notes = review.Notes
	r.applications[idx] = current

	return cloneApplication(current), nil
}

func (r *ApplicationRepository) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(r.applications, func(a model.Application) bool { return a.ID == id })
}

func (r *ApplicationRepository) filter(keep func(model.Application) bool) []model.Application {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Application, 0)
	for _, a := range r.applications {
		if keep(a) {
			out = append(out, cloneApplication(a))
		}
	}

	return out
}

func cloneApplication(in model.Application) model.Application {
	if in.ReviewedAt != nil {
		reviewedAt := *in.ReviewedAt
		in.ReviewedAt = &reviewedAt
	}
	return in
}
