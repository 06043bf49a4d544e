package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/internhub/internal/model"
)

var _ model.InternshipStore = (*InternshipRepository)(nil)

// InternshipRepository keeps the catalog newest first.
type InternshipRepository struct {
	mu          sync.RWMutex
	internships []model.Internship
}

func NewInternshipRepository() *InternshipRepository {
	return &InternshipRepository{}
}

func (r *InternshipRepository) Create(ctx context.Context, internship model.Internship) (model.Internship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	internship = cloneInternship(internship)
	r.internships = slices.Insert(r.internships, 0, internship)

	return cloneInternship(internship), nil
}

func (r *InternshipRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Internship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, internship := range r.internships {
		if internship.ID == id {
			return cloneInternship(internship), nil
		}
	}

	return model.Internship{}, model.ErrNotFound
}

func (r *InternshipRepository) List(ctx context.Context) ([]model.Internship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Internship, 0, len(r.internships))
	for _, internship := range r.internships {
		out = append(out, cloneInternship(internship))
	}

	return out, nil
}

func cloneInternship(in model.Internship) model.Internship {
	in.Requirements = slices.Clone(in.Requirements)
	return in
}
