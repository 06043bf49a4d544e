package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/internhub/internal/model"
)

// Projections derives read-only views from the catalog and ledger. Every
// call recomputes from the stores.
type Projections struct {
	internshipStore  model.InternshipStore
	applicationStore model.ApplicationStore
}

func NewProjections(internshipStore model.InternshipStore, applicationStore model.ApplicationStore) *Projections {
	return &Projections{
		internshipStore:  internshipStore,
		applicationStore: applicationStore,
	}
}

// CountByStatus tallies applications in a single pass.
func CountByStatus(applications []model.Application) model.StatusCounts {
	var c model.StatusCounts
	for _, a := range applications {
		c.Total++
		switch a.Status {
		case model.StatusPending:
			c.Pending++
		case model.StatusApproved:
			c.Approved++
		case model.StatusRejected:
			c.Rejected++
		}
	}
	return c
}

// Counters returns whole-ledger status counts.
func (p *Projections) Counters(ctx context.Context) (model.StatusCounts, error) {
	applications, err := p.applicationStore.List(ctx)
	if err != nil {
		return model.StatusCounts{}, fmt.Errorf("failed to list applications: %w", err)
	}

	return CountByStatus(applications), nil
}

// InternshipCounts returns status counts for one internship.
func (p *Projections) InternshipCounts(ctx context.Context, internshipID uuid.UUID) (model.StatusCounts, error) {
	applications, err := p.applicationStore.ListByInternship(ctx, internshipID)
	if err != nil {
		return model.StatusCounts{}, fmt.Errorf("failed to list applications by internship: %w", err)
	}

	return CountByStatus(applications), nil
}

// ApplicationStatus reports whether the student applied to the internship
// and, if so, the current status.
func (p *Projections) ApplicationStatus(ctx context.Context, studentID, internshipID uuid.UUID) (model.ApplicationStatus, bool, error) {
	application, err := p.applicationStore.FindByStudentAndInternship(ctx, studentID, internshipID)
	if errors.Is(err, model.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to look up application: %w", err)
	}

	return application.Status, true, nil
}

// HasApplied reports whether the student applied to the internship.
func (p *Projections) HasApplied(ctx context.Context, studentID, internshipID uuid.UUID) (bool, error) {
	_, applied, err := p.ApplicationStatus(ctx, studentID, internshipID)
	return applied, err
}

func (p *Projections) StudentDashboard(ctx context.Context, student model.User) (model.StudentDashboard, error) {
	internships, err := p.internshipStore.List(ctx)
	if err != nil {
		return model.StudentDashboard{}, fmt.Errorf("failed to list internships: %w", err)
	}

	applications, err := p.applicationStore.ListByStudent(ctx, student.ID)
	if err != nil {
		return model.StudentDashboard{}, fmt.Errorf("failed to list applications by student: %w", err)
	}

	statusByInternship := make(map[uuid.UUID]model.ApplicationStatus, len(applications))
	for _, a := range applications {
		if _, seen := statusByInternship[a.InternshipID]; !seen {
			statusByInternship[a.InternshipID] = a.Status
		}
	}

	listings := make([]model.ListingView, 0, len(internships))
	for _, i := range internships {
		status, applied := statusByInternship[i.ID]
		listings = append(listings, model.ListingView{Internship: i, Applied: applied, Status: status})
	}

	return model.StudentDashboard{
		Student:              student,
		AvailableInternships: len(internships),
		Listings:             listings,
		Applications:         joinInternships(applications, internships),
		Counts:               CountByStatus(applications),
	}, nil
}

func (p *Projections) MentorDashboard(ctx context.Context, mentor model.User) (model.MentorDashboard, error) {
	internships, err := p.internshipStore.List(ctx)
	if err != nil {
		return model.MentorDashboard{}, fmt.Errorf("failed to list internships: %w", err)
	}

	applications, err := p.applicationStore.List(ctx)
	if err != nil {
		return model.MentorDashboard{}, fmt.Errorf("failed to list applications: %w", err)
	}

	var pending, reviewed []model.Application
	for _, a := range applications {
		if a.Status == model.StatusPending {
			pending = append(pending, a)
		} else {
			reviewed = append(reviewed, a)
		}
	}

	return model.MentorDashboard{
		Mentor:   mentor,
		Pending:  joinInternships(pending, internships),
		Reviewed: joinInternships(reviewed, internships),
		Counts:   CountByStatus(applications),
	}, nil
}

func (p *Projections) PlacementDashboard(ctx context.Context, officer model.User) (model.PlacementDashboard, error) {
	internships, err := p.internshipStore.List(ctx)
	if err != nil {
		return model.PlacementDashboard{}, fmt.Errorf("failed to list internships: %w", err)
	}

	applications, err := p.applicationStore.List(ctx)
	if err != nil {
		return model.PlacementDashboard{}, fmt.Errorf("failed to list applications: %w", err)
	}

	byInternship := make(map[uuid.UUID][]model.Application)
	for _, a := range applications {
		byInternship[a.InternshipID] = append(byInternship[a.InternshipID], a)
	}

	summaries := make([]model.InternshipSummary, 0, len(internships))
	for _, i := range internships {
		summaries = append(summaries, model.InternshipSummary{
			Internship: i,
			Counts:     CountByStatus(byInternship[i.ID]),
		})
	}

	return model.PlacementDashboard{
		Officer:          officer,
		TotalInternships: len(internships),
		Counts:           CountByStatus(applications),
		Internships:      summaries,
		Applications:     joinInternships(applications, internships),
	}, nil
}

func joinInternships(applications []model.Application, internships []model.Internship) []model.ApplicationView {
	byID := make(map[uuid.UUID]model.Internship, len(internships))
	for _, i := range internships {
		byID[i.ID] = i
	}

	views := make([]model.ApplicationView, 0, len(applications))
	for _, a := range applications {
		view := model.ApplicationView{
			Application:     a,
			InternshipTitle: model.UnknownInternship,
			Company:         model.UnknownInternship,
		}
		if i, ok := byID[a.InternshipID]; ok {
			view.InternshipTitle = i.Title
			view.Company = i.Company
			view.InternshipFound = true
		}
		views = append(views, view)
	}

	return views
}
