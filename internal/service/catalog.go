package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/internhub/internal/logger"
	"github.com/dtroode/internhub/internal/metrics"
	"github.com/dtroode/internhub/internal/model"
)

// Catalog manages posted internship listings.
type Catalog struct {
	internshipStore model.InternshipStore
	metrics         *metrics.Collector
	logger          *logger.Logger
	now             func() time.Time
}

func NewCatalog(
	internshipStore model.InternshipStore,
	metrics *metrics.Collector,
	logger *logger.Logger,
) *Catalog {
	return &Catalog{
		internshipStore: internshipStore,
		metrics:         metrics,
		logger:          logger,
		now:             time.Now,
	}
}

// ListInternships returns the catalog, most recently posted first.
func (s *Catalog) ListInternships(ctx context.Context) ([]model.Internship, error) {
	internships, err := s.internshipStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list internships: %w", err)
	}

	return internships, nil
}

func (s *Catalog) GetInternship(ctx context.Context, id uuid.UUID) (model.Internship, error) {
	internship, err := s.internshipStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Internship{}, model.NewErrInternshipNotFound(id)
	}
	if err != nil {
		return model.Internship{}, fmt.Errorf("failed to get internship by id: %w", err)
	}

	return internship, nil
}

// PostInternship validates the posting form and inserts the internship at
// the front of the catalog. Nothing is stored when validation fails.
func (s *Catalog) PostInternship(ctx context.Context, actor model.User, params model.PostInternshipParams) (model.Internship, error) {
	s.logger.Debug("Catalog service: posting internship",
		"user_id", actor.ID,
		"title", params.Title)

	if err := model.RequireRole(actor, model.RolePlacementCell, "post internship"); err != nil {
		s.metrics.IncFailure("post_internship", "forbidden")
		return model.Internship{}, err
	}

	internship, err := s.buildInternship(actor, params)
	if err != nil {
		s.metrics.IncFailure("post_internship", "validation")
		s.logger.Info("Catalog service: posting rejected",
			"user_id", actor.ID,
			"error", err.Error())
		return model.Internship{}, err
	}

	internship, err = s.internshipStore.Create(ctx, internship)
	if err != nil {
		return model.Internship{}, fmt.Errorf("failed to create internship: %w", err)
	}

	s.metrics.IncInternshipPosted()
	s.logger.Info("Catalog service: internship posted",
		"internship_id", internship.ID,
		"company", internship.Company,
		"posted_by", internship.PostedBy)

	return internship, nil
}

func (s *Catalog) buildInternship(actor model.User, params model.PostInternshipParams) (model.Internship, error) {
	required := []struct {
		field string
		value string
	}{
		{"title", params.Title},
		{"company", params.Company},
		{"description", params.Description},
		{"duration", params.Duration},
		{"location", params.Location},
		{"deadline", params.Deadline},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return model.Internship{}, model.NewValidationError(r.field, "is required")
		}
	}

	requirements, err := ParseRequirements(params.Requirements)
	if err != nil {
		return model.Internship{}, err
	}

	stipend, err := ParseStipend(params.Stipend)
	if err != nil {
		return model.Internship{}, err
	}

	deadline, err := model.ParseDate(strings.TrimSpace(params.Deadline))
	if err != nil {
		return model.Internship{}, model.NewValidationError("deadline", "must be a YYYY-MM-DD date")
	}

	return model.Internship{
		ID:           uuid.New(),
		Title:        strings.TrimSpace(params.Title),
		Company:      strings.TrimSpace(params.Company),
		Description:  strings.TrimSpace(params.Description),
		Requirements: requirements,
		Stipend:      stipend,
		Duration:     strings.TrimSpace(params.Duration),
		Location:     strings.TrimSpace(params.Location),
		Deadline:     deadline,
		PostedBy:     actor.Name,
		PostedAt:     model.Day(s.now()),
		IsActive:     true,
	}, nil
}

// ParseRequirements splits a comma-delimited skill list into trimmed,
// non-empty tokens.
func ParseRequirements(raw string) ([]string, error) {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if skill := strings.TrimSpace(part); skill != "" {
			out = append(out, skill)
		}
	}

	if len(out) == 0 {
		return nil, model.NewValidationError("requirements", "at least one skill is required")
	}

	return out, nil
}

// ParseStipend parses a non-negative whole-number stipend.
func ParseStipend(raw string) (int, error) {
	stipend, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, model.NewValidationError("stipend", "must be a whole number")
	}
	if stipend < 0 {
		return 0, model.NewValidationError("stipend", "must not be negative")
	}

	return stipend, nil
}
