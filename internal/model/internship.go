package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// InternshipStore defines storage operations for the internship catalog.
type InternshipStore interface {
	// Create inserts the internship at the front of the catalog.
	Create(ctx context.Context, internship Internship) (Internship, error)
	GetByID(ctx context.Context, id uuid.UUID) (Internship, error)
	// List returns the catalog, most recently posted first.
	List(ctx context.Context) ([]Internship, error)
}

// Internship represents a posted internship listing.
type Internship struct {
	ID           uuid.UUID
	Title        string
	Company      string
	Description  string
	Requirements []string
	// Stipend is the monthly stipend in whole rupees.
	Stipend  int
	Duration string
	Location string
	Deadline time.Time
	PostedBy string
	PostedAt time.Time
	// IsActive is reserved; no operation flips it yet.
	IsActive bool
}

// PostInternshipParams holds the raw values of the posting form.
type PostInternshipParams struct {
	Title       string
	Company     string
	Description string
	// Requirements is a comma-delimited skill list.
	Requirements string
	// Stipend is the numeric text entered by the poster.
	Stipend  string
	Duration string
	Location string
	// Deadline is a YYYY-MM-DD date.
	Deadline string
}
