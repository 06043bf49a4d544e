// Package seed loads the start-up dataset: per-role user templates, demo
// accounts, internships and applications.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/dtroode/internhub/internal/model"
)

//go:embed data/default.yaml
var defaultDataset []byte

// Dataset is the decoded and validated seed document.
type Dataset struct {
	Users        map[model.Role]model.User
	Accounts     []Account
	Internships  []model.Internship
	Applications []model.Application
}

// Account is a demo login for the password verifier.
type Account struct {
	Email    string
	Password string
	Role     model.Role
}

type document struct {
	Users        map[string]userEntry `yaml:"users"`
	Accounts     []accountEntry       `yaml:"accounts"`
	Internships  []internshipEntry    `yaml:"internships"`
	Applications []applicationEntry   `yaml:"applications"`
}

type userEntry struct {
	ID         string `yaml:"id"`
	Email      string `yaml:"email"`
	Name       string `yaml:"name"`
	Department string `yaml:"department"`
	Year       int    `yaml:"year"`
}

type accountEntry struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

type internshipEntry struct {
	ID           string   `yaml:"id"`
	Title        string   `yaml:"title"`
	Company      string   `yaml:"company"`
	Description  string   `yaml:"description"`
	Requirements []string `yaml:"requirements"`
	Stipend      int      `yaml:"stipend"`
	Duration     string   `yaml:"duration"`
	Location     string   `yaml:"location"`
	Deadline     string   `yaml:"deadline"`
	PostedBy     string   `yaml:"posted_by"`
	PostedAt     string   `yaml:"posted_at"`
	Inactive     bool     `yaml:"inactive"`
}

type applicationEntry struct {
	ID           string `yaml:"id"`
	InternshipID string `yaml:"internship_id"`
	StudentID    string `yaml:"student_id"`
	StudentName  string `yaml:"student_name"`
	StudentEmail string `yaml:"student_email"`
	Status       string `yaml:"status"`
	AppliedAt    string `yaml:"applied_at"`
	ReviewedAt   string `yaml:"reviewed_at"`
	ReviewedBy   string `yaml:"reviewed_by"`
	Notes        string `yaml:"notes"`
}

// Default returns the embedded demo dataset.
func Default() (Dataset, error) {
	return Load(bytes.NewReader(defaultDataset))
}

// LoadFile reads a dataset from a YAML file.
func LoadFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load decodes and validates a YAML dataset.
func Load(r io.Reader) (Dataset, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return Dataset{}, fmt.Errorf("failed to decode seed: %w", err)
	}

	ds := Dataset{Users: make(map[model.Role]model.User, len(doc.Users))}

	for name, entry := range doc.Users {
		user, err := entry.toModel(name)
		if err != nil {
			return Dataset{}, fmt.Errorf("users.%s: %w", name, err)
		}
		ds.Users[user.Role] = user
	}

	for i, entry := range doc.Accounts {
		role, err := model.ParseRole(entry.Role)
		if err != nil {
			return Dataset{}, fmt.Errorf("accounts[%d]: %w", i, err)
		}
		if entry.Email == "" || entry.Password == "" {
			return Dataset{}, fmt.Errorf("accounts[%d]: email and password are required", i)
		}
		ds.Accounts = append(ds.Accounts, Account{Email: entry.Email, Password: entry.Password, Role: role})
	}

	for i, entry := range doc.Internships {
		internship, err := entry.toModel()
		if err != nil {
			return Dataset{}, fmt.Errorf("internships[%d]: %w", i, err)
		}
		ds.Internships = append(ds.Internships, internship)
	}

	for i, entry := range doc.Applications {
		application, err := entry.toModel()
		if err != nil {
			return Dataset{}, fmt.Errorf("applications[%d]: %w", i, err)
		}
		ds.Applications = append(ds.Applications, application)
	}

	return ds, nil
}

// Apply inserts the dataset into the stores. Internships keep their listed
// order (first entry is the newest), applications keep ledger order.
func Apply(ctx context.Context, ds Dataset, internships model.InternshipStore, applications model.ApplicationStore) error {
	for _, internship := range slices.Backward(ds.Internships) {
		if _, err := internships.Create(ctx, internship); err != nil {
			return fmt.Errorf("failed to seed internship %s: %w", internship.ID, err)
		}
	}

	for _, application := range ds.Applications {
		if _, err := applications.Create(ctx, application); err != nil {
			return fmt.Errorf("failed to seed application %s: %w", application.ID, err)
		}
	}

	return nil
}

// DanglingApplications returns applications whose internship is not part of
// the dataset.
func (ds Dataset) DanglingApplications() []model.Application {
	var out []model.Application
	for _, a := range ds.Applications {
		known := slices.ContainsFunc(ds.Internships, func(i model.Internship) bool { return i.ID == a.InternshipID })
		if !known {
			out = append(out, a)
		}
	}
	return out
}

func (e userEntry) toModel(roleName string) (model.User, error) {
	role, err := model.ParseRole(roleName)
	if err != nil {
		return model.User{}, err
	}
	id, err := parseID("id", e.ID)
	if err != nil {
		return model.User{}, err
	}
	if e.Name == "" {
		return model.User{}, model.NewValidationError("name", "is required")
	}

	return model.User{
		ID:         id,
		Email:      e.Email,
		Name:       e.Name,
		Role:       role,
		Department: e.Department,
		Year:       e.Year,
	}, nil
}

func (e internshipEntry) toModel() (model.Internship, error) {
	id, err := parseID("id", e.ID)
	if err != nil {
		return model.Internship{}, err
	}
	if strings.TrimSpace(e.Title) == "" {
		return model.Internship{}, model.NewValidationError("title", "is required")
	}
	if e.Stipend < 0 {
		return model.Internship{}, model.NewValidationError("stipend", "must not be negative")
	}
	deadline, err := parseDate("deadline", e.Deadline)
	if err != nil {
		return model.Internship{}, err
	}
	postedAt, err := parseDate("posted_at", e.PostedAt)
	if err != nil {
		return model.Internship{}, err
	}

	return model.Internship{
		ID:           id,
		Title:        e.Title,
		Company:      e.Company,
		Description:  e.Description,
		Requirements: slices.Clone(e.Requirements),
		Stipend:      e.Stipend,
		Duration:     e.Duration,
		Location:     e.Location,
		Deadline:     deadline,
		PostedBy:     e.PostedBy,
		PostedAt:     postedAt,
		IsActive:     !e.Inactive,
	}, nil
}

func (e applicationEntry) toModel() (model.Application, error) {
	id, err := parseID("id", e.ID)
	if err != nil {
		return model.Application{}, err
	}
	internshipID, err := parseID("internship_id", e.InternshipID)
	if err != nil {
		return model.Application{}, err
	}
	studentID, err := parseID("student_id", e.StudentID)
	if err != nil {
		return model.Application{}, err
	}

	status := model.ApplicationStatus(e.Status)
	if !status.Valid() {
		return model.Application{}, model.NewValidationError("status", "unknown status "+e.Status)
	}
	appliedAt, err := parseDate("applied_at", e.AppliedAt)
	if err != nil {
		return model.Application{}, err
	}

	application := model.Application{
		ID:           id,
		InternshipID: internshipID,
		StudentID:    studentID,
		StudentName:  e.StudentName,
		StudentEmail: e.StudentEmail,
		Status:       status,
		AppliedAt:    appliedAt,
		ReviewedBy:   e.ReviewedBy,
		Notes:        e.Notes,
	}

	if status.IsTerminal() {
		reviewedAt, err := parseDate("reviewed_at", e.ReviewedAt)
		if err != nil {
			return model.Application{}, err
		}
		application.ReviewedAt = &reviewedAt
	} else if e.ReviewedAt != "" {
		return model.Application{}, model.NewValidationError("reviewed_at", "pending applications cannot be reviewed")
	}

	return application, nil
}

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, model.NewValidationError(field, err.Error())
	}
	return id, nil
}

func parseDate(field, raw string) (time.Time, error) {
	t, err := model.ParseDate(raw)
	if err != nil {
		return time.Time{}, model.NewValidationError(field, err.Error())
	}
	return t, nil
}
