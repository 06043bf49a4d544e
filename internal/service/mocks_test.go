package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/internhub/internal/model"
)

// MockInternshipStore mocks the InternshipStore interface
type MockInternshipStore struct {
	mock.Mock
}

func (m *MockInternshipStore) Create(ctx context.Context, internship model.Internship) (model.Internship, error) {
	args := m.Called(ctx, internship)
	return args.Get(0).(model.Internship), args.Error(1)
}

func (m *MockInternshipStore) GetByID(ctx context.Context, id uuid.UUID) (model.Internship, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Internship), args.Error(1)
}

func (m *MockInternshipStore) List(ctx context.Context) ([]model.Internship, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Internship), args.Error(1)
}

// MockApplicationStore mocks the ApplicationStore interface
type MockApplicationStore struct {
	mock.Mock
}

func (m *MockApplicationStore) Create(ctx context.Context, application model.Application) (model.Application, error) {
	args := m.Called(ctx, application)
	return args.Get(0).(model.Application), args.Error(1)
}

func (m *MockApplicationStore) GetByID(ctx context.Context, id uuid.UUID) (model.Application, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Application), args.Error(1)
}

func (m *MockApplicationStore) List(ctx context.Context) ([]model.Application, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Application), args.Error(1)
}

func (m *MockApplicationStore) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.Application, error) {
	args := m.Called(ctx, studentID)
	return args.Get(0).([]model.Application), args.Error(1)
}

func (m *MockApplicationStore) ListByInternship(ctx context.Context, internshipID uuid.UUID) ([]model.Application, error) {
	args := m.Called(ctx, internshipID)
	return args.Get(0).([]model.Application), args.Error(1)
}

func (m *MockApplicationStore) ListByStatus(ctx context.Context, statuses ...model.ApplicationStatus) ([]model.Application, error) {
	args := m.Called(ctx, statuses)
	return args.Get(0).([]model.Application), args.Error(1)
}

func (m *MockApplicationStore) FindByStudentAndInternship(ctx context.Context, studentID, internshipID uuid.UUID) (model.Application, error) {
	args := m.Called(ctx, studentID, internshipID)
	return args.Get(0).(model.Application), args.Error(1)
}

func (m *MockApplicationStore) UpdateStatus(ctx context.Context, id uuid.UUID, expected model.ApplicationStatus, review model.Review) (model.Application, error) {
	args := m.Called(ctx, id, expected, review)
	return args.Get(0).(model.Application), args.Error(1)
}

// MockSessionStore mocks the SessionStore interface
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Create(ctx context.Context, session model.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionStore) GetByJTI(ctx context.Context, jti string) (model.Session, error) {
	args := m.Called(ctx, jti)
	return args.Get(0).(model.Session), args.Error(1)
}

func (m *MockSessionStore) RevokeByJTI(ctx context.Context, jti string) error {
	args := m.Called(ctx, jti)
	return args.Error(0)
}

// MockTokenManager mocks the TokenManager interface
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateSessionToken(user model.User, ttl time.Duration) (string, string, error) {
	args := m.Called(user, ttl)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenManager) ParseSessionToken(token string) (model.SessionClaims, error) {
	args := m.Called(token)
	return args.Get(0).(model.SessionClaims), args.Error(1)
}
