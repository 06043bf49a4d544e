package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/internhub/internal/model"
)

func seedApplications(t *testing.T, repo *ApplicationRepository, apps ...model.Application) {
	t.Helper()
	for _, a := range apps {
		_, err := repo.Create(context.Background(), a)
		require.NoError(t, err)
	}
}

func TestApplicationRepository_Filters(t *testing.T) {
	ctx := context.Background()
	repo := NewApplicationRepository()
	alex, sam := uuid.New(), uuid.New()
	i1, i2 := uuid.New(), uuid.New()

	a1 := model.Application{ID: uuid.New(), StudentID: alex, InternshipID: i1, Status: model.StatusPending}
	a2 := model.Application{ID: uuid.New(), StudentID: sam, InternshipID: i1, Status: model.StatusApproved}
	a3 := model.Application{ID: uuid.New(), StudentID: alex, InternshipID: i2, Status: model.StatusRejected}
	seedApplications(t, repo, a1, a2, a3)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a1.ID, a2.ID, a3.ID}, ids(all))

	byStudent, err := repo.ListByStudent(ctx, alex)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a1.ID, a3.ID}, ids(byStudent))

	byInternship, err := repo.ListByInternship(ctx, i1)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a1.ID, a2.ID}, ids(byInternship))

	reviewed, err := repo.ListByStatus(ctx, model.StatusApproved, model.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a2.ID, a3.ID}, ids(reviewed))

	none, err := repo.ListByStudent(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)

	found, err := repo.FindByStudentAndInternship(ctx, alex, i2)
	require.NoError(t, err)
	assert.Equal(t, a3.ID, found.ID)

	_, err = repo.FindByStudentAndInternship(ctx, sam, i2)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestApplicationRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewApplicationRepository()
	app := model.Application{ID: uuid.New(), StudentID: uuid.New(), InternshipID: uuid.New(), Status: model.StatusPending}
	seedApplications(t, repo, app)

	reviewedAt := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	updated, err := repo.UpdateStatus(ctx, app.ID, model.StatusPending, model.Review{
		Decision:   model.StatusApproved,
		ReviewedBy: "Dr. Sarah Wilson",
		Notes:      "Strong candidate",
		ReviewedAt: reviewedAt,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, updated.Status)
	require.NotNil(t, updated.ReviewedAt)
	assert.Equal(t, reviewedAt, *updated.ReviewedAt)

	_, err = repo.UpdateStatus(ctx, app.ID, model.StatusPending, model.Review{Decision: model.StatusRejected})
	require.ErrorIs(t, err, model.ErrInvalidStateTransition)

	got, err := repo.GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, got.Status)
	assert.Equal(t, "Strong candidate", got.Notes)

	_, err = repo.UpdateStatus(ctx, uuid.New(), model.StatusPending, model.Review{Decision: model.StatusRejected})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func ids(apps []model.Application) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(apps))
	for _, a := range apps {
		out = append(out, a.ID)
	}
	return out
}
