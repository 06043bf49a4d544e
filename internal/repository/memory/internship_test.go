package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/internhub/internal/model"
)

func TestInternshipRepository_CreateInsertsAtFront(t *testing.T) {
	ctx := context.Background()
	repo := NewInternshipRepository()

	first, err := repo.Create(ctx, model.Internship{ID: uuid.New(), Title: "first"})
	require.NoError(t, err)
	second, err := repo.Create(ctx, model.Internship{ID: uuid.New(), Title: "second"})
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestInternshipRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	repo := NewInternshipRepository()
	id := uuid.New()

	_, err := repo.Create(ctx, model.Internship{ID: id, Title: "Backend Intern", Requirements: []string{"Go"}})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Backend Intern", got.Title)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestInternshipRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewInternshipRepository()
	id := uuid.New()

	_, err := repo.Create(ctx, model.Internship{ID: id, Requirements: []string{"Go", "SQL"}})
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	list[0].Requirements[0] = "mutated"

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL"}, got.Requirements)
}
