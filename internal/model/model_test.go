package model

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from ApplicationStatus
		to   ApplicationStatus
		want bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusPending, false},
		{StatusApproved, StatusRejected, false},
		{StatusApproved, StatusPending, false},
		{StatusRejected, StatusApproved, false},
		{StatusRejected, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestParseDecision(t *testing.T) {
	got, err := ParseDecision("approved")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, got)

	_, err = ParseDecision("pending")
	require.ErrorIs(t, err, ErrValidation)
}

func TestParseRole(t *testing.T) {
	for _, r := range Roles {
		got, err := ParseRole(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}

	_, err := ParseRole("admin")
	require.ErrorIs(t, err, ErrValidation)
}

func TestCredentials_Validate(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		field string
	}{
		{name: "missing email", creds: Credentials{Password: "x", Role: RoleStudent}, field: "email"},
		{name: "missing password", creds: Credentials{Email: "a@b.c", Role: RoleStudent}, field: "password"},
		{name: "bad role", creds: Credentials{Email: "a@b.c", Password: "x", Role: "admin"}, field: "role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate()
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	assert.NoError(t, Credentials{Email: "a@b.c", Password: "x", Role: RoleMentor}.Validate())
}

func TestTypedErrors_MatchSentinels(t *testing.T) {
	id := uuid.New()

	assert.True(t, errors.Is(NewErrInternshipNotFound(id), ErrNotFound))
	assert.True(t, errors.Is(&DuplicateApplicationError{StudentID: id, InternshipID: id}, ErrDuplicateApplication))
	assert.True(t, errors.Is(&InvalidStateTransitionError{ApplicationID: id, From: StatusApproved, To: StatusRejected}, ErrInvalidStateTransition))
	assert.True(t, errors.Is(&AuthError{Email: "a@b.c", Err: ErrInvalidCredentials}, ErrInvalidCredentials))
	assert.True(t, errors.Is(RequireRole(User{Role: RoleStudent}, RoleMentor, "review"), ErrForbidden))
	assert.NoError(t, RequireRole(User{Role: RoleMentor}, RoleMentor, "review"))
}

func TestDay(t *testing.T) {
	in := time.Date(2025, 3, 14, 17, 45, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), Day(in))
	assert.Equal(t, "2025-03-14", FormatDate(Day(in)))
	assert.Equal(t, "", FormatDate(time.Time{}))

	d, err := ParseDate("2025-12-31")
	require.NoError(t, err)
	assert.Equal(t, 12, int(d.Month()))

	_, err = ParseDate("31/12/2025")
	assert.Error(t, err)
}
