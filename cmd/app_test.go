package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/internhub/internal/config"
	"github.com/dtroode/internhub/internal/console"
	"github.com/dtroode/internhub/internal/model"
	"github.com/dtroode/internhub/internal/testutil"
)

func testConfig(mode string) *config.Config {
	cfg := &config.Config{LogFormat: config.LogFormatText}
	cfg.Auth.Mode = mode
	cfg.Auth.SessionTTL = time.Hour
	cfg.JWT.Secret = "test"
	cfg.Seed.Enabled = true
	return cfg
}

func TestDemoScript(t *testing.T) {
	for _, mode := range []string{config.AuthModeDemo, config.AuthModePassword} {
		t.Run(mode, func(t *testing.T) {
			svc, err := buildServices(context.Background(), testConfig(mode), testutil.MakeNoopLogger())
			require.NoError(t, err)

			var out bytes.Buffer
			c := console.New(svc, strings.NewReader(demoScript), &out, testutil.MakeNoopLogger())
			require.NoError(t, c.Run(context.Background()))

			got := out.String()
			assert.Contains(t, got, "Welcome, Alex Johnson (Student).")
			assert.Contains(t, got, "You have already applied to this internship.")
			assert.Contains(t, got, "Application a41c0e77 of Alex Johnson approved.")
			assert.Contains(t, got, "Application a41c0e77 was already approved.")
			assert.Contains(t, got, "Posted Mobile Developer Intern at AppWorks")
			assert.Contains(t, got, "internhub_applications_reviewed_total")
			assert.NotContains(t, got, "Login failed")
			assert.NotContains(t, got, "Unknown command")
		})
	}
}

func TestBuildServices_PasswordModeRejectsWrongPassword(t *testing.T) {
	svc, err := buildServices(context.Background(), testConfig(config.AuthModePassword), testutil.MakeNoopLogger())
	require.NoError(t, err)

	_, err = svc.Identity.Authenticate(context.Background(), model.Credentials{
		Email:    "student@example.com",
		Password: "wrong",
		Role:     model.RoleStudent,
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestBuildServices_SeedDisabled(t *testing.T) {
	cfg := testConfig(config.AuthModeDemo)
	cfg.Seed.Enabled = false

	svc, err := buildServices(context.Background(), cfg, testutil.MakeNoopLogger())
	require.NoError(t, err)

	list, err := svc.Catalog.ListInternships(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBuildServices_Errors(t *testing.T) {
	_, err := buildServices(context.Background(), testConfig("ldap"), testutil.MakeNoopLogger())
	assert.ErrorContains(t, err, "unknown auth mode")

	cfg := testConfig(config.AuthModeDemo)
	cfg.Seed.Path = "/nonexistent/seed.yaml"
	_, err = buildServices(context.Background(), cfg, testutil.MakeNoopLogger())
	assert.ErrorContains(t, err, "failed to load seed dataset")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	root := rootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Build version: N/A")
}
