package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/internhub/internal/metrics"
	"github.com/dtroode/internhub/internal/model"
	"github.com/dtroode/internhub/internal/repository/memory"
	"github.com/dtroode/internhub/internal/seed"
	"github.com/dtroode/internhub/internal/service"
	"github.com/dtroode/internhub/internal/testutil"
	"github.com/dtroode/internhub/internal/token"
)

func newTestServices(t *testing.T) Services {
	t.Helper()
	ctx := context.Background()

	ds, err := seed.Default()
	require.NoError(t, err)

	internships := memory.NewInternshipRepository()
	applications := memory.NewApplicationRepository()
	require.NoError(t, seed.Apply(ctx, ds, internships, applications))

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	log := testutil.MakeNoopLogger()

	return Services{
		Identity: service.NewIdentity(
			service.NewDemoVerifier(ds.Users),
			token.NewJWT("console-test"),
			memory.NewSessionRepository(),
			service.IdentityConfig{SessionTTL: time.Hour},
			collector, log,
		),
		Catalog:     service.NewCatalog(internships, collector, log),
		Ledger:      service.NewLedger(applications, internships, service.LedgerConfig{}, collector, log),
		Projections: service.NewProjections(internships, applications),
		Gatherer:    registry,
	}
}

func run(t *testing.T, svc Services, lines ...string) string {
	t.Helper()

	var out bytes.Buffer
	c := New(svc, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, testutil.MakeNoopLogger())
	require.NoError(t, c.Run(context.Background()))
	return out.String()
}

func TestConsole_RequiresLogin(t *testing.T) {
	out := run(t, newTestServices(t), "internships", "whoami", "exit")

	assert.Contains(t, out, "Please log in first.")
	assert.Contains(t, out, "Bye!")
}

func TestConsole_StudentFlow(t *testing.T) {
	svc := newTestServices(t)
	out := run(t, svc,
		"login student alex@example.com secret",
		"whoami",
		"internships",
		"apply 1f3a",
		"apply 1f3a",
		"apply 2b7c",
		"dashboard",
		"approve a41c",
	)

	assert.Contains(t, out, "Welcome, Alex Johnson (Student).")
	assert.Contains(t, out, "alex@example.com")
	assert.Contains(t, out, "₹15,000/month")
	assert.Contains(t, out, "submitted (pending)")
	assert.Contains(t, out, "You have already applied to this internship.")
	assert.Contains(t, out, "Not allowed: review: not permitted for student.")
	assert.Equal(t, 2, strings.Count(out, "You have already applied to this internship."))

	all, err := svc.Ledger.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestConsole_MentorReview(t *testing.T) {
	svc := newTestServices(t)
	out := run(t, svc,
		"login mentor sarah@example.com pw",
		"applications",
		"approve a41c Strong candidate",
		"reject a41c",
		"approve zzzz",
	)

	assert.Contains(t, out, "Application a41c0e77 of Alex Johnson approved.")
	assert.Contains(t, out, "Application a41c0e77 was already approved.")
	assert.Contains(t, out, "No application matches zzzz.")

	pending, err := svc.Ledger.ListPending(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pending)

	reviewed, err := svc.Ledger.ListReviewed(context.Background())
	require.NoError(t, err)
	require.Len(t, reviewed, 3)
	assert.Equal(t, "Strong candidate", reviewed[0].Notes)
	assert.Equal(t, "Dr. Sarah Wilson", reviewed[0].ReviewedBy)
}

func TestConsole_PlacementPost(t *testing.T) {
	svc := newTestServices(t)
	out := run(t, svc,
		"login placement_cell office@example.com pw",
		"post",
		"Mobile Developer Intern",
		"AppWorks",
		"Build Flutter apps.",
		"Dart, Flutter, Git",
		"abc",
		"3 months",
		"Remote",
		"2025-06-01",
		"post",
		"Mobile Developer Intern",
		"AppWorks",
		"Build Flutter apps.",
		"Dart, Flutter, Git",
		"12000",
		"3 months",
		"Remote",
		"2025-06-01",
		"dashboard",
	)

	assert.Contains(t, out, "Invalid stipend: must be a whole number.")
	assert.Contains(t, out, "Posted Mobile Developer Intern at AppWorks")
	assert.Contains(t, out, "Total internships")

	list, err := svc.Catalog.ListInternships(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, "Mobile Developer Intern", list[0].Title)
	assert.Equal(t, []string{"Dart", "Flutter", "Git"}, list[0].Requirements)
	assert.Equal(t, "Placement Officer", list[0].PostedBy)
}

func TestConsole_PostForbiddenForStudent(t *testing.T) {
	out := run(t, newTestServices(t), "login student a@b.c pw", "post")
	assert.Contains(t, out, "Not allowed: post internship: not permitted for student.")
}

func TestConsole_LogoutEndsSession(t *testing.T) {
	out := run(t, newTestServices(t),
		"login mentor m@example.com pw",
		"logout",
		"applications",
		"logout",
	)

	assert.Contains(t, out, "Logged out.")
	assert.Equal(t, 2, strings.Count(out, "Please log in first."))
}

func TestConsole_LoginErrors(t *testing.T) {
	out := run(t, newTestServices(t),
		"login",
		"login dean a@b.c pw",
		"login student a@b.c",
	)

	assert.Contains(t, out, "Usage: login <role> <email> [password]")
	assert.Contains(t, out, "Invalid role")
	// Password read from the next (empty) line.
	assert.Contains(t, out, "Invalid password: is required.")
}

func TestConsole_TerminalPassword(t *testing.T) {
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte("hidden"), nil }
	t.Cleanup(func() { readPassword = orig })

	var out bytes.Buffer
	c := New(newTestServices(t), strings.NewReader("login student a@b.c\nwhoami\n"), &out, testutil.MakeNoopLogger())
	c.UseTerminalPassword(0)
	require.NoError(t, c.Run(context.Background()))

	assert.Contains(t, out.String(), "Welcome, Alex Johnson (Student).")
}

func TestConsole_TerminalPasswordError(t *testing.T) {
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return nil, errors.New("not a tty") }
	t.Cleanup(func() { readPassword = orig })

	var out bytes.Buffer
	c := New(newTestServices(t), strings.NewReader("login student a@b.c\n"), &out, testutil.MakeNoopLogger())
	c.UseTerminalPassword(0)
	require.NoError(t, c.Run(context.Background()))

	assert.Contains(t, out.String(), "failed to read password")
}

func TestConsole_StatsAndMetrics(t *testing.T) {
	out := run(t, newTestServices(t),
		"login placement_cell p@example.com pw",
		"stats 2b7c",
		"metrics",
	)

	assert.Contains(t, out, "Data Science Intern at Analytics Hub")
	assert.Contains(t, out, "internhub_logins_total")
	assert.Contains(t, out, `role="placement_cell"`)
}

func TestConsole_UnknownCommand(t *testing.T) {
	out := run(t, newTestServices(t), "frobnicate")
	assert.Contains(t, out, "Unknown command: frobnicate")
}

func TestConsole_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	c := New(newTestServices(t), strings.NewReader("login student a@b.c pw\n"), &out, testutil.MakeNoopLogger())
	require.NoError(t, c.Run(ctx))
	assert.NotContains(t, out.String(), "Welcome")
}

func TestResolveID(t *testing.T) {
	ids := []string{
		"1f3a9c20-8d4e-4f6a-a1b2-c3d4e5f60001",
		"1f3b0000-8d4e-4f6a-a1b2-c3d4e5f60002",
	}
	idOf := func(s string) string { return s }

	got, err := resolveID("internship", "1F3A", ids, idOf)
	require.NoError(t, err)
	assert.Equal(t, ids[0], got.String())

	_, err = resolveID("internship", "1f3", ids, idOf)
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = resolveID("internship", "9", ids, idOf)
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = resolveID("internship", " ", ids, idOf)
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestFormatStipend(t *testing.T) {
	assert.Equal(t, "₹15,000/month", formatStipend(15000))
	assert.Equal(t, "₹0/month", formatStipend(0))
}
