package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/common/expfmt"

	"github.com/dtroode/internhub/internal/model"
)

func (c *Console) help(ctx context.Context, _ []string) error {
	c.println("Commands:")
	c.println("  login <role> <email> [password]   roles: student, mentor, placement_cell")

	session, err := c.current(ctx)
	if err != nil {
		c.println("  exit")
		return nil
	}

	c.println("  logout, whoami, dashboard, internships, applications, stats <internship>, metrics, exit")
	switch session.User.Role {
	case model.RoleStudent:
		c.println("  apply <internship>")
	case model.RoleMentor:
		c.println("  approve <application> [notes], reject <application> [notes]")
	case model.RolePlacementCell:
		c.println("  post")
	}
	c.println("Ids may be shortened to any unique prefix.")
	return nil
}

func (c *Console) login(ctx context.Context, args []string) error {
	if len(args) < 2 {
		c.println("Usage: login <role> <email> [password]")
		return nil
	}

	role, err := model.ParseRole(args[0])
	if err != nil {
		return err
	}

	password := strings.Join(args[2:], " ")
	if password == "" {
		c.printf("Password: ")
		password, err = c.readPassword()
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read password: %w", err)
		}
	}

	if c.token != "" {
		if err := c.svc.Identity.Logout(ctx, c.token); err != nil {
			c.logger.Warn("Console: failed to end previous session", "error", err.Error())
		}
		c.token = ""
	}

	session, err := c.svc.Identity.Authenticate(ctx, model.Credentials{
		Email:    args[1],
		Password: password,
		Role:     role,
	})
	if err != nil {
		return err
	}

	c.token = session.Token
	c.printf("Welcome, %s (%s).\n", session.User.Name, roleTitle(session.User.Role))
	return nil
}

func (c *Console) logout(ctx context.Context, _ []string) error {
	if c.token == "" {
		return model.ErrUnauthenticated
	}

	err := c.svc.Identity.Logout(ctx, c.token)
	c.token = ""
	if err != nil {
		return err
	}

	c.println("Logged out.")
	return nil
}

func (c *Console) whoami(ctx context.Context, session model.Session, _ []string) error {
	u := session.User
	tw := newTable(c.out)
	fmt.Fprintf(tw, "Name\t%s\n", u.Name)
	fmt.Fprintf(tw, "Email\t%s\n", u.Email)
	fmt.Fprintf(tw, "Role\t%s\n", roleTitle(u.Role))
	if u.Department != "" {
		fmt.Fprintf(tw, "Department\t%s\n", u.Department)
	}
	if u.Role == model.RoleStudent && u.Year > 0 {
		fmt.Fprintf(tw, "Year\t%d\n", u.Year)
	}
	fmt.Fprintf(tw, "Session expires\t%s\n", session.ExpiresAt.Format("2006-01-02 15:04"))
	return tw.Flush()
}

func (c *Console) internships(ctx context.Context, session model.Session, _ []string) error {
	if session.User.Role == model.RoleStudent {
		d, err := c.svc.Projections.StudentDashboard(ctx, session.User)
		if err != nil {
			return err
		}
		return renderListings(c.out, d.Listings)
	}

	list, err := c.svc.Catalog.ListInternships(ctx)
	if err != nil {
		return err
	}
	return renderInternships(c.out, list)
}

func (c *Console) apply(ctx context.Context, session model.Session, args []string) error {
	if len(args) != 1 {
		c.println("Usage: apply <internship>")
		return nil
	}

	list, err := c.svc.Catalog.ListInternships(ctx)
	if err != nil {
		return err
	}
	id, err := resolveID("internship", args[0], list, func(i model.Internship) string { return i.ID.String() })
	if err != nil {
		return err
	}

	application, err := c.svc.Ledger.Apply(ctx, session.User, id)
	if err != nil {
		return err
	}

	c.printf("Application %s submitted (pending).\n", shortID(application.ID))
	return nil
}

func (c *Console) applications(ctx context.Context, session model.Session, _ []string) error {
	switch session.User.Role {
	case model.RoleStudent:
		d, err := c.svc.Projections.StudentDashboard(ctx, session.User)
		if err != nil {
			return err
		}
		return renderApplications(c.out, d.Applications)
	case model.RoleMentor:
		d, err := c.svc.Projections.MentorDashboard(ctx, session.User)
		if err != nil {
			return err
		}
		c.println("Pending review:")
		if err := renderApplications(c.out, d.Pending); err != nil {
			return err
		}
		c.println("Reviewed:")
		return renderApplications(c.out, d.Reviewed)
	default:
		d, err := c.svc.Projections.PlacementDashboard(ctx, session.User)
		if err != nil {
			return err
		}
		return renderApplications(c.out, d.Applications)
	}
}

func (c *Console) reviewAs(decision model.ApplicationStatus) sessionHandlerFunc {
	return func(ctx context.Context, session model.Session, args []string) error {
		return c.review(ctx, session, decision, args)
	}
}

func (c *Console) review(ctx context.Context, session model.Session, decision model.ApplicationStatus, args []string) error {
	if len(args) < 1 {
		c.printf("Usage: %s <application> [notes]\n", verb(decision))
		return nil
	}

	all, err := c.svc.Ledger.ListAll(ctx)
	if err != nil {
		return err
	}
	id, err := resolveID("application", args[0], all, func(a model.Application) string { return a.ID.String() })
	if err != nil {
		return err
	}

	updated, err := c.svc.Ledger.Review(ctx, session.User, model.ReviewParams{
		ApplicationID: id,
		Decision:      decision,
		Notes:         strings.Join(args[1:], " "),
	})
	if err != nil {
		return err
	}

	c.printf("Application %s of %s %s.\n", shortID(updated.ID), updated.StudentName, updated.Status)
	return nil
}

// postFields are prompted in order; each prompt reads one line.
var postFields = []struct {
	prompt string
	set    func(*model.PostInternshipParams, string)
}{
	{"Title", func(p *model.PostInternshipParams, v string) { p.Title = v }},
	{"Company", func(p *model.PostInternshipParams, v string) { p.Company = v }},
	{"Description", func(p *model.PostInternshipParams, v string) { p.Description = v }},
	{"Requirements (comma separated)", func(p *model.PostInternshipParams, v string) { p.Requirements = v }},
	{"Monthly stipend (₹)", func(p *model.PostInternshipParams, v string) { p.Stipend = v }},
	{"Duration", func(p *model.PostInternshipParams, v string) { p.Duration = v }},
	{"Location", func(p *model.PostInternshipParams, v string) { p.Location = v }},
	{"Application deadline (YYYY-MM-DD)", func(p *model.PostInternshipParams, v string) { p.Deadline = v }},
}

func (c *Console) post(ctx context.Context, session model.Session, _ []string) error {
	if err := model.RequireRole(session.User, model.RolePlacementCell, "post internship"); err != nil {
		return err
	}

	var params model.PostInternshipParams
	for _, f := range postFields {
		c.printf("%s: ", f.prompt)
		line, err := c.readLine()
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return fmt.Errorf("posting aborted: %w", err)
		}
		if c.echo {
			c.println(line)
		}
		f.set(&params, strings.TrimSpace(line))
	}

	internship, err := c.svc.Catalog.PostInternship(ctx, session.User, params)
	if err != nil {
		return err
	}

	c.printf("Posted %s at %s (%s).\n", internship.Title, internship.Company, shortID(internship.ID))
	return nil
}

func (c *Console) dashboard(ctx context.Context, session model.Session, _ []string) error {
	switch session.User.Role {
	case model.RoleStudent:
		d, err := c.svc.Projections.StudentDashboard(ctx, session.User)
		if err != nil {
			return err
		}
		return renderStudentDashboard(c.out, d)
	case model.RoleMentor:
		d, err := c.svc.Projections.MentorDashboard(ctx, session.User)
		if err != nil {
			return err
		}
		return renderMentorDashboard(c.out, d)
	default:
		d, err := c.svc.Projections.PlacementDashboard(ctx, session.User)
		if err != nil {
			return err
		}
		return renderPlacementDashboard(c.out, d)
	}
}

func (c *Console) stats(ctx context.Context, _ model.Session, args []string) error {
	if len(args) != 1 {
		c.println("Usage: stats <internship>")
		return nil
	}

	list, err := c.svc.Catalog.ListInternships(ctx)
	if err != nil {
		return err
	}
	id, err := resolveID("internship", args[0], list, func(i model.Internship) string { return i.ID.String() })
	if err != nil {
		return err
	}

	internship, err := c.svc.Catalog.GetInternship(ctx, id)
	if err != nil {
		return err
	}
	counts, err := c.svc.Projections.InternshipCounts(ctx, id)
	if err != nil {
		return err
	}

	return renderStats(c.out, internship, counts)
}

func (c *Console) metrics(_ context.Context, _ []string) error {
	if c.svc.Gatherer == nil {
		c.println("Metrics are disabled.")
		return nil
	}

	families, err := c.svc.Gatherer.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	if len(families) == 0 {
		c.println("No metrics recorded yet.")
		return nil
	}

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(c.out, mf); err != nil {
			return fmt.Errorf("failed to write metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

func verb(decision model.ApplicationStatus) string {
	if decision == model.StatusApproved {
		return "approve"
	}
	return "reject"
}
