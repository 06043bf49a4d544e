package console

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dtroode/internhub/internal/model"
)

var numbers = message.NewPrinter(language.English)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// formatStipend renders a monthly stipend, e.g. ₹15,000/month.
func formatStipend(amount int) string {
	return numbers.Sprintf("₹%d/month", amount)
}

func roleTitle(r model.Role) string {
	switch r {
	case model.RoleStudent:
		return "Student"
	case model.RoleMentor:
		return "Mentor"
	case model.RolePlacementCell:
		return "Placement Cell"
	}
	return string(r)
}

func renderInternships(w io.Writer, list []model.Internship) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No internships posted.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tCOMPANY\tSTIPEND\tDURATION\tLOCATION\tDEADLINE\tSKILLS")
	for _, i := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(i.ID), i.Title, i.Company, formatStipend(i.Stipend),
			i.Duration, i.Location, model.FormatDate(i.Deadline), strings.Join(i.Requirements, ", "))
	}
	return tw.Flush()
}

func renderListings(w io.Writer, list []model.ListingView) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No internships posted.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tCOMPANY\tSTIPEND\tDEADLINE\tSTATUS")
	for _, l := range list {
		status := "-"
		if l.Applied {
			status = "applied (" + string(l.Status) + ")"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(l.ID), l.Title, l.Company, formatStipend(l.Stipend), model.FormatDate(l.Deadline), status)
	}
	return tw.Flush()
}

func renderApplications(w io.Writer, list []model.ApplicationView) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "  (none)")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tSTUDENT\tINTERNSHIP\tCOMPANY\tAPPLIED\tSTATUS\tREVIEWED BY\tNOTES")
	for _, a := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(a.ID), a.StudentName, a.InternshipTitle, a.Company,
			model.FormatDate(a.AppliedAt), a.Status, dash(a.ReviewedBy), dash(a.Notes))
	}
	return tw.Flush()
}

func renderCounts(w io.Writer, pairs ...any) error {
	tw := newTable(w)
	for i := 0; i+1 < len(pairs); i += 2 {
		fmt.Fprintf(tw, "%v\t%v\n", pairs[i], pairs[i+1])
	}
	return tw.Flush()
}

func renderStudentDashboard(w io.Writer, d model.StudentDashboard) error {
	fmt.Fprintf(w, "Student dashboard for %s\n", d.Student.Name)
	if err := renderCounts(w,
		"Available internships", d.AvailableInternships,
		"Applications", d.Counts.Total,
		"Approved", d.Counts.Approved,
		"Pending", d.Counts.Pending,
		"Rejected", d.Counts.Rejected,
	); err != nil {
		return err
	}
	fmt.Fprintln(w, "My applications:")
	return renderApplications(w, d.Applications)
}

func renderMentorDashboard(w io.Writer, d model.MentorDashboard) error {
	fmt.Fprintf(w, "Mentor dashboard for %s\n", d.Mentor.Name)
	if err := renderCounts(w,
		"Pending review", d.Counts.Pending,
		"Approved", d.Counts.Approved,
		"Rejected", d.Counts.Rejected,
	); err != nil {
		return err
	}
	fmt.Fprintln(w, "Pending review:")
	return renderApplications(w, d.Pending)
}

func renderPlacementDashboard(w io.Writer, d model.PlacementDashboard) error {
	fmt.Fprintf(w, "Placement dashboard for %s\n", d.Officer.Name)
	if err := renderCounts(w,
		"Total internships", d.TotalInternships,
		"Total applications", d.Counts.Total,
		"Pending", d.Counts.Pending,
		"Approved", d.Counts.Approved,
		"Rejected", d.Counts.Rejected,
	); err != nil {
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tCOMPANY\tPENDING\tAPPROVED\tREJECTED")
	for _, s := range d.Internships {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\n",
			shortID(s.ID), s.Title, s.Company, s.Counts.Pending, s.Counts.Approved, s.Counts.Rejected)
	}
	return tw.Flush()
}

func renderStats(w io.Writer, i model.Internship, c model.StatusCounts) error {
	fmt.Fprintf(w, "%s at %s\n", i.Title, i.Company)
	return renderCounts(w,
		"Posted by", dash(i.PostedBy),
		"Posted on", model.FormatDate(i.PostedAt),
		"Stipend", formatStipend(i.Stipend),
		"Applications", c.Total,
		"Pending", c.Pending,
		"Approved", c.Approved,
		"Rejected", c.Rejected,
	)
}

// describe turns an operation error into a one-line message.
func describe(err error) string {
	var (
		verr *model.ValidationError
		nerr *model.NotFoundError
		serr *model.InvalidStateTransitionError
		ferr *model.ForbiddenError
	)

	switch {
	case errors.As(err, &verr):
		return fmt.Sprintf("Invalid %s: %s.", verr.Field, verr.Reason)
	case errors.As(err, &nerr):
		return fmt.Sprintf("No %s matches %s.", nerr.Kind, nerr.ID)
	case errors.Is(err, model.ErrDuplicateApplication):
		return "You have already applied to this internship."
	case errors.As(err, &serr):
		return fmt.Sprintf("Application %s was already %s.", shortID(serr.ApplicationID), serr.From)
	case errors.As(err, &ferr):
		return fmt.Sprintf("Not allowed: %s.", ferr.Error())
	case errors.Is(err, model.ErrInvalidCredentials):
		return "Login failed: invalid credentials."
	case errors.Is(err, model.ErrSessionExpired):
		return "Session expired, please log in again."
	case errors.Is(err, model.ErrSessionRevoked), errors.Is(err, model.ErrUnauthenticated):
		return "Please log in first."
	}
	return "Error: " + err.Error()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
