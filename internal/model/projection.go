package model

// UnknownInternship is shown for applications whose internship is missing.
const UnknownInternship = "unknown"

// ApplicationView is an application joined with its internship.
type ApplicationView struct {
	Application
	InternshipTitle string
	Company         string
	// InternshipFound is false for a dangling internship reference.
	InternshipFound bool
}

// ListingView is a catalog entry as seen by one student.
type ListingView struct {
	Internship
	Applied bool
	// Status is empty unless Applied.
	Status ApplicationStatus
}

// InternshipSummary is a catalog entry with its application counts.
type InternshipSummary struct {
	Internship
	Counts StatusCounts
}

// StudentDashboard is the student's view of the catalog and ledger.
type StudentDashboard struct {
	Student              User
	AvailableInternships int
	Listings             []ListingView
	Applications         []ApplicationView
	Counts               StatusCounts
}

// MentorDashboard is the mentor's review queue.
type MentorDashboard struct {
	Mentor   User
	Pending  []ApplicationView
	Reviewed []ApplicationView
	Counts   StatusCounts
}

// PlacementDashboard is the placement cell's aggregate view.
type PlacementDashboard struct {
	Officer          User
	TotalInternships int
	Counts           StatusCounts
	Internships      []InternshipSummary
	Applications     []ApplicationView
}
