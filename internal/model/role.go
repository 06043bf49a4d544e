package model

import "slices"

// Role determines which operations a user may invoke.
type Role string

const (
	// RoleStudent browses internships and applies to them.
	RoleStudent Role = "student"
	// RoleMentor reviews pending applications.
	RoleMentor Role = "mentor"
	// RolePlacementCell posts internships and reviews aggregate data.
	RolePlacementCell Role = "placement_cell"
)

// Roles lists every known role in display order.
var Roles = []Role{RoleStudent, RoleMentor, RolePlacementCell}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return slices.Contains(Roles, r)
}

func (r Role) String() string {
	return string(r)
}

// ParseRole converts a raw role name into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", NewValidationError("role", "unknown role "+s)
	}
	return r, nil
}
