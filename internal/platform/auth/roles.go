package auth

import "strings"

// Role is the coarse permission category carried in every token.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleLab     Role = "lab"
	RoleAdmin   Role = "admin"
)

// AllRoles lists every known role.
var AllRoles = []Role{RolePatient, RoleDoctor, RoleLab, RoleAdmin}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleLab, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// RoleSet is the static allow-set of a protected operation.
type RoleSet map[Role]struct{}

// NewRoleSet builds an allow-set from roles.
func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Contains reports whether r is in the set.
func (s RoleSet) Contains(r Role) bool {
	_, ok := s[r]
	return ok
}

func (s RoleSet) String() string {
	names := make([]string, 0, len(s))
	for _, r := range AllRoles {
		if s.Contains(r) {
			names = append(names, string(r))
		}
	}
	return strings.Join(names, " or ")
}
