package models

import (
	"fmt"
	"strings"
)

// Role is the closed set of platform roles. The store boundary rejects
// unknown values; handlers never compare raw strings.
type Role string

const (
	RoleVolunteer    Role = "volunteer"
	RoleOrganization Role = "organization"
	RoleAdmin        Role = "admin"
	RoleMentor       Role = "mentor"

	// RoleUnset marks users provisioned without a role. They can reply in
	// existing threads but hold no management rights.
	RoleUnset Role = ""
)

// ParseRole validates a raw role string. The empty string is valid and
// maps to RoleUnset.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleVolunteer, RoleOrganization, RoleAdmin, RoleMentor, RoleUnset:
		return r, nil
	default:
		return RoleUnset, fmt.Errorf("unknown role %q", s)
	}
}

// CanInitiateDirect reports whether this role may start a brand-new 1:1
// thread. Everyone may reply to an existing thread.
func (r Role) CanInitiateDirect() bool {
	return r == RoleOrganization || r == RoleAdmin || r == RoleMentor
}

// Elevated reports whether the role carries unconditional group-management
// rights.
func (r Role) Elevated() bool {
	return r == RoleAdmin || r == RoleOrganization
}
