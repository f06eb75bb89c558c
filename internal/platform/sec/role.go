// Copyright (c) 2026 Kritika. All rights reserved.

package sec

// # User Roles

// Role represents the authorization level granted to an account.
//
// It is a closed enumeration: every persisted role value must parse through
// [ParseRole] before it reaches a decision site. Capability checks live in
// policy.go and never compare raw strings.
type Role string

const (
	// Unrestricted system access, including catalog and user management
	RoleAdmin Role = "admin"

	// Can edit or remove any review and comment
	RoleModerator Role = "moderator"

	// Default role for standard registered accounts
	RoleUser Role = "user"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r.level() >= target.level()
}

// IsAdmin reports whether the role carries full administrative capability.
// A database superuser flag is normalized to this role at the storage boundary.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// IsModerator reports whether the role carries content-moderation capability.
func (r Role) IsModerator() bool { return r == RoleModerator }

// level maps a role to a numeric hierarchy level for comparison logic.
func (r Role) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleModerator:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}

// ParseRole validates a raw string against the closed role set.
//
// Unknown values return RoleUser and false so callers can decide whether to
// reject the input or fall back to the default role.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleAdmin, RoleModerator, RoleUser:
		return Role(raw), true
	default:
		return RoleUser, false
	}
}
