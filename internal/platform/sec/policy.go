// Copyright (c) 2026 Kritika. All rights reserved.

// Package sec provides the authorization policy engine, role model, and
// token management for the Kritika platform.
//
// # Architecture
//
// The policy engine is a set of pure, stateless decision functions: given an
// actor (possibly anonymous), an action class, and optionally the author of
// the target resource, each function returns allow or deny. Handlers and
// services call these functions instead of scattering role comparisons
// across the codebase.
//
// A nil actor means the request is anonymous. Denials surface as 403 at the
// transport boundary (or 401 when the actor is anonymous); resource existence
// is never masked with 404, because every resource in the catalog is publicly
// readable anyway.
package sec

// # Policy Decisions

// CanReadPublic reports whether the actor may read catalog and review data.
//
// Categories, genres, titles, reviews, and comments are world-readable, so
// this always allows. It exists so read handlers state their policy explicitly
// rather than implying it by omission.
func CanReadPublic() bool { return true }

// CanWriteCatalog reports whether the actor may create, update, or delete
// categories, genres, and titles. Admin only.
func CanWriteCatalog(actor *AuthClaims) bool {
	return actor != nil && Role(actor.Role).IsAdmin()
}

// CanWriteOwnContent reports whether the actor may update or delete a review
// or comment authored by authorID.
//
// The author may always edit their own content; moderators and admins may
// edit anyone's. Creation is not gated here: it only requires authentication.
func CanWriteOwnContent(actor *AuthClaims, authorID string) bool {
	if actor == nil {
		return false
	}
	if actor.UserID == authorID {
		return true
	}
	role := Role(actor.Role)
	return role.IsModerator() || role.IsAdmin()
}

// CanManageUsers reports whether the actor may perform full CRUD on accounts.
func CanManageUsers(actor *AuthClaims) bool {
	return actor != nil && Role(actor.Role).IsAdmin()
}

// CanEditOwnProfile reports whether the actor may edit their own profile.
// Any authenticated actor may; the handler restricts the target to self.
func CanEditOwnProfile(actor *AuthClaims) bool {
	return actor != nil
}

// RoleForSelfEdit resolves the role field of a profile self-edit.
//
// Non-admins cannot grant themselves a higher role: the requested value is
// quietly discarded and the current role is kept. This is a silent override,
// not an error, so a client that always echoes the profile back does not
// break on PATCH.
func RoleForSelfEdit(actor *AuthClaims, current, requested Role) Role {
	if actor != nil && Role(actor.Role).IsAdmin() {
		return requested
	}
	return current
}
