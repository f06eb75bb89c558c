// Copyright (c) 2026 Kritika. All rights reserved.

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kritika/internal/platform/sec"
)

func actor(id string, role sec.Role) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: id, Role: string(role)}
}

/*
TestCanWriteCatalog verifies that catalog writes are admin-only.
*/
func TestCanWriteCatalog(t *testing.T) {
	assert.False(t, sec.CanWriteCatalog(nil))
	assert.False(t, sec.CanWriteCatalog(actor("u1", sec.RoleUser)))
	assert.False(t, sec.CanWriteCatalog(actor("u1", sec.RoleModerator)))
	assert.True(t, sec.CanWriteCatalog(actor("u1", sec.RoleAdmin)))
}

/*
TestCanWriteOwnContent verifies the author-or-moderator rule for reviews
and comments.
*/
func TestCanWriteOwnContent(t *testing.T) {
	const authorID = "author-1"

	tests := []struct {
		name    string
		actor   *sec.AuthClaims
		allowed bool
	}{
		{"anonymous", nil, false},
		{"author_edits_own", actor(authorID, sec.RoleUser), true},
		{"stranger_denied", actor("other", sec.RoleUser), false},
		{"moderator_edits_any", actor("other", sec.RoleModerator), true},
		{"admin_edits_any", actor("other", sec.RoleAdmin), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, sec.CanWriteOwnContent(tt.actor, authorID))
		})
	}
}

/*
TestCanManageUsers verifies that account administration is admin-only.
*/
func TestCanManageUsers(t *testing.T) {
	assert.False(t, sec.CanManageUsers(nil))
	assert.False(t, sec.CanManageUsers(actor("u1", sec.RoleModerator)))
	assert.True(t, sec.CanManageUsers(actor("u1", sec.RoleAdmin)))
}

/*
TestRoleForSelfEdit verifies that non-admins cannot escalate their own role
through a profile edit, while admins keep full control.
*/
func TestRoleForSelfEdit(t *testing.T) {
	// 1. A regular user requesting admin keeps their current role.
	got := sec.RoleForSelfEdit(actor("u1", sec.RoleUser), sec.RoleUser, sec.RoleAdmin)
	assert.Equal(t, sec.RoleUser, got)

	// 2. A moderator cannot self-promote either.
	got = sec.RoleForSelfEdit(actor("u1", sec.RoleModerator), sec.RoleModerator, sec.RoleAdmin)
	assert.Equal(t, sec.RoleModerator, got)

	// 3. An admin's requested role is honored.
	got = sec.RoleForSelfEdit(actor("u1", sec.RoleAdmin), sec.RoleAdmin, sec.RoleModerator)
	assert.Equal(t, sec.RoleModerator, got)
}
