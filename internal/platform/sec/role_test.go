// Copyright (c) 2026 Kritika. All rights reserved.

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kritika/internal/platform/sec"
)

/*
TestRole_AtLeast verifies the role hierarchy ordering.
*/
func TestRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleModerator))
	assert.True(t, sec.RoleModerator.AtLeast(sec.RoleUser))
	assert.True(t, sec.RoleUser.AtLeast(sec.RoleUser))

	assert.False(t, sec.RoleUser.AtLeast(sec.RoleModerator))
	assert.False(t, sec.RoleModerator.AtLeast(sec.RoleAdmin))
}

/*
TestParseRole verifies the closed role set and the fallback for unknown values.
*/
func TestParseRole(t *testing.T) {
	tests := []struct {
		raw   string
		want  sec.Role
		known bool
	}{
		{"admin", sec.RoleAdmin, true},
		{"moderator", sec.RoleModerator, true},
		{"user", sec.RoleUser, true},
		{"superuser", sec.RoleUser, false},
		{"", sec.RoleUser, false},
	}

	for _, tt := range tests {
		t.Run("raw_"+tt.raw, func(t *testing.T) {
			role, known := sec.ParseRole(tt.raw)
			assert.Equal(t, tt.want, role)
			assert.Equal(t, tt.known, known)
		})
	}
}
