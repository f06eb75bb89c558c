// Copyright (c) 2026 Kritika. All rights reserved.

package account_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kritika/internal/platform/apperr"
	"kritika/internal/platform/sec"
	"kritika/internal/users/account"
	"kritika/internal/users/auth"
	"kritika/pkg/pagination"
	"kritika/pkg/pointer"
)

// # Test Fakes

type fakeAccountRepo struct {
	byID map[string]*auth.User
}

func newFakeAccountRepo(users ...*auth.User) *fakeAccountRepo {
	repo := &fakeAccountRepo{byID: make(map[string]*auth.User)}
	for _, u := range users {
		repo.byID[u.ID] = u
	}
	return repo
}

func (r *fakeAccountRepo) FindByID(_ context.Context, id string) (*auth.User, error) {
	if u, ok := r.byID[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeAccountRepo) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeAccountRepo) List(_ context.Context, _ pagination.Params, _ string) ([]*auth.User, int, error) {
	users := make([]*auth.User, 0, len(r.byID))
	for _, u := range r.byID {
		users = append(users, u)
	}
	return users, len(users), nil
}

func (r *fakeAccountRepo) Create(_ context.Context, user *auth.User) error {
	for _, u := range r.byID {
		if u.Username == user.Username || u.Email == user.Email {
			return apperr.Conflict("Username or email is already registered")
		}
	}
	r.byID[user.ID] = user
	return nil
}

func (r *fakeAccountRepo) Update(_ context.Context, user *auth.User) error {
	r.byID[user.ID] = user
	return nil
}

func (r *fakeAccountRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func claimsFor(user *auth.User) *sec.AuthClaims {
	return &sec.AuthClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	}
}

// # Self-Service

/*
TestUpdateProfile_RoleFilteredForNonAdmin verifies that a regular user asking
for role escalation on their own profile keeps their current role without an
error, while the other fields still apply.
*/
func TestUpdateProfile_RoleFilteredForNonAdmin(t *testing.T) {
	user := &auth.User{ID: "u1", Username: "reader", Email: "reader@example.com", Role: sec.RoleUser}
	repo := newFakeAccountRepo(user)
	service := account.NewService(repo, testLogger())

	updated, err := service.UpdateProfile(context.Background(), claimsFor(user), account.UpdateProfileInput{
		Bio:  pointer.To("Avid reviewer"),
		Role: pointer.To("admin"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Avid reviewer", updated.Bio)
	assert.Equal(t, sec.RoleUser, updated.Role)
}

/*
TestUpdateProfile_RoleHonoredForAdmin verifies that an admin can change
their own role through the same endpoint.
*/
func TestUpdateProfile_RoleHonoredForAdmin(t *testing.T) {
	user := &auth.User{ID: "a1", Username: "root", Email: "root@example.com", Role: sec.RoleAdmin}
	repo := newFakeAccountRepo(user)
	service := account.NewService(repo, testLogger())

	updated, err := service.UpdateProfile(context.Background(), claimsFor(user), account.UpdateProfileInput{
		Role: pointer.To("moderator"),
	})

	require.NoError(t, err)
	assert.Equal(t, sec.RoleModerator, updated.Role)
}

// # Administration

/*
TestCreateUser verifies role parsing and the reserved-username rule for
administrator-provisioned accounts.
*/
func TestCreateUser(t *testing.T) {
	repo := newFakeAccountRepo()
	service := account.NewService(repo, testLogger())

	// 1. Explicit moderator role is honored
	user, err := service.CreateUser(context.Background(), account.CreateUserInput{
		Username: "mod", Email: "mod@example.com", Role: "moderator",
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleModerator, user.Role)
	assert.NotEmpty(t, user.ID)

	// 2. Missing role defaults to user
	user, err = service.CreateUser(context.Background(), account.CreateUserInput{
		Username: "plain", Email: "plain@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, user.Role)

	// 3. Unknown role is a validation error
	_, err = service.CreateUser(context.Background(), account.CreateUserInput{
		Username: "x", Email: "x@example.com", Role: "owner",
	})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.HTTPStatus)

	// 4. Reserved username is rejected regardless of case
	for _, username := range []string{"me", "ME", "Me"} {
		_, err = service.CreateUser(context.Background(), account.CreateUserInput{
			Username: username, Email: "me@example.com",
		})
		appErr = apperr.As(err)
		require.NotNil(t, appErr, "username %q must be rejected", username)
		assert.Equal(t, 400, appErr.HTTPStatus)
	}
}

/*
TestUpdateUser_AdminRoleChange verifies that the admin directory endpoint
honors role changes and rejects unknown roles.
*/
func TestUpdateUser_AdminRoleChange(t *testing.T) {
	user := &auth.User{ID: "u1", Username: "reader", Email: "reader@example.com", Role: sec.RoleUser}
	repo := newFakeAccountRepo(user)
	service := account.NewService(repo, testLogger())

	updated, err := service.UpdateUser(context.Background(), "reader", account.AdminUpdateInput{
		Role: pointer.To("moderator"),
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleModerator, updated.Role)

	_, err = service.UpdateUser(context.Background(), "reader", account.AdminUpdateInput{
		Role: pointer.To("superuser"),
	})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.HTTPStatus)
}

/*
TestDeleteUser verifies deletion by username and the unknown-user mapping.
*/
func TestDeleteUser(t *testing.T) {
	user := &auth.User{ID: "u1", Username: "reader", Email: "reader@example.com", Role: sec.RoleUser}
	repo := newFakeAccountRepo(user)
	service := account.NewService(repo, testLogger())

	require.NoError(t, service.DeleteUser(context.Background(), "reader"))
	assert.Empty(t, repo.byID)

	err := service.DeleteUser(context.Background(), "ghost")
	assert.True(t, apperr.IsNotFound(err))
}
