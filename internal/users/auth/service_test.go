// Copyright (c) 2026 Kritika. All rights reserved.

package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kritika/internal/platform/apperr"
	"kritika/internal/platform/sec"
	"kritika/internal/users/auth"
)

// # Test Fakes

type fakeUserRepo struct {
	byUsername map[string]*auth.User
	byEmail    map[string]*auth.User

	// lookupErr, when set, is returned by every find to simulate an outage.
	lookupErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byUsername: make(map[string]*auth.User),
		byEmail:    make(map[string]*auth.User),
	}
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	if u, ok := r.byUsername[username]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeUserRepo) Create(_ context.Context, user *auth.User) error {
	if _, ok := r.byUsername[user.Username]; ok {
		return apperr.Conflict("Username or email is already registered")
	}
	if _, ok := r.byEmail[user.Email]; ok {
		return apperr.Conflict("Username or email is already registered")
	}
	r.byUsername[user.Username] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) SetConfirmationCode(_ context.Context, username, codeDigest string) error {
	if u, ok := r.byUsername[username]; ok {
		u.ConfirmationCode = codeDigest
	}
	return nil
}

func (r *fakeUserRepo) ConsumeConfirmationCode(_ context.Context, username, codeDigest string) (bool, error) {
	u, ok := r.byUsername[username]
	if !ok || u.ConfirmationCode == "" || u.ConfirmationCode != codeDigest {
		return false, nil
	}
	u.ConfirmationCode = ""
	return true, nil
}

type fakeCooldown struct {
	held map[string]bool
}

func (c *fakeCooldown) Acquire(_ context.Context, username string) (bool, error) {
	if c.held == nil {
		c.held = make(map[string]bool)
	}
	if c.held[username] {
		return false, nil
	}
	c.held[username] = true
	return true, nil
}

type fakeMailer struct {
	sent []string // message bodies
	fail error
}

func (m *fakeMailer) Send(_ context.Context, _ string, _ string, body string) error {
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, body)
	return nil
}

type fakeTokenProvider struct{}

func (fakeTokenProvider) IssueAccessToken(userID, username, role string, _ time.Duration) (string, error) {
	return "jwt:" + userID + ":" + username + ":" + role, nil
}

func newService(repo *fakeUserRepo, mailer *fakeMailer) *auth.Service {
	return auth.NewService(repo, &fakeCooldown{}, mailer, fakeTokenProvider{})
}

// # Signup

/*
TestRequestSignup_NewUser verifies that a first-time signup persists the
account with the default role and delivers a code.
*/
func TestRequestSignup_NewUser(t *testing.T) {
	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	service := newService(repo, mailer)

	user, err := service.RequestSignup(context.Background(), auth.SignupInput{
		Username: "reader", Email: "reader@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, user.ConfirmationCode)
	assert.Len(t, mailer.sent, 1)
}

/*
TestRequestSignup_ReservedUsername verifies that the routing-reserved
username "me" can never be enrolled.
*/
func TestRequestSignup_ReservedUsername(t *testing.T) {
	service := newService(newFakeUserRepo(), &fakeMailer{})

	// The check is case-insensitive; "ME" collides with /users/me just as
	// "me" does.
	for _, username := range []string{"me", "ME", "Me", "mE"} {
		_, err := service.RequestSignup(context.Background(), auth.SignupInput{
			Username: username, Email: "me@example.com",
		})

		appErr := apperr.As(err)
		require.NotNil(t, appErr, "username %q must be rejected", username)
		assert.Equal(t, 400, appErr.HTTPStatus)
	}
}

/*
TestRequestSignup_Conflicts verifies that a username or email bound to a
different counterpart is rejected with a conflict.
*/
func TestRequestSignup_Conflicts(t *testing.T) {
	repo := newFakeUserRepo()
	service := newService(repo, &fakeMailer{})

	_, err := service.RequestSignup(context.Background(), auth.SignupInput{
		Username: "reader", Email: "reader@example.com",
	})
	require.NoError(t, err)

	// 1. Same username, different email
	_, err = service.RequestSignup(context.Background(), auth.SignupInput{
		Username: "reader", Email: "other@example.com",
	})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 409, appErr.HTTPStatus)

	// 2. Same email, different username
	_, err = service.RequestSignup(context.Background(), auth.SignupInput{
		Username: "other", Email: "reader@example.com",
	})
	appErr = apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 409, appErr.HTTPStatus)
}

/*
TestRequestSignup_StorageFailure verifies that a failing account lookup is
surfaced as an error instead of being mistaken for a missing user.
*/
func TestRequestSignup_StorageFailure(t *testing.T) {
	repo := newFakeUserRepo()
	repo.lookupErr = errors.New("connection reset")
	service := newService(repo, &fakeMailer{})

	_, err := service.RequestSignup(context.Background(), auth.SignupInput{
		Username: "reader", Email: "reader@example.com",
	})

	require.Error(t, err)
	assert.Nil(t, apperr.As(err))
	assert.Empty(t, repo.byUsername)
}

/*
TestRequestSignup_Idempotent verifies that re-submitting the exact same
(username, email) pair rotates the code instead of failing.
*/
func TestRequestSignup_Idempotent(t *testing.T) {
	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	// Separate cooldown instances so the second request is not throttled.
	first := auth.NewService(repo, &fakeCooldown{}, mailer, fakeTokenProvider{})
	second := auth.NewService(repo, &fakeCooldown{}, mailer, fakeTokenProvider{})

	user1, err := first.RequestSignup(context.Background(), auth.SignupInput{
		Username: "reader", Email: "reader@example.com",
	})
	require.NoError(t, err)
	digest1 := user1.ConfirmationCode

	user2, err := second.RequestSignup(context.Background(), auth.SignupInput{
		Username: "reader", Email: "reader@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, user1.ID, user2.ID)
	assert.NotEqual(t, digest1, repo.byUsername["reader"].ConfirmationCode)
	assert.Len(t, mailer.sent, 2)
}

/*
TestRequestSignup_Cooldown verifies that a repeated request inside the
cooldown window is throttled.
*/
func TestRequestSignup_Cooldown(t *testing.T) {
	repo := newFakeUserRepo()
	service := newService(repo, &fakeMailer{})

	_, err := service.RequestSignup(context.Background(), auth.SignupInput{
		Username: "reader", Email: "reader@example.com",
	})
	require.NoError(t, err)

	_, err = service.RequestSignup(context.Background(), auth.SignupInput{
		Username: "reader", Email: "reader@example.com",
	})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 429, appErr.HTTPStatus)
}

/*
TestRequestSignup_DeliveryFailure verifies that a mail relay failure is
surfaced as a delivery error while the account remains enrolled.
*/
func TestRequestSignup_DeliveryFailure(t *testing.T) {
	repo := newFakeUserRepo()
	mailer := &fakeMailer{fail: errors.New("relay down")}
	service := newService(repo, mailer)

	_, err := service.RequestSignup(context.Background(), auth.SignupInput{
		Username: "reader", Email: "reader@example.com",
	})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 502, appErr.HTTPStatus)

	// The account and its code survive; a later re-request can succeed.
	assert.Contains(t, repo.byUsername, "reader")
	assert.NotEmpty(t, repo.byUsername["reader"].ConfirmationCode)
}

// # Token Exchange

// enroll runs a signup and extracts the plain code from the delivered mail.
func enroll(t *testing.T, repo *fakeUserRepo, mailer *fakeMailer, service *auth.Service) string {
	t.Helper()

	_, err := service.RequestSignup(context.Background(), auth.SignupInput{
		Username: "reader", Email: "reader@example.com",
	})
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)

	body := mailer.sent[0]
	const marker = "confirmation code is: "
	idx := strings.Index(body, marker)
	require.GreaterOrEqual(t, idx, 0)

	code := strings.TrimSpace(body[idx+len(marker):])
	require.NotEmpty(t, code)
	return code
}

/*
TestConfirmAndIssueToken verifies the happy path of the code exchange.
*/
func TestConfirmAndIssueToken(t *testing.T) {
	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	service := newService(repo, mailer)
	code := enroll(t, repo, mailer, service)

	token, err := service.ConfirmAndIssueToken(context.Background(), "reader", code)

	require.NoError(t, err)
	assert.Contains(t, token, "reader")
	assert.Contains(t, token, string(sec.RoleUser))
}

/*
TestConfirmAndIssueToken_SingleUse verifies that a code grants exactly one
token.
*/
func TestConfirmAndIssueToken_SingleUse(t *testing.T) {
	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	service := newService(repo, mailer)
	code := enroll(t, repo, mailer, service)

	_, err := service.ConfirmAndIssueToken(context.Background(), "reader", code)
	require.NoError(t, err)

	_, err = service.ConfirmAndIssueToken(context.Background(), "reader", code)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 401, appErr.HTTPStatus)
}

/*
TestConfirmAndIssueToken_Errors verifies the unknown-user and wrong-code
mappings.
*/
func TestConfirmAndIssueToken_Errors(t *testing.T) {
	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	service := newService(repo, mailer)
	_ = enroll(t, repo, mailer, service)

	// 1. Unknown username is a 404, not a 401
	_, err := service.ConfirmAndIssueToken(context.Background(), "ghost", "whatever")
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 404, appErr.HTTPStatus)

	// 2. Known username with a wrong code is a 401
	_, err = service.ConfirmAndIssueToken(context.Background(), "reader", "wrong-code")
	appErr = apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 401, appErr.HTTPStatus)
}
