// Copyright (c) 2026 Kritika. All rights reserved.

package review_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kritika/internal/platform/apperr"
	"kritika/internal/platform/sec"
	"kritika/internal/review"
	"kritika/pkg/pagination"
	"kritika/pkg/pointer"
)

// # Test Fakes

type fakeRepo struct {
	titles   map[int64]bool
	reviews  map[int64]*review.Review
	comments map[int64]*review.Comment
	nextID   int64
}

func newFakeRepo(titleIDs ...int64) *fakeRepo {
	repo := &fakeRepo{
		titles:   make(map[int64]bool),
		reviews:  make(map[int64]*review.Review),
		comments: make(map[int64]*review.Comment),
	}
	for _, id := range titleIDs {
		repo.titles[id] = true
	}
	return repo
}

func (r *fakeRepo) TitleExists(_ context.Context, titleID int64) (bool, error) {
	return r.titles[titleID], nil
}

func (r *fakeRepo) ListReviews(_ context.Context, titleID int64, _ pagination.Params) ([]*review.Review, int, error) {
	var list []*review.Review
	for _, rv := range r.reviews {
		if rv.TitleID == titleID {
			list = append(list, rv)
		}
	}
	return list, len(list), nil
}

func (r *fakeRepo) GetReview(_ context.Context, titleID, reviewID int64) (*review.Review, error) {
	if rv, ok := r.reviews[reviewID]; ok && rv.TitleID == titleID {
		clone := *rv
		return &clone, nil
	}
	return nil, apperr.NotFound("Review")
}

func (r *fakeRepo) CreateReview(_ context.Context, rv *review.Review) error {
	for _, existing := range r.reviews {
		if existing.TitleID == rv.TitleID && existing.AuthorID == rv.AuthorID {
			return apperr.Conflict("You have already reviewed this title")
		}
	}
	r.nextID++
	rv.ID = r.nextID
	r.reviews[rv.ID] = rv
	return nil
}

func (r *fakeRepo) UpdateReview(_ context.Context, rv *review.Review) error {
	r.reviews[rv.ID] = rv
	return nil
}

func (r *fakeRepo) DeleteReview(_ context.Context, _, reviewID int64) error {
	delete(r.reviews, reviewID)
	return nil
}

func (r *fakeRepo) ListComments(_ context.Context, reviewID int64, _ pagination.Params) ([]*review.Comment, int, error) {
	var list []*review.Comment
	for _, c := range r.comments {
		if c.ReviewID == reviewID {
			list = append(list, c)
		}
	}
	return list, len(list), nil
}

func (r *fakeRepo) GetComment(_ context.Context, reviewID, commentID int64) (*review.Comment, error) {
	if c, ok := r.comments[commentID]; ok && c.ReviewID == reviewID {
		clone := *c
		return &clone, nil
	}
	return nil, apperr.NotFound("Comment")
}

func (r *fakeRepo) CreateComment(_ context.Context, c *review.Comment) error {
	r.nextID++
	c.ID = r.nextID
	r.comments[c.ID] = c
	return nil
}

func (r *fakeRepo) UpdateComment(_ context.Context, c *review.Comment) error {
	r.comments[c.ID] = c
	return nil
}

func (r *fakeRepo) DeleteComment(_ context.Context, _, commentID int64) error {
	delete(r.comments, commentID)
	return nil
}

func newService(repo *fakeRepo) *review.Service {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return review.NewService(repo, logger)
}

func claims(userID, username string, role sec.Role) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: userID, Username: username, Role: string(role)}
}

// # Review Creation

/*
TestCreateReview verifies the happy path and the unknown-title mapping.
*/
func TestCreateReview(t *testing.T) {
	repo := newFakeRepo(1)
	service := newService(repo)
	author := claims("u1", "reader", sec.RoleUser)

	created, err := service.CreateReview(context.Background(), author, 1, review.ReviewInput{
		Text: "Gripping from start to finish.", Score: 9,
	})
	require.NoError(t, err)
	assert.Equal(t, "reader", created.Author)
	assert.False(t, created.PubDate.IsZero())

	// Unknown title is a 404
	_, err = service.CreateReview(context.Background(), author, 99, review.ReviewInput{
		Text: "x", Score: 5,
	})
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestCreateReview_DuplicateAuthor verifies the one-review-per-author-per-title
rule maps to a Conflict.
*/
func TestCreateReview_DuplicateAuthor(t *testing.T) {
	repo := newFakeRepo(1)
	service := newService(repo)
	author := claims("u1", "reader", sec.RoleUser)

	_, err := service.CreateReview(context.Background(), author, 1, review.ReviewInput{Text: "First.", Score: 7})
	require.NoError(t, err)

	_, err = service.CreateReview(context.Background(), author, 1, review.ReviewInput{Text: "Second.", Score: 8})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 409, appErr.HTTPStatus)
}

/*
TestCreateReview_ScoreBounds verifies the inclusive 1..10 score range.
*/
func TestCreateReview_ScoreBounds(t *testing.T) {
	repo := newFakeRepo(1)
	service := newService(repo)
	author := claims("u1", "reader", sec.RoleUser)

	for _, score := range []int{0, 11, -3} {
		_, err := service.CreateReview(context.Background(), author, 1, review.ReviewInput{Text: "x", Score: score})
		appErr := apperr.As(err)
		require.NotNil(t, appErr, "score %d", score)
		assert.Equal(t, 400, appErr.HTTPStatus)
	}

	for _, score := range []int{1, 10} {
		repo := newFakeRepo(1)
		_, err := newService(repo).CreateReview(context.Background(), author, 1, review.ReviewInput{Text: "x", Score: score})
		assert.NoError(t, err, "score %d", score)
	}
}

// # Own-Content Policy

/*
TestUpdateReview_Policy verifies who may edit a review: its author and
moderators, but not other regular users.
*/
func TestUpdateReview_Policy(t *testing.T) {
	repo := newFakeRepo(1)
	service := newService(repo)
	author := claims("u1", "reader", sec.RoleUser)

	created, err := service.CreateReview(context.Background(), author, 1, review.ReviewInput{Text: "Fine.", Score: 5})
	require.NoError(t, err)

	// 1. A different regular user is forbidden
	stranger := claims("u2", "other", sec.RoleUser)
	_, err = service.UpdateReview(context.Background(), stranger, 1, created.ID, review.ReviewUpdateInput{
		Text: pointer.To("Vandalism"),
	})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 403, appErr.HTTPStatus)

	// 2. The author may edit
	updated, err := service.UpdateReview(context.Background(), author, 1, created.ID, review.ReviewUpdateInput{
		Score: pointer.To(8),
	})
	require.NoError(t, err)
	assert.Equal(t, 8, updated.Score)
	assert.Equal(t, "Fine.", updated.Text)

	// 3. A moderator may edit someone else's review
	moderator := claims("m1", "mod", sec.RoleModerator)
	_, err = service.UpdateReview(context.Background(), moderator, 1, created.ID, review.ReviewUpdateInput{
		Text: pointer.To("Cleaned up."),
	})
	assert.NoError(t, err)
}

/*
TestDeleteComment_Policy verifies the same policy on the comment tree.
*/
func TestDeleteComment_Policy(t *testing.T) {
	repo := newFakeRepo(1)
	service := newService(repo)
	author := claims("u1", "reader", sec.RoleUser)

	created, err := service.CreateReview(context.Background(), author, 1, review.ReviewInput{Text: "Fine.", Score: 5})
	require.NoError(t, err)

	comment, err := service.CreateComment(context.Background(), author, 1, created.ID, "Agreed.")
	require.NoError(t, err)

	stranger := claims("u2", "other", sec.RoleUser)
	err = service.DeleteComment(context.Background(), stranger, 1, created.ID, comment.ID)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 403, appErr.HTTPStatus)

	admin := claims("a1", "root", sec.RoleAdmin)
	require.NoError(t, service.DeleteComment(context.Background(), admin, 1, created.ID, comment.ID))
	assert.Empty(t, repo.comments)
}

/*
TestCreateComment_UnknownReview verifies that commenting on a missing review
is a 404.
*/
func TestCreateComment_UnknownReview(t *testing.T) {
	repo := newFakeRepo(1)
	service := newService(repo)

	_, err := service.CreateComment(context.Background(), claims("u1", "reader", sec.RoleUser), 1, 42, "Hello?")
	assert.True(t, apperr.IsNotFound(err))
}
