// Copyright (c) 2026 Kritika. All rights reserved.

package review

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"kritika/internal/platform/apperr"
	"kritika/internal/platform/sec"
	"kritika/pkg/pagination"
)

// # Service Layer

// Service orchestrates review and comment use cases, including the
// own-content authorization policy.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Reviews

func (service *Service) ListReviews(context context.Context, titleID int64, params pagination.Params) ([]*Review, int, error) {
	if err := service.requireTitle(context, titleID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListReviews(context, titleID, params)
}

func (service *Service) GetReview(context context.Context, titleID, reviewID int64) (*Review, error) {
	return service.repo.GetReview(context, titleID, reviewID)
}

// ReviewInput holds the authored fields of a review.
type ReviewInput struct {
	Text  string
	Score int
}

/*
CreateReview attaches a new scored review to a title.

Description: A second review by the same author on the same title is rejected
with a Conflict, raised by the unique index at insert time so concurrent
submissions cannot both pass a pre-check.

Parameters:
  - context: context.Context
  - actor: *sec.AuthClaims
  - titleID: int64
  - input: ReviewInput

Returns:
  - *Review: The persisted review
  - error: NotFound (title), Validation (score), Conflict (duplicate)
*/
func (service *Service) CreateReview(context context.Context, actor *sec.AuthClaims, titleID int64, input ReviewInput) (*Review, error) {
	if err := service.requireTitle(context, titleID); err != nil {
		return nil, err
	}
	if err := validateScore(input.Score); err != nil {
		return nil, err
	}

	review := &Review{
		TitleID:  titleID,
		Text:     input.Text,
		Score:    input.Score,
		AuthorID: actor.UserID,
		Author:   actor.Username,
		PubDate:  time.Now(),
	}

	if err := service.repo.CreateReview(context, review); err != nil {
		return nil, err
	}

	service.logger.Info("review_created",
		slog.Int64("title_id", titleID),
		slog.Int64("review_id", review.ID),
	)

	return review, nil
}

// ReviewUpdateInput holds a partial review edit.
type ReviewUpdateInput struct {
	Text  *string
	Score *int
}

/*
UpdateReview applies a partial edit to a review.

Description: Permitted for the review's author and for moderators and admins;
anyone else receives a Forbidden regardless of what they tried to change.

Parameters:
  - context: context.Context
  - actor: *sec.AuthClaims
  - titleID: int64
  - reviewID: int64
  - input: ReviewUpdateInput

Returns:
  - *Review: The updated review
  - error: NotFound, Forbidden, Validation, or storage failures
*/
func (service *Service) UpdateReview(context context.Context, actor *sec.AuthClaims, titleID, reviewID int64, input ReviewUpdateInput) (*Review, error) {
	review, err := service.repo.GetReview(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !sec.CanWriteOwnContent(actor, review.AuthorID) {
		return nil, apperr.Forbidden("You cannot modify someone else's review")
	}

	if input.Text != nil {
		review.Text = *input.Text
	}
	if input.Score != nil {
		if err := validateScore(*input.Score); err != nil {
			return nil, err
		}
		review.Score = *input.Score
	}

	if err := service.repo.UpdateReview(context, review); err != nil {
		return nil, err
	}

	service.logger.Info("review_updated", slog.Int64("review_id", review.ID))

	return review, nil
}

/*
DeleteReview removes a review and its comment thread.

Parameters:
  - context: context.Context
  - actor: *sec.AuthClaims
  - titleID: int64
  - reviewID: int64

Returns:
  - error: NotFound, Forbidden, or storage failures
*/
func (service *Service) DeleteReview(context context.Context, actor *sec.AuthClaims, titleID, reviewID int64) error {
	review, err := service.repo.GetReview(context, titleID, reviewID)
	if err != nil {
		return err
	}

	if !sec.CanWriteOwnContent(actor, review.AuthorID) {
		return apperr.Forbidden("You cannot delete someone else's review")
	}

	if err := service.repo.DeleteReview(context, titleID, reviewID); err != nil {
		return err
	}

	service.logger.Info("review_deleted", slog.Int64("review_id", reviewID))

	return nil
}

// # Comments

func (service *Service) ListComments(context context.Context, titleID, reviewID int64, params pagination.Params) ([]*Comment, int, error) {
	if _, err := service.repo.GetReview(context, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListComments(context, reviewID, params)
}

func (service *Service) GetComment(context context.Context, titleID, reviewID, commentID int64) (*Comment, error) {
	if _, err := service.repo.GetReview(context, titleID, reviewID); err != nil {
		return nil, err
	}
	return service.repo.GetComment(context, reviewID, commentID)
}

/*
CreateComment attaches a reply to a review.

Parameters:
  - context: context.Context
  - actor: *sec.AuthClaims
  - titleID: int64
  - reviewID: int64
  - text: string

Returns:
  - *Comment: The persisted comment
  - error: NotFound (review) or storage failures
*/
func (service *Service) CreateComment(context context.Context, actor *sec.AuthClaims, titleID, reviewID int64, text string) (*Comment, error) {
	if _, err := service.repo.GetReview(context, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ReviewID: reviewID,
		Text:     text,
		AuthorID: actor.UserID,
		Author:   actor.Username,
		PubDate:  time.Now(),
	}

	if err := service.repo.CreateComment(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.Int64("review_id", reviewID),
		slog.Int64("comment_id", comment.ID),
	)

	return comment, nil
}

/*
UpdateComment rewrites a comment's text under the own-content policy.

Parameters:
  - context: context.Context
  - actor: *sec.AuthClaims
  - titleID: int64
  - reviewID: int64
  - commentID: int64
  - text: string

Returns:
  - *Comment: The updated comment
  - error: NotFound, Forbidden, or storage failures
*/
func (service *Service) UpdateComment(context context.Context, actor *sec.AuthClaims, titleID, reviewID, commentID int64, text string) (*Comment, error) {
	comment, err := service.GetComment(context, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !sec.CanWriteOwnContent(actor, comment.AuthorID) {
		return nil, apperr.Forbidden("You cannot modify someone else's comment")
	}

	comment.Text = text
	if err := service.repo.UpdateComment(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_updated", slog.Int64("comment_id", comment.ID))

	return comment, nil
}

/*
DeleteComment removes a comment under the own-content policy.

Parameters:
  - context: context.Context
  - actor: *sec.AuthClaims
  - titleID: int64
  - reviewID: int64
  - commentID: int64

Returns:
  - error: NotFound, Forbidden, or storage failures
*/
func (service *Service) DeleteComment(context context.Context, actor *sec.AuthClaims, titleID, reviewID, commentID int64) error {
	comment, err := service.GetComment(context, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !sec.CanWriteOwnContent(actor, comment.AuthorID) {
		return apperr.Forbidden("You cannot delete someone else's comment")
	}

	if err := service.repo.DeleteComment(context, reviewID, commentID); err != nil {
		return err
	}

	service.logger.Info("comment_deleted", slog.Int64("comment_id", commentID))

	return nil
}

// # Helpers

func (service *Service) requireTitle(context context.Context, titleID int64) error {
	exists, err := service.repo.TitleExists(context, titleID)
	if err != nil {
		return fmt.Errorf("review_service_title_check_failed: %w", err)
	}
	if !exists {
		return apperr.NotFound("Title")
	}
	return nil
}

func validateScore(score int) error {
	if score < ScoreMin || score > ScoreMax {
		return apperr.ValidationError(
			fmt.Sprintf("Score must be between %d and %d", ScoreMin, ScoreMax),
			apperr.FieldError{Field: FieldScore, Message: "out of range"},
		)
	}
	return nil
}
