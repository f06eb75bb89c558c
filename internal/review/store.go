// Copyright (c) 2026 Kritika. All rights reserved.

package review

import (
	"context"

	"kritika/pkg/pagination"
)

// # Data Access

// Repository defines the persistence contract for reviews and comments.
type Repository interface {

	/*
		TitleExists reports whether a title row exists.

		Parameters:
		  - context: context.Context
		  - titleID: int64

		Returns:
		  - bool: Existence
		  - error: Retrieval failures
	*/
	TitleExists(context context.Context, titleID int64) (bool, error)

	/*
		ListReviews returns a page of a title's reviews, newest first.

		Parameters:
		  - context: context.Context
		  - titleID: int64
		  - params: pagination.Params

		Returns:
		  - []*Review: The page, with author usernames hydrated
		  - int: Total count for the title
		  - error: Retrieval failures
	*/
	ListReviews(context context.Context, titleID int64, params pagination.Params) ([]*Review, int, error)

	/*
		GetReview returns one review scoped to its title.

		Parameters:
		  - context: context.Context
		  - titleID: int64
		  - reviewID: int64

		Returns:
		  - *Review: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	GetReview(context context.Context, titleID, reviewID int64) (*Review, error)

	/*
		CreateReview persists a new review. The one-review-per-author-per-title
		rule is enforced by the unique index; a duplicate surfaces as Conflict.

		Parameters:
		  - context: context.Context
		  - review: *Review

		Returns:
		  - error: Conflict, or persistence failures
	*/
	CreateReview(context context.Context, review *Review) error

	/*
		UpdateReview rewrites the text and score of an existing review.

		Parameters:
		  - context: context.Context
		  - review: *Review

		Returns:
		  - error: Persistence failures
	*/
	UpdateReview(context context.Context, review *Review) error

	/*
		DeleteReview removes a review and, transitively, its comments.

		Parameters:
		  - context: context.Context
		  - titleID: int64
		  - reviewID: int64

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	DeleteReview(context context.Context, titleID, reviewID int64) error

	/*
		ListComments returns a page of a review's comments, newest first.

		Parameters:
		  - context: context.Context
		  - reviewID: int64
		  - params: pagination.Params

		Returns:
		  - []*Comment: The page, with author usernames hydrated
		  - int: Total count for the review
		  - error: Retrieval failures
	*/
	ListComments(context context.Context, reviewID int64, params pagination.Params) ([]*Comment, int, error)

	/*
		GetComment returns one comment scoped to its review.

		Parameters:
		  - context: context.Context
		  - reviewID: int64
		  - commentID: int64

		Returns:
		  - *Comment: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	GetComment(context context.Context, reviewID, commentID int64) (*Comment, error)

	/*
		CreateComment persists a new comment.

		Parameters:
		  - context: context.Context
		  - comment: *Comment

		Returns:
		  - error: Persistence failures
	*/
	CreateComment(context context.Context, comment *Comment) error

	/*
		UpdateComment rewrites the text of an existing comment.

		Parameters:
		  - context: context.Context
		  - comment: *Comment

		Returns:
		  - error: Persistence failures
	*/
	UpdateComment(context context.Context, comment *Comment) error

	/*
		DeleteComment removes a comment.

		Parameters:
		  - context: context.Context
		  - reviewID: int64
		  - commentID: int64

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	DeleteComment(context context.Context, reviewID, commentID int64) error
}
