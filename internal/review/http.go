// Copyright (c) 2026 Kritika. All rights reserved.

/*
HTTP delivery layer for reviews and comments.

The handler is mounted under /titles/{titleID}/reviews, so every endpoint is
scoped to a title; comments are additionally scoped to their review.
*/

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"kritika/internal/platform/middleware"
	requestutil "kritika/internal/platform/request"
	"kritika/internal/platform/respond"
	"kritika/internal/platform/validate"
	"kritika/pkg/pagination"
)

// Handler implements the review HTTP endpoints.
type Handler struct {
	reviewService *Service
}

// NewHandler constructs a new review [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{reviewService: service}
}

// Routes returns a [chi.Router] for the review tree of one title.
//
// # Endpoints
//   - GET    /                                  : List reviews, newest first.
//   - POST   /                                  : Create a review (authenticated).
//   - GET    /{reviewID}                        : Fetch one review.
//   - PATCH  /{reviewID}                        : Edit (author, moderator, admin).
//   - DELETE /{reviewID}                        : Remove (author, moderator, admin).
//   - GET    /{reviewID}/comments               : List comments, newest first.
//   - POST   /{reviewID}/comments               : Create a comment (authenticated).
//   - GET    /{reviewID}/comments/{commentID}   : Fetch one comment.
//   - PATCH  /{reviewID}/comments/{commentID}   : Edit (author, moderator, admin).
//   - DELETE /{reviewID}/comments/{commentID}   : Remove (author, moderator, admin).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listReviews)
	router.Get("/{reviewID}", handler.getReview)
	router.Get("/{reviewID}/comments", handler.listComments)
	router.Get("/{reviewID}/comments/{commentID}", handler.getComment)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.createReview)
		r.Patch("/{reviewID}", handler.updateReview)
		r.Delete("/{reviewID}", handler.deleteReview)
		r.Post("/{reviewID}/comments", handler.createComment)
		r.Patch("/{reviewID}/comments/{commentID}", handler.updateComment)
		r.Delete("/{reviewID}/comments/{commentID}", handler.deleteComment)
	})

	return router
}

// # Request Payloads

type reviewRequest struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

type reviewUpdateRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

type commentRequest struct {
	Text string `json:"text"`
}

// # Review Endpoints

func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	reviews, total, err := handler.reviewService.ListReviews(request.Context(), titleID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getReview(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewScope(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.reviewService.GetReview(request.Context(), titleID, reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input reviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, input.Text)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.reviewService.CreateReview(request.Context(), claims, titleID, ReviewInput{
		Text:  input.Text,
		Score: input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, review)
}

func (handler *Handler) updateReview(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewScope(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input reviewUpdateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	review, err := handler.reviewService.UpdateReview(request.Context(), claims, titleID, reviewID, ReviewUpdateInput{
		Text:  input.Text,
		Score: input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewScope(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.reviewService.DeleteReview(request.Context(), claims, titleID, reviewID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Comment Endpoints

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewScope(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	comments, total, err := handler.reviewService.ListComments(request.Context(), titleID, reviewID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, commentID, err := commentScope(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.reviewService.GetComment(request.Context(), titleID, reviewID, commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewScope(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, input.Text)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.reviewService.CreateComment(request.Context(), claims, titleID, reviewID, input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, commentID, err := commentScope(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, input.Text)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.reviewService.UpdateComment(request.Context(), claims, titleID, reviewID, commentID, input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, commentID, err := commentScope(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.reviewService.DeleteComment(request.Context(), claims, titleID, reviewID, commentID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Route Scope Helpers

func reviewScope(request *http.Request) (titleID, reviewID int64, err error) {
	titleID, err = requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		return 0, 0, err
	}
	reviewID, err = requestutil.IntParam(request, "reviewID", "Review")
	if err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}

func commentScope(request *http.Request) (titleID, reviewID, commentID int64, err error) {
	titleID, reviewID, err = reviewScope(request)
	if err != nil {
		return 0, 0, 0, err
	}
	commentID, err = requestutil.IntParam(request, "commentID", "Comment")
	if err != nil {
		return 0, 0, 0, err
	}
	return titleID, reviewID, commentID, nil
}
