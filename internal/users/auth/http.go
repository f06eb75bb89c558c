// Copyright (c) 2026 Kritika. All rights reserved.

/*
HTTP delivery layer for the enrollment flow.

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "kritika/internal/platform/request"
	"kritika/internal/platform/respond"
	"kritika/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the enrollment HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with enrollment routes.
//
// # Endpoints
//   - POST /signup : Enrolls an account and emails a confirmation code.
//   - POST /token  : Exchanges a confirmation code for a JWT.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/signup", handler.signup)
	router.Post("/token", handler.token)

	return router
}

// # Request Payloads

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type tokenRequest struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

/*
Signup enrolls an account and triggers code delivery.

POST /api/v1/auth/signup

Description: Validates input, enrolls the account (or rotates the code of an
existing one), and emails the confirmation code.

Request:
  - Body: signupRequest (Username, Email)

Response:
  - 200: The echoed username and email
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Username or Email bound to a different identity
  - 429: ErrRateLimited: Cooldown window still active
  - 502: ErrDeliveryFailed: Mail relay rejected the message
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Username(FieldUsername, input.Username).
		MaxLen(FieldUsername, input.Username, UsernameMaxLength).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, EmailMaxLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.RequestSignup(request.Context(), SignupInput{
		Username: input.Username,
		Email:    input.Email,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldUsername: user.Username,
		FieldEmail:    user.Email,
	})
}

/*
Token exchanges a confirmation code for a signed JWT.

POST /api/v1/auth/token

Description: Verifies the code against the stored digest in a single atomic
step and issues the access token.

Request:
  - Body: tokenRequest (Username, ConfirmationCode)

Response:
  - 200: The signed JWT
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 401: ErrUnauthorized: Wrong or already-spent code
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) token(writer http.ResponseWriter, request *http.Request) {
	var input tokenRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Required(FieldConfirmationCode, input.ConfirmationCode)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.authService.ConfirmAndIssueToken(request.Context(), input.Username, input.ConfirmationCode)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldToken: token,
	})
}
