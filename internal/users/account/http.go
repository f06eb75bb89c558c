// Copyright (c) 2026 Kritika. All rights reserved.

/*
HTTP delivery layer for profile self-service and user administration.

# Security

The /me endpoints require an authenticated caller; the directory endpoints
are restricted to administrators by the RequireUserAdmin middleware.
*/

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"kritika/internal/platform/middleware"
	requestutil "kritika/internal/platform/request"
	"kritika/internal/platform/respond"
	"kritika/internal/platform/validate"
	"kritika/internal/users/auth"
	"kritika/pkg/pagination"
)

// Handler implements the HTTP layer for user account management.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account domain's endpoints.
//
// # Endpoints
//   - GET    /me         : Own profile.
//   - PATCH  /me         : Partial self-edit (role changes silently filtered).
//   - GET    /           : Directory listing (admin).
//   - POST   /           : Provision an account (admin).
//   - GET    /{username} : Fetch an account (admin).
//   - PATCH  /{username} : Edit an account (admin).
//   - DELETE /{username} : Remove an account (admin).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Profile self-service
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.getMe)
		r.Patch("/me", handler.updateMe)
	})

	// Administrative directory
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireUserAdmin)
		r.Get("/", handler.listUsers)
		r.Post("/", handler.createUser)
		r.Get("/{username}", handler.getUser)
		r.Patch("/{username}", handler.updateUser)
		r.Delete("/{username}", handler.deleteUser)
	})

	return router
}

// # Request Payloads

type updateProfileRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

type createUserRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

// # Profile Endpoints

/*
GetMe returns the caller's own profile.

GET /api/v1/users/me

Response:
  - 200: User: Fully hydrated profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
UpdateMe applies a partial self-edit to the caller's profile.

PATCH /api/v1/users/me

Description: Accepts any subset of the mutable fields. A "role" field is
accepted from any caller but only takes effect for administrators.

Response:
  - 200: User: Updated profile
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Email already registered to another account
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Email != nil {
		validator.Required(auth.FieldEmail, *input.Email).
			Email(auth.FieldEmail, *input.Email).
			MaxLen(auth.FieldEmail, *input.Email, auth.EmailMaxLength)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), claims, UpdateProfileInput{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      input.Role,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// # Directory Endpoints

/*
ListUsers returns a page of the user directory.

GET /api/v1/users?page=&limit=&search=

Response:
  - 200: []User with pagination metadata
  - 403: ErrForbidden: Caller is not an administrator
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	users, total, err := handler.accountService.ListUsers(request.Context(), params, search)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
CreateUser provisions an account with an explicit role.

POST /api/v1/users

Response:
  - 201: User: Created account
  - 400: ErrInvalidJSON: Bad input, unknown role, or reserved username
  - 409: ErrConflict: Username or email already registered
*/
func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	var input createUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldUsername, input.Username).
		Username(auth.FieldUsername, input.Username).
		MaxLen(auth.FieldUsername, input.Username, auth.UsernameMaxLength).
		Required(auth.FieldEmail, input.Email).
		Email(auth.FieldEmail, input.Email).
		MaxLen(auth.FieldEmail, input.Email, auth.EmailMaxLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.CreateUser(request.Context(), CreateUserInput{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      input.Role,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
GetUser fetches a single account by username.

GET /api/v1/users/{username}

Response:
  - 200: User: Hydrated account
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	user, err := handler.accountService.GetUser(request.Context(), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
UpdateUser applies a partial edit to any account, including its role.

PATCH /api/v1/users/{username}

Response:
  - 200: User: Updated account
  - 400: ErrInvalidJSON: Bad input or unknown role
  - 404: ErrNotFound: Unknown username
  - 409: ErrConflict: Email already registered
*/
func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Email != nil {
		validator.Required(auth.FieldEmail, *input.Email).
			Email(auth.FieldEmail, *input.Email).
			MaxLen(auth.FieldEmail, *input.Email, auth.EmailMaxLength)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateUser(request.Context(), username, AdminUpdateInput{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      input.Role,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DeleteUser removes an account and its authored content.

DELETE /api/v1/users/{username}

Response:
  - 204: No Content
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	if err := handler.accountService.DeleteUser(request.Context(), username); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
