// Copyright (c) 2026 Kritika. All rights reserved.

package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"kritika/internal/platform/apperr"
	"kritika/internal/platform/sec"
	"kritika/internal/users/auth"
	"kritika/pkg/pagination"
	"kritika/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates business logic for profile self-service and the
// administrative user directory.
type Service struct {
	accountRepository AccountRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accountRepo AccountRepository, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		logger:            logger,
	}
}

// # Profile Self-Service

/*
GetProfile retrieves the full private identity of a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return user, nil
}

// UpdateProfileInput defines the mutable subset of profile fields for
// self-service edits. Role is accepted but only honored for admins.
type UpdateProfileInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *string
}

/*
UpdateProfile applies a partial set of changes to the caller's own account.

Description: Fetches the existing user state, overlays provided fields, and
synchronizes the change to persistent storage. A requested role change is
passed through the self-edit policy: non-admin callers keep their current
role without an error.

Parameters:
  - context: context.Context
  - actor: *sec.AuthClaims (The authenticated caller)
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated user profile
  - error: Conflict (duplicate email) or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, actor *sec.AuthClaims, input UpdateProfileInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	// Apply delta updates
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}

	// Role escalation is filtered by policy, never rejected.
	if input.Role != nil {
		requested, _ := sec.ParseRole(*input.Role)
		user.Role = sec.RoleForSelfEdit(actor, user.Role, requested)
	}

	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", user.ID))

	return user, nil
}

// # Administrative Directory

/*
ListUsers returns a page of the user directory.

Parameters:
  - context: context.Context
  - params: pagination.Params
  - search: string (optional substring filter)

Returns:
  - []*auth.User: The page of accounts
  - int: Total matching count
  - error: Retrieval failures
*/
func (service *Service) ListUsers(context context.Context, params pagination.Params, search string) ([]*auth.User, int, error) {
	return service.accountRepository.List(context, params, search)
}

// CreateUserInput defines the fields for administrator-provisioned accounts.
type CreateUserInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
	Role      string
}

/*
CreateUser provisions an account directly, bypassing the signup email flow.

Description: The account is created without a confirmation code; its owner can
later run the regular signup with the same (username, email) pair to obtain one.

Parameters:
  - context: context.Context
  - input: CreateUserInput

Returns:
  - *auth.User: The created account
  - error: Validation, Conflict, or storage failures
*/
func (service *Service) CreateUser(context context.Context, input CreateUserInput) (*auth.User, error) {
	if strings.EqualFold(input.Username, auth.ReservedUsername) {
		return nil, apperr.ValidationError("Username 'me' is reserved")
	}

	role := sec.RoleUser
	if input.Role != "" {
		parsed, ok := sec.ParseRole(input.Role)
		if !ok {
			return nil, apperr.ValidationError("Unknown role: " + input.Role)
		}
		role = parsed
	}

	user := &auth.User{
		ID:        uuidv7.New(),
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      role,
	}

	if err := service.accountRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_provisioned",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	return user, nil
}

/*
GetUser retrieves an account by username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *auth.User: The hydrated account
  - error: apperr.NotFound or storage failures
*/
func (service *Service) GetUser(context context.Context, username string) (*auth.User, error) {
	return service.accountRepository.FindByUsername(context, username)
}

// AdminUpdateInput defines the fields an administrator may change on any account.
type AdminUpdateInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *string
}

/*
UpdateUser applies a partial set of changes to any account.

Description: Unlike self-service edits, role changes here are honored
directly; the route guard already restricted the caller to administrators.

Parameters:
  - context: context.Context
  - username: string
  - input: AdminUpdateInput

Returns:
  - *auth.User: The updated account
  - error: NotFound, Validation, Conflict, or storage failures
*/
func (service *Service) UpdateUser(context context.Context, username string, input AdminUpdateInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	// Apply delta updates
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}

	if input.Role != nil {
		parsed, ok := sec.ParseRole(*input.Role)
		if !ok {
			return nil, apperr.ValidationError("Unknown role: " + *input.Role)
		}
		user.Role = parsed
	}

	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_updated_by_admin", slog.String("user_id", user.ID))

	return user, nil
}

/*
DeleteUser permanently removes an account by username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - error: NotFound or execution failures
*/
func (service *Service) DeleteUser(context context.Context, username string) error {
	user, err := service.accountRepository.FindByUsername(context, username)
	if err != nil {
		return err
	}

	if err := service.accountRepository.Delete(context, user.ID); err != nil {
		return fmt.Errorf("account_service_delete_failed: %w", err)
	}

	service.logger.Warn("user_account_deleted", slog.String("user_id", user.ID))

	return nil
}
