// Copyright (c) 2026 Kritika. All rights reserved.

/*
Package account handles user profile management and administrative user control.

It provides functionality for members to view and update their own profile
via /users/me, and for administrators to manage the full user directory.

# Architecture

  - Domain: This package depends on the auth package for the User entity.
  - Policy: Self-edit role changes are silently discarded for non-admins.
*/
package account

import (
	"context"

	"kritika/internal/users/auth"
	"kritika/pkg/pagination"
)

// # Repository Contracts

// AccountRepository defines the persistence contract for user directory access.
type AccountRepository interface {
	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		FindByUsername retrieves a user record by their unique username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByUsername(context context.Context, username string) (*auth.User, error)

	/*
		List returns a page of the user directory ordered by username.

		Parameters:
		  - context: context.Context
		  - params: pagination.Params
		  - search: string (optional username/email substring filter)

		Returns:
		  - []*auth.User: The page of accounts
		  - int: Total matching count
		  - error: Retrieval failures
	*/
	List(context context.Context, params pagination.Params, search string) ([]*auth.User, int, error)

	/*
		Create persists a new account provisioned by an administrator.

		Parameters:
		  - context: context.Context
		  - user: *auth.User

		Returns:
		  - error: Conflict on duplicate identity, or storage failures
	*/
	Create(context context.Context, user *auth.User) error

	/*
		Update modifies the mutable profile fields of an existing user.

		Parameters:
		  - context: context.Context
		  - user: *auth.User (Hydrated entity with changes)

		Returns:
		  - error: Storage or constraint failures
	*/
	Update(context context.Context, user *auth.User) error

	/*
		Delete permanently removes an account together with its authored
		reviews and comments.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Execution failures
	*/
	Delete(context context.Context, id string) error
}
