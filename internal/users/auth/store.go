// Copyright (c) 2026 Kritika. All rights reserved.

package auth

import "context"

// # User Data Access

// UserRepository defines the data access contract for user accounts during
// enrollment and token exchange.
type UserRepository interface {

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Conflict on duplicate username or email, or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		SetConfirmationCode replaces the stored code digest for an existing
		account, invalidating any previously issued code.

		Parameters:
		  - context: context.Context
		  - username: string
		  - codeDigest: string

		Returns:
		  - error: Persistence failures
	*/
	SetConfirmationCode(context context.Context, username, codeDigest string) error

	/*
		ConsumeConfirmationCode atomically clears the stored digest if and only
		if it matches. A single UPDATE guards against double-spending a code
		under concurrent exchange attempts.

		Parameters:
		  - context: context.Context
		  - username: string
		  - codeDigest: string

		Returns:
		  - bool: true if the digest matched and was cleared
		  - error: Persistence failures
	*/
	ConsumeConfirmationCode(context context.Context, username, codeDigest string) (bool, error)
}

// # Volatile Data Access

// CooldownRepository defines the contract for the per-username signup
// throttle window.
type CooldownRepository interface {

	/*
		Acquire attempts to claim the cooldown slot for a username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - bool: true if the slot was free and is now held
		  - error: Connectivity failures
	*/
	Acquire(context context.Context, username string) (bool, error)
}
