// Copyright (c) 2026 Kritika. All rights reserved.

// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"kritika/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

const userColumns = `id, username, email, first_name, last_name, bio, role, confirmation_code, created_at, updated_at`

/*
Create persists a new user record into the users.account table.

Description: Relies on the unique indexes on username and email; a duplicate
surfaces as a Conflict rather than a pre-checked existence race.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: apperr.Conflict on duplicate identity, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, username, email, first_name, last_name, bio, role, confirmation_code, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.Role,
		user.ConfirmationCode,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "Username or email is already registered")
	}

	return nil
}

/*
FindByUsername retrieves a user record by their unique username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users.account WHERE username = $1`, userColumns)

	return repository.scanOne(context, query, username)
}

/*
FindByEmail retrieves a user record by their unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users.account WHERE email = $1`, userColumns)

	return repository.scanOne(context, query, email)
}

/*
SetConfirmationCode replaces the stored code digest for an account.

Parameters:
  - context: context.Context
  - username: string
  - codeDigest: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresUserRepository) SetConfirmationCode(context context.Context, username, codeDigest string) error {
	const query = `
		UPDATE users.account
		SET confirmation_code = $2, updated_at = NOW()
		WHERE username = $1`

	if _, err := repository.pool.Exec(context, query, username, codeDigest); err != nil {
		return dberr.Wrap(err, "")
	}

	return nil
}

/*
ConsumeConfirmationCode clears the digest if it matches, in one statement.

Description: The WHERE clause performs the comparison and the SET performs the
invalidation, so two racing exchanges can never both succeed.

Parameters:
  - context: context.Context
  - username: string
  - codeDigest: string

Returns:
  - bool: true if exactly one row was updated
  - error: Persistence failures
*/
func (repository *PostgresUserRepository) ConsumeConfirmationCode(context context.Context, username, codeDigest string) (bool, error) {
	const query = `
		UPDATE users.account
		SET confirmation_code = '', updated_at = NOW()
		WHERE username = $1 AND confirmation_code = $2 AND confirmation_code <> ''`

	tag, err := repository.pool.Exec(context, query, username, codeDigest)
	if err != nil {
		return false, dberr.Wrap(err, "")
	}

	return tag.RowsAffected() == 1, nil
}

// scanOne hydrates a single user row for the given query and argument.
func (repository *PostgresUserRepository) scanOne(context context.Context, query string, arg any) (*User, error) {
	user := &User{}
	err := repository.pool.QueryRow(context, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Bio,
		&user.Role,
		&user.ConfirmationCode,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}

	return user, nil
}
