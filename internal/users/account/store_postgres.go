// Copyright (c) 2026 Kritika. All rights reserved.

package account

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"kritika/internal/platform/dberr"
	"kritika/internal/users/auth"
	"kritika/pkg/pagination"
)

// PostgresAccountRepository implements AccountRepository using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL implementation of the AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

const accountColumns = `id, username, email, first_name, last_name, bio, role, confirmation_code, created_at, updated_at`

// FindByID retrieves a user record by their unique ID.
func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users.account WHERE id = $1`, accountColumns)

	return repository.scanOne(context, query, id)
}

// FindByUsername retrieves a user record by their unique username.
func (repository *PostgresAccountRepository) FindByUsername(context context.Context, username string) (*auth.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users.account WHERE username = $1`, accountColumns)

	return repository.scanOne(context, query, username)
}

/*
List returns a page of the user directory ordered by username.

Description: The optional search term matches username or email with a
case-insensitive substring comparison.
*/
func (repository *PostgresAccountRepository) List(context context.Context, params pagination.Params, search string) ([]*auth.User, int, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = `WHERE username ILIKE $1 OR email ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM users.account %s`, where)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}

	listQuery := fmt.Sprintf(`
		SELECT %s FROM users.account %s
		ORDER BY username ASC
		LIMIT $%d OFFSET $%d`,
		accountColumns, where, len(args)+1, len(args)+2)
	args = append(args, params.Limit, params.Offset())

	rows, err := repository.pool.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}
	defer rows.Close()

	users := make([]*auth.User, 0)
	for rows.Next() {
		user := &auth.User{}
		if err := rows.Scan(
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
		); err != nil {
			return nil, 0, dberr.Wrap(err, "")
		}
		users = append(users, user)
	}

	return users, total, nil
}

// Create persists a new administrator-provisioned account.
func (repository *PostgresAccountRepository) Create(context context.Context, user *auth.User) error {
	const query = `
		INSERT INTO users.account (
			id, username, email, first_name, last_name, bio, role, confirmation_code, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	now := time.Now()
	user.CreatedAt = now
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

// Update persists changes to the mutable profile fields.
func (repository *PostgresAccountRepository) Update(context context.Context, user *auth.User) error {
	const query = `
		UPDATE users.account
		SET email = $2, first_name = $3, last_name = $4, bio = $5, role = $6, updated_at = NOW()
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.Role,
	)

	if err != nil {
		return dberr.Wrap(err, "Email is already registered")
	}

	return nil
}

// Delete removes an account row. Authored reviews and comments go with it
// via the ON DELETE CASCADE constraints on their author references.
func (repository *PostgresAccountRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM users.account WHERE id = $1`

	if _, err := repository.pool.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "")
	}

	return nil
}

// scanOne hydrates a single account row for the given query and argument.
func (repository *PostgresAccountRepository) scanOne(context context.Context, query string, arg any) (*auth.User, error) {
	user := &auth.User{}
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
