// Copyright (c) 2026 Kritika. All rights reserved.

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Why SQLSTATE classification?
//
// The uniqueness rules of the platform (one review per author per title,
// unique usernames, emails, and slugs) are enforced by unique indexes, not by
// application-level existence checks. The only place those violations become
// visible is the driver error, so this package maps SQLSTATE 23505 to a
// client-safe Conflict instead of a generic 500.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"kritika/internal/platform/apperr"
)

// ErrNotFound is a standard error returned when a queried row doesn't exist.
var ErrNotFound = apperr.NotFound("Resource")

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the
// error type. conflictMsg is the client-safe message used for unique-constraint
// violations; pass an empty string to fall back to a generic message.
func Wrap(err error, conflictMsg string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Constraint classification via SQLSTATE
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			if conflictMsg == "" {
				conflictMsg = "Resource already exists"
			}
			return apperr.Conflict(conflictMsg)
		case pgerrcode.ForeignKeyViolation:
			// A referenced row vanished between validation and write.
			return apperr.ValidationError("Referenced resource does not exist")
		}
	}

	// 3. Unknown query errors become internal server errors
	return apperr.Internal(err)
}

// IsUniqueViolation reports whether err is a unique-constraint violation for
// the given constraint name. An empty constraint matches any unique violation.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
