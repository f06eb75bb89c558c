// Copyright (c) 2026 Kritika. All rights reserved.

/*
Package auth implements the passwordless signup and token issuance flow.

A visitor submits a username and email, receives a confirmation code by
email, and exchanges that code for a signed JWT. No passwords are ever
stored.

# Architecture

This layer is the "Truth" of the identity system. Entities defined here have
no external dependencies and encapsulate all business rules related to
account enrollment.
*/
package auth

import (
	"time"

	"kritika/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Kritika platform.
type User struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name,omitempty"`
	LastName  string   `json:"last_name,omitempty"`
	Bio       string   `json:"bio,omitempty"`
	Role      sec.Role `json:"role"`

	// ConfirmationCode holds the SHA-256 digest of the emailed code, never
	// the code itself. Cleared on successful token exchange.
	ConfirmationCode string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReservedUsername can never be registered because it collides with the
// /users/me routing segment.
const ReservedUsername = "me"

// # Field Identifiers

// Global field names for validation and identity mapping in the auth domain.
const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldConfirmationCode = "confirmation_code"
	FieldToken            = "token"
)
