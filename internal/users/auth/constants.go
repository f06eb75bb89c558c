// Copyright (c) 2026 Kritika. All rights reserved.

package auth

import "time"

// # Enrollment Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// There is no refresh mechanism; clients re-run the code exchange
	// when the token expires.
	AccessTokenTTL = 24 * time.Hour

	// ConfirmationCodeLength is the byte length of the random code emailed
	// to the user. Hex-encoded, so the wire form is twice this length.
	ConfirmationCodeLength = 32

	// SignupCooldownTTL is the minimum interval between signup emails for
	// the same username. Throttles abuse of the outbound mail relay.
	SignupCooldownTTL = 60 * time.Second

	// UsernameMaxLength mirrors the column width of users.account.username.
	UsernameMaxLength = 150

	// EmailMaxLength mirrors the column width of users.account.email.
	EmailMaxLength = 254
)
