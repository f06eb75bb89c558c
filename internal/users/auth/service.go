// Copyright (c) 2026 Kritika. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kritika/internal/platform/apperr"
	"kritika/internal/platform/sec"
	"kritika/pkg/uuidv7"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// IssueAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - username: The username of the account.
	//   - role: The role of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	IssueAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// CodeMailer delivers confirmation codes to users.
type CodeMailer interface {
	Send(context context.Context, to string, subject string, body string) error
}

// Service implements the passwordless enrollment use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to code generation,
// digest comparison, or token issuance must be reviewed carefully.
type Service struct {
	userRepository     UserRepository
	cooldownRepository CooldownRepository
	mailer             CodeMailer
	tokenProvider      TokenProvider
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	cooldownRepo CooldownRepository,
	mailer CodeMailer,
	tokenProv TokenProvider,
) *Service {
	return &Service{
		userRepository:     userRepo,
		cooldownRepository: cooldownRepo,
		mailer:             mailer,
		tokenProvider:      tokenProv,
	}
}

// # Signup Flow

// SignupInput holds the data required to enroll a new member or to re-request
// a confirmation code for an existing one.
type SignupInput struct {
	Username string
	Email    string
}

/*
RequestSignup enrolls a new account or refreshes the confirmation code of an
existing one, then emails the code.

Description: The same (username, email) pair may be submitted any number of
times; each request rotates the stored code. A username or email that is
already bound to a different counterpart is a conflict.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *User: The enrolled account (never includes the code)
  - err: Conflict, RateLimited, DeliveryFailed, or storage errors
*/
func (service *Service) RequestSignup(context context.Context, input SignupInput) (*User, error) {
	if strings.EqualFold(input.Username, ReservedUsername) {
		return nil, apperr.ValidationError("Username 'me' is reserved")
	}

	// Resolve the existing account, if any. An exact (username, email) match
	// is a legitimate re-request; any partial match is a conflict.
	existing, err := service.userRepository.FindByUsername(context, input.Username)
	if err != nil && !apperr.IsNotFound(err) {
		return nil, fmt.Errorf("auth_service_lookup_failed: %w", err)
	}
	if existing != nil && existing.Email != input.Email {
		return nil, apperr.Conflict("Username is already taken")
	}

	if existing == nil {
		_, err := service.userRepository.FindByEmail(context, input.Email)
		if err != nil && !apperr.IsNotFound(err) {
			return nil, fmt.Errorf("auth_service_lookup_failed: %w", err)
		}
		if err == nil {
			return nil, apperr.Conflict("Email is already registered")
		}
	}

	// Throttle outbound mail per username.
	acquired, err := service.cooldownRepository.Acquire(context, input.Username)
	if err != nil {
		return nil, fmt.Errorf("auth_service_cooldown_failed: %w", err)
	}
	if !acquired {
		return nil, apperr.RateLimited(int(SignupCooldownTTL.Seconds()))
	}

	// Generate the code and persist only its digest. The plain code exists
	// solely in the outbound email.
	code, err := sec.GenerateConfirmationCode(ConfirmationCodeLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_code_generation_failed: %w", err)
	}
	digest := sec.DigestCode(code)

	user := existing
	if user == nil {
		// Time-sortable ID to prevent PG index fragmentation.
		user = &User{
			ID:               uuidv7.New(),
			Username:         input.Username,
			Email:            input.Email,
			Role:             sec.RoleUser,
			ConfirmationCode: digest,
		}
		if err := service.userRepository.Create(context, user); err != nil {
			return nil, err
		}
	} else {
		if err := service.userRepository.SetConfirmationCode(context, user.Username, digest); err != nil {
			return nil, fmt.Errorf("auth_service_code_store_failed: %w", err)
		}
	}

	body := fmt.Sprintf("Hello %s,\n\nYour confirmation code is: %s\n", user.Username, code)
	if err := service.mailer.Send(context, user.Email, "Your Kritika confirmation code", body); err != nil {
		// The account and code are already persisted; the client may retry
		// after the cooldown and receive a fresh code.
		return nil, apperr.DeliveryFailed(err)
	}

	return user, nil
}

// # Token Exchange

/*
ConfirmAndIssueToken exchanges a confirmation code for a signed JWT.

Description: The stored digest is compared and cleared in one atomic step, so
a code grants exactly one token no matter how many exchanges race.

Parameters:
  - context: context.Context
  - username: string
  - code: string

Returns:
  - string: Signed JWT access token
  - err: NotFound (unknown username), Unauthorized (wrong or spent code)
*/
func (service *Service) ConfirmAndIssueToken(context context.Context, username, code string) (string, error) {
	user, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		return "", apperr.NotFound("User")
	}

	consumed, err := service.userRepository.ConsumeConfirmationCode(context, username, sec.DigestCode(code))
	if err != nil {
		return "", fmt.Errorf("auth_service_code_consume_failed: %w", err)
	}
	if !consumed {
		return "", apperr.Unauthorized("Confirmation code is invalid or already used")
	}

	token, err := service.tokenProvider.IssueAccessToken(user.ID, user.Username, string(user.Role), AccessTokenTTL)
	if err != nil {
		return "", fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return token, nil
}
