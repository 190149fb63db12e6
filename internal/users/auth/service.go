// Copyright (c) 2026 Lumo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the core identity and access management system.

It handles user registration, secure password hashing, and stateless session
issuance via HMAC-signed JWTs.

Architecture:

  - Service: Orchestrates business logic (Register, Login, CurrentUser).
  - Repository: Abstracted interface for Postgres (Users).
  - Security: Leverages Argon2id hashing and HS256-signed JWTs.

The package ensures that identity data remains consistent and secure throughout
the platform's lifecycle.
*/
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/taibuivan/lumo/internal/platform/apperr"
	"github.com/taibuivan/lumo/internal/platform/sec"
	"github.com/taibuivan/lumo/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an error if signing fails.
	GenerateAccessToken(userID string, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed carefully.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo UserRepository, tokenProv TokenProvider) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProv,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Email    string
	Password string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Enrollment of a new member, handling password hashing and
email normalization (emails are stored lowercase).

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: Conflict (if the email is taken) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	// Verify email uniqueness. Return a client-safe Conflict error.
	_, err := service.userRepository.FindByEmail(context, email)
	if err == nil {
		return nil, apperr.Conflict("An account with these details already exists")
	}

	// Prevent storing plain-text passwords.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hashedPassword,
	}

	// Persist the user to the database. The unique index on email is the
	// last line of defense against a concurrent duplicate registration.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginSession represents a successfully established stateless session.
type LoginSession struct {
	AccessToken string
	ExpiresIn   time.Duration
	User        *User
}

/*
Login validates user credentials and issues a session token.

Description: Verifies identity with a constant-time password comparison and
mints a stateless, 7-day JWT. Unknown email and wrong password produce the
exact same rejection to prevent account enumeration.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session identifiers
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := service.userRepository.FindByEmail(context, email)

	// If (err != nil) the user does not exist. Generic message to prevent enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	// Verify the password hash. Argon2id comparison is constant-time.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken: accessToken,
		ExpiresIn:   AccessTokenTTL,
		User:        user,
	}, nil
}

// # Identity Resolution

/*
CurrentUser resolves a verified token subject to its stored account.

Description: Backs the authentication gate. A token may verify while its
account no longer exists; that case is collapsed into the same generic
unauthenticated rejection as a bad token.

Parameters:
  - context: context.Context
  - userID: string (verified token subject)

Returns:
  - *User: Hydrated entity
  - error: apperr.Unauthorized when no matching account exists
*/
func (service *Service) CurrentUser(context context.Context, userID string) (*User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired token")
	}
	return user, nil
}
