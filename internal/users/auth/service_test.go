// Copyright (c) 2026 Lumo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lumo/internal/platform/apperr"
	"github.com/taibuivan/lumo/internal/platform/sec"
	"github.com/taibuivan/lumo/internal/users/auth"
)

// fakeUserRepository is an in-memory UserRepository for service tests.
type fakeUserRepository struct {
	usersByID    map[string]*auth.User
	usersByEmail map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		usersByID:    make(map[string]*auth.User),
		usersByEmail: make(map[string]*auth.User),
	}
}

func (repo *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := repo.usersByID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (repo *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	user, ok := repo.usersByEmail[email]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (repo *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	if _, exists := repo.usersByEmail[user.Email]; exists {
		return apperr.Conflict("An account with these details already exists")
	}
	repo.usersByID[user.ID] = user
	repo.usersByEmail[user.Email] = user
	return nil
}

// newTestService wires a Service against the fake repository and a real
// HS256 token service.
func newTestService(t *testing.T) (*auth.Service, *fakeUserRepository, *sec.TokenService) {
	t.Helper()

	repo := newFakeUserRepository()
	tokenService, err := sec.NewTokenService("unit-test-secret", "lumo.app")
	require.NoError(t, err)

	return auth.NewService(repo, tokenService), repo, tokenService
}

/*
TestService_RegisterThenLogin covers the happy-path scenario: register,
login with the same credentials, and resolve the token back to the identity.
*/
func TestService_RegisterThenLogin(t *testing.T) {
	service, _, tokenService := newTestService(t)
	ctx := context.Background()

	user, err := service.Register(ctx, auth.RegisterInput{Email: "a@x.com", Password: "pw1-long-enough"})
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	assert.Equal(t, "a@x.com", user.Email)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "pw1-long-enough", user.PasswordHash)

	session, err := service.Login(ctx, auth.LoginInput{Email: "a@x.com", Password: "pw1-long-enough"})
	require.NoError(t, err)
	require.NotEmpty(t, session.AccessToken)
	assert.Equal(t, auth.AccessTokenTTL, session.ExpiresIn)

	// Token resolves back to the same identity.
	claims, err := tokenService.VerifyToken(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

/*
TestService_Register_NormalizesEmail verifies that emails are stored lowercase
and matched case-insensitively at login.
*/
func TestService_Register_NormalizesEmail(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	user, err := service.Register(ctx, auth.RegisterInput{Email: "  Mixed@Case.COM ", Password: "password-1"})
	require.NoError(t, err)
	assert.Equal(t, "mixed@case.com", user.Email)

	_, err = service.Login(ctx, auth.LoginInput{Email: "mixed@case.com", Password: "password-1"})
	assert.NoError(t, err)
}

/*
TestService_Register_DuplicateEmail verifies the conflict path.
*/
func TestService_Register_DuplicateEmail(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{Email: "a@x.com", Password: "password-1"})
	require.NoError(t, err)

	_, err = service.Register(ctx, auth.RegisterInput{Email: "a@x.com", Password: "password-2"})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
}

/*
TestService_Login_RejectionShape verifies that wrong-password and
unknown-email rejections are indistinguishable.
*/
func TestService_Login_RejectionShape(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{Email: "a@x.com", Password: "password-1"})
	require.NoError(t, err)

	_, wrongPasswordErr := service.Login(ctx, auth.LoginInput{Email: "a@x.com", Password: "wrong"})
	_, unknownEmailErr := service.Login(ctx, auth.LoginInput{Email: "nobody@x.com", Password: "password-1"})

	require.Error(t, wrongPasswordErr)
	require.Error(t, unknownEmailErr)

	wrongAE := apperr.As(wrongPasswordErr)
	unknownAE := apperr.As(unknownEmailErr)
	require.NotNil(t, wrongAE)
	require.NotNil(t, unknownAE)

	// Identical code, message, and status: no account enumeration.
	assert.Equal(t, wrongAE.Code, unknownAE.Code)
	assert.Equal(t, wrongAE.Message, unknownAE.Message)
	assert.Equal(t, wrongAE.HTTPStatus, unknownAE.HTTPStatus)
}

/*
TestService_CurrentUser verifies resolution of a token subject, including
the orphaned-token case.
*/
func TestService_CurrentUser(t *testing.T) {
	service, repo, _ := newTestService(t)
	ctx := context.Background()

	user, err := service.Register(ctx, auth.RegisterInput{Email: "a@x.com", Password: "password-1"})
	require.NoError(t, err)

	resolved, err := service.CurrentUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)

	// A verified token whose account vanished is still "unauthenticated".
	delete(repo.usersByID, user.ID)
	_, err = service.CurrentUser(ctx, user.ID)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
}

// failingTokenProvider always fails to sign.
type failingTokenProvider struct{}

func (failingTokenProvider) GenerateAccessToken(string, time.Duration) (string, error) {
	return "", fmt.Errorf("signing backend offline")
}

/*
TestService_Login_TokenFailure verifies that signing failures surface as
internal errors, not authentication rejections.
*/
func TestService_Login_TokenFailure(t *testing.T) {
	repo := newFakeUserRepository()
	service := auth.NewService(repo, failingTokenProvider{})
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{Email: "a@x.com", Password: "password-1"})
	require.NoError(t, err)

	_, err = service.Login(ctx, auth.LoginInput{Email: "a@x.com", Password: "password-1"})
	require.Error(t, err)
	assert.Nil(t, apperr.As(err))
}
