package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/blog/internal/adapters/password/bcrypt"
	"github.com/vncsmyrnk/blog/internal/adapters/token/jwt"
	"github.com/vncsmyrnk/blog/internal/core/domain"
	xbcrypt "golang.org/x/crypto/bcrypt"
)

func TestSignupThenLogin(t *testing.T) {
	deps := newTestDeps(t)
	ctx := context.Background()

	user, err := deps.auth.Signup(ctx, "A@X.com", "secret1A")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.NotEqual(t, "secret1A", user.PasswordHash)

	res, err := deps.auth.Login(ctx, "a@x.com", "secret1A")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, user.ID, res.User.ID)

	subject, err := deps.auth.VerifyToken(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, subject)
}

func TestSignup_Validation(t *testing.T) {
	deps := newTestDeps(t)
	ctx := context.Background()

	for _, tc := range []struct{ email, password string }{
		{"", "secret"},
		{"a@x.com", ""},
		{"   ", "secret"},
	} {
		_, err := deps.auth.Signup(ctx, tc.email, tc.password)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "email=%q password=%q", tc.email, tc.password)
	}
}

func TestSignup_PasswordIsNotTrimmed(t *testing.T) {
	deps := newTestDeps(t)
	ctx := context.Background()

	_, err := deps.auth.Signup(ctx, "a@x.com", "   ")
	require.NoError(t, err)

	_, err = deps.auth.Login(ctx, "a@x.com", "   ")
	require.NoError(t, err)

	_, err = deps.auth.Login(ctx, "a@x.com", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = deps.auth.Login(ctx, "a@x.com", " ")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestSignup_CaseInsensitiveConflict(t *testing.T) {
	deps := newTestDeps(t)
	ctx := context.Background()

	_, err := deps.auth.Signup(ctx, "a@x.com", "secret1A")
	require.NoError(t, err)

	_, err = deps.auth.Signup(ctx, "A@X.COM", "another1B")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestSignup_StoreFailureIsInternal(t *testing.T) {
	hasher, err := bcrypt.NewHasher(xbcrypt.MinCost)
	require.NoError(t, err)
	tokens, err := jwt.NewManager(testSecret, time.Hour)
	require.NoError(t, err)
	svc := NewAuthService(brokenUsers{}, hasher, tokens)

	_, err = svc.Signup(context.Background(), "a@x.com", "secret1A")
	assert.ErrorIs(t, err, domain.ErrInternal)
	assert.ErrorIs(t, err, errStoreDown)

	_, err = svc.Login(context.Background(), "a@x.com", "secret1A")
	assert.ErrorIs(t, err, domain.ErrInternal)
}

func TestLogin_IndistinguishableFailures(t *testing.T) {
	deps := newTestDeps(t)
	ctx := context.Background()

	_, err := deps.auth.Signup(ctx, "A@X.com", "secret1A")
	require.NoError(t, err)

	_, wrongPassword := deps.auth.Login(ctx, "a@x.com", "wrong")
	_, unknownEmail := deps.auth.Login(ctx, "nobody@x.com", "secret1A")

	assert.ErrorIs(t, wrongPassword, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, domain.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	assert.False(t, strings.Contains(wrongPassword.Error(), "not found"))
}

func TestLogin_MissingFields(t *testing.T) {
	deps := newTestDeps(t)

	_, err := deps.auth.Login(context.Background(), "", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAuthenticate(t *testing.T) {
	deps := newTestDeps(t)
	ctx := context.Background()

	user, err := deps.auth.Signup(ctx, "a@x.com", "secret1A")
	require.NoError(t, err)
	res, err := deps.auth.Login(ctx, "a@x.com", "secret1A")
	require.NoError(t, err)

	got, err := deps.auth.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = deps.auth.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	deps.store.Users().Delete(user.ID)
	_, err = deps.auth.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAuthenticate_Expired(t *testing.T) {
	deps := newTestDeps(t)
	ctx := context.Background()

	_, err := deps.auth.Signup(ctx, "a@x.com", "secret1A")
	require.NoError(t, err)
	res, err := deps.auth.Login(ctx, "a@x.com", "secret1A")
	require.NoError(t, err)

	*deps.clock = res.ExpiresAt
	_, err = deps.auth.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}
