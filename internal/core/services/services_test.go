package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/blog/internal/adapters/password/bcrypt"
	"github.com/vncsmyrnk/blog/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/blog/internal/adapters/token/jwt"
	"github.com/vncsmyrnk/blog/internal/core/domain"
	xbcrypt "golang.org/x/crypto/bcrypt"
)

const testSecret = "services-test-secret-0123456789abcdef"

type testDeps struct {
	store *memory.Store
	auth  *AuthService
	posts *postService
	clock *time.Time
}

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &now
	tick := func() time.Time {
		*clock = clock.Add(time.Millisecond)
		return *clock
	}

	store := memory.NewStore(memory.WithClock(tick))
	hasher, err := bcrypt.NewHasher(xbcrypt.MinCost)
	require.NoError(t, err)
	tokens, err := jwt.NewManager(testSecret, time.Hour, jwt.WithClock(func() time.Time { return *clock }))
	require.NoError(t, err)

	return &testDeps{
		store: store,
		auth:  NewAuthService(store.Users(), hasher, tokens),
		posts: NewPostService(store.Posts()).(*postService),
		clock: clock,
	}
}

var errStoreDown = errors.New("connection refused")

// brokenUsers fails every call with errStoreDown.
type brokenUsers struct{}

func (brokenUsers) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, errStoreDown
}

func (brokenUsers) GetByID(context.Context, uuid.UUID) (*domain.User, error) {
	return nil, errStoreDown
}

func (brokenUsers) Create(context.Context, *domain.User) error {
	return errStoreDown
}

// brokenPosts fails every call with errStoreDown.
type brokenPosts struct{}

func (brokenPosts) Create(context.Context, *domain.Post) error { return errStoreDown }

func (brokenPosts) GetByID(context.Context, uuid.UUID) (*domain.Post, error) {
	return nil, errStoreDown
}

func (brokenPosts) List(context.Context, domain.PostFilter, int, int) ([]*domain.Post, error) {
	return nil, errStoreDown
}

func (brokenPosts) Count(context.Context, domain.PostFilter) (int64, error) {
	return 0, errStoreDown
}

func (brokenPosts) Update(context.Context, *domain.Post) error { return errStoreDown }

func (brokenPosts) Delete(context.Context, uuid.UUID) error { return errStoreDown }
