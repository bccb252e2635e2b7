package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/vncsmyrnk/blog/internal/core/domain"
)

func setupPostgres(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("blog"),
		tcpostgres.WithUsername("user"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(ctx, db))
	return db
}

func TestPostgres_UserLifecycle(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	users := NewUserRepository(db)

	user := &domain.User{Email: "a@x.com", PasswordHash: "hash"}
	require.NoError(t, users.Create(ctx, user))
	assert.NotEqual(t, uuid.Nil, user.ID)

	err := users.Create(ctx, &domain.User{Email: "A@X.com", PasswordHash: "hash"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	got, err := users.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = users.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestPostgres_PostPagination(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	users := NewUserRepository(db)
	posts := NewPostRepository(db)

	author := &domain.User{Email: "author@x.com", PasswordHash: "hash"}
	require.NoError(t, users.Create(ctx, author))

	var ids []uuid.UUID
	for i := 0; i < 7; i++ {
		p := &domain.Post{ID: uuid.New(), Title: "t", Content: "c", Author: author.ID}
		require.NoError(t, posts.Create(ctx, p))
		ids = append(ids, p.ID)
	}

	total, err := posts.Count(ctx, domain.PostFilter{Author: &author.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 7, total)

	seen := map[uuid.UUID]bool{}
	for offset := 0; offset < 7; offset += 3 {
		page, err := posts.List(ctx, domain.PostFilter{}, 3, offset)
		require.NoError(t, err)
		for i, p := range page {
			assert.False(t, seen[p.ID], "post %s returned twice", p.ID)
			seen[p.ID] = true
			if i > 0 {
				assert.False(t, p.CreatedAt.After(page[i-1].CreatedAt))
			}
		}
	}
	assert.Len(t, seen, len(ids))

	empty, err := posts.List(ctx, domain.PostFilter{}, 3, 30)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPostgres_PostUpdateDelete(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	users := NewUserRepository(db)
	posts := NewPostRepository(db)

	author := &domain.User{Email: "author@x.com", PasswordHash: "hash"}
	require.NoError(t, users.Create(ctx, author))

	p := &domain.Post{ID: uuid.New(), Title: "T", Content: "C", Author: author.ID}
	require.NoError(t, posts.Create(ctx, p))

	p.Title = "T2"
	require.NoError(t, posts.Update(ctx, p))
	got, err := posts.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "T2", got.Title)
	assert.Equal(t, author.ID, got.Author)

	require.NoError(t, posts.Delete(ctx, p.ID))
	_, err = posts.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}
