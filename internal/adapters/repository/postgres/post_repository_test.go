package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/blog/internal/core/domain"
)

var postCols = []string{"id", "title", "content", "author_id", "created_at", "updated_at"}

func TestPostRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostRepository(db)

	post := &domain.Post{ID: uuid.New(), Title: "T", Content: "C", Author: uuid.New()}
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO posts (id, title, content, author_id)`)).
		WithArgs(post.ID, "T", "C", post.Author).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	require.NoError(t, repo.Create(context.Background(), post))
	assert.Equal(t, now, post.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostRepository(db)

	id, author := uuid.New(), uuid.New()
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM posts WHERE id = $1`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(postCols).AddRow(id.String(), "T", "C", author.String(), now, now))

	post, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, author, post.Author)
	assert.Equal(t, "T", post.Title)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM posts WHERE id = $1`)).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err = repo.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestPostRepository_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows(postCols).
		AddRow(uuid.NewString(), "b", "c", uuid.NewString(), now, now).
		AddRow(uuid.NewString(), "a", "c", uuid.NewString(), now.Add(-time.Minute), now)

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`)).
		WithArgs(5, 10).
		WillReturnRows(rows)

	posts, err := repo.List(context.Background(), domain.PostFilter{}, 5, 10)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "b", posts[0].Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_ListByAuthor(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostRepository(db)

	author := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE author_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`)).
		WithArgs(author, 5, 0).
		WillReturnRows(sqlmock.NewRows(postCols))

	posts, err := repo.List(context.Background(), domain.PostFilter{Author: &author}, 5, 0)
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestPostRepository_Count(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM posts`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	total, err := repo.Count(context.Background(), domain.PostFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 12, total)

	author := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM posts WHERE author_id = $1`)).
		WithArgs(author).
		WillReturnError(errors.New("db down"))

	_, err = repo.Count(context.Background(), domain.PostFilter{Author: &author})
	assert.ErrorContains(t, err, "db down")
}

func TestPostRepository_Update(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostRepository(db)

	post := &domain.Post{ID: uuid.New(), Title: "T2", Content: "C"}
	author := uuid.New()
	created := time.Now().Add(-time.Hour).UTC()
	updated := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE posts`)).
		WithArgs(post.ID, "T2", "C").
		WillReturnRows(sqlmock.NewRows([]string{"author_id", "created_at", "updated_at"}).AddRow(author.String(), created, updated))

	require.NoError(t, repo.Update(context.Background(), post))
	assert.Equal(t, author, post.Author)
	assert.Equal(t, updated, post.UpdatedAt)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE posts`)).
		WillReturnError(sql.ErrNoRows)
	assert.ErrorIs(t, repo.Update(context.Background(), post), domain.ErrPostNotFound)
}

func TestPostRepository_Delete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostRepository(db)

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM posts WHERE id = $1`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), id))

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM posts WHERE id = $1`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), id), domain.ErrPostNotFound)
}
