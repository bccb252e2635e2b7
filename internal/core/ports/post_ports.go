package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/blog/internal/core/domain"
)

// PostRepository is the content store. List orders by creation time
// descending with id descending as tie-break.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	List(ctx context.Context, filter domain.PostFilter, limit, offset int) ([]*domain.Post, error)
	Count(ctx context.Context, filter domain.PostFilter) (int64, error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreatePostInput struct {
	Title   string
	Content string
}

// UpdatePostInput carries a partial update; nil or blank fields keep their
// previous value.
type UpdatePostInput struct {
	Title   *string
	Content *string
}

type PostService interface {
	Create(ctx context.Context, author uuid.UUID, input CreatePostInput) (*domain.Post, error)
	Get(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context, page domain.Pagination) (*domain.PostPage, error)
	ListByAuthor(ctx context.Context, authorID string, page domain.Pagination) (*domain.PostPage, error)
	Update(ctx context.Context, caller uuid.UUID, id string, input UpdatePostInput) (*domain.Post, error)
	Delete(ctx context.Context, caller uuid.UUID, id string) error
}
