package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/blog/internal/core/domain"
	"github.com/vncsmyrnk/blog/internal/core/ports"
)

type postService struct {
	repo ports.PostRepository
}

func NewPostService(repo ports.PostRepository) ports.PostService {
	return &postService{
		repo: repo,
	}
}

func (s *postService) Create(ctx context.Context, author uuid.UUID, input ports.CreatePostInput) (*domain.Post, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", domain.ErrInvalidInput)
	}
	if author == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}

	post := &domain.Post{
		ID:      uuid.New(),
		Title:   input.Title,
		Content: input.Content,
		Author:  author,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("%w: failed to create post: %w", domain.ErrInternal, err)
	}

	return post, nil
}

func (s *postService) Get(ctx context.Context, id string) (*domain.Post, error) {
	postID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	return s.get(ctx, postID)
}

func (s *postService) List(ctx context.Context, page domain.Pagination) (*domain.PostPage, error) {
	return s.list(ctx, domain.PostFilter{}, page)
}

// ListByAuthor treats an author id that is not a UUID as an author with no
// posts.
func (s *postService) ListByAuthor(ctx context.Context, authorID string, page domain.Pagination) (*domain.PostPage, error) {
	author, err := uuid.Parse(authorID)
	if err != nil {
		page = page.Normalize(domain.DefaultPageSize, 0)
		return &domain.PostPage{Posts: []*domain.Post{}, Page: page.Page, Limit: page.Limit}, nil
	}

	return s.list(ctx, domain.PostFilter{Author: &author}, page)
}

func (s *postService) Update(ctx context.Context, caller uuid.UUID, id string, input ports.UpdatePostInput) (*domain.Post, error) {
	post, err := s.getOwned(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil && strings.TrimSpace(*input.Title) != "" {
		post.Title = *input.Title
	}
	if input.Content != nil && strings.TrimSpace(*input.Content) != "" {
		post.Content = *input.Content
	}

	if err := s.repo.Update(ctx, post); err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: failed to update post: %w", domain.ErrInternal, err)
	}

	return post, nil
}

func (s *postService) Delete(ctx context.Context, caller uuid.UUID, id string) error {
	post, err := s.getOwned(ctx, caller, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, post.ID); err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return err
		}
		return fmt.Errorf("%w: failed to delete post: %w", domain.ErrInternal, err)
	}
	return nil
}

func (s *postService) get(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: failed to get post: %w", domain.ErrInternal, err)
	}
	return post, nil
}

// getOwned loads the post and checks the caller is its author. The check and
// the following write are not atomic; two racing requests for the same post
// are tolerated.
func (s *postService) getOwned(ctx context.Context, caller uuid.UUID, id string) (*domain.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.OwnedBy(caller) {
		return nil, domain.ErrForbidden
	}
	return post, nil
}

func (s *postService) list(ctx context.Context, filter domain.PostFilter, page domain.Pagination) (*domain.PostPage, error) {
	page = page.Normalize(domain.DefaultPageSize, 0)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to count posts: %w", domain.ErrInternal, err)
	}

	posts, err := s.repo.List(ctx, filter, page.Limit, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list posts: %w", domain.ErrInternal, err)
	}
	if posts == nil {
		posts = []*domain.Post{}
	}

	return &domain.PostPage{
		Posts: posts,
		Total: total,
		Page:  page.Page,
		Limit: page.Limit,
	}, nil
}
