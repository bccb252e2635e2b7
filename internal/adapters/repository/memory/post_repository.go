package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/blog/internal/core/domain"
)

type postRecord struct {
	post domain.Post
}

type PostRepository struct {
	store *Store
}

func (r *PostRepository) Create(_ context.Context, post *domain.Post) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	now := r.store.timestamp()
	post.CreatedAt = now
	post.UpdatedAt = now

	r.store.posts[post.ID.String()] = postRecord{post: *post}
	return nil
}

func (r *PostRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Post, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.posts[id.String()]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	p := rec.post
	return &p, nil
}

func (r *PostRepository) List(_ context.Context, filter domain.PostFilter, limit, offset int) ([]*domain.Post, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matched := r.matching(filter)
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.String() > b.ID.String()
	})

	if offset < 0 || offset >= len(matched) {
		return []*domain.Post{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (r *PostRepository) Count(_ context.Context, filter domain.PostFilter) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return int64(len(r.matching(filter))), nil
}

func (r *PostRepository) Update(_ context.Context, post *domain.Post) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.posts[post.ID.String()]
	if !ok {
		return domain.ErrPostNotFound
	}

	rec.post.Title = post.Title
	rec.post.Content = post.Content
	rec.post.UpdatedAt = r.store.timestamp()
	r.store.posts[post.ID.String()] = rec

	*post = rec.post
	return nil
}

func (r *PostRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.posts[id.String()]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.store.posts, id.String())
	return nil
}

// matching must be called with the lock held.
func (r *PostRepository) matching(filter domain.PostFilter) []*domain.Post {
	var out []*domain.Post
	for _, rec := range r.store.posts {
		if filter.Author != nil && rec.post.Author != *filter.Author {
			continue
		}
		p := rec.post
		out = append(out, &p)
	}
	return out
}
