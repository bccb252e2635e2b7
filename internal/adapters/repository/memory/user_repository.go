package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/blog/internal/core/domain"
)

type userRecord struct {
	user  domain.User
	email string
}

type UserRepository struct {
	store *Store
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, rec := range r.store.users {
		if rec.email == email {
			u := rec.user
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.users[id.String()]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := rec.user
	return &u, nil
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, rec := range r.store.users {
		if rec.email == user.Email {
			return domain.ErrEmailTaken
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := r.store.timestamp()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.store.users[user.ID.String()] = userRecord{user: *user, email: user.Email}
	return nil
}

// Delete removes a user out of band. The API never deletes users; tests use
// it to exercise tokens whose subject no longer exists.
func (r *UserRepository) Delete(id uuid.UUID) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.users, id.String())
}
