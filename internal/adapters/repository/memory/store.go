// Package memory keeps users and posts in process memory. It backs the
// "memory" store driver and the handler and service tests; data does not
// survive a restart.
package memory

import (
	"sync"
	"time"
)

// Store holds both collections behind one lock so every single-record
// operation is atomic, as the database-backed stores guarantee.
type Store struct {
	mu    sync.RWMutex
	now   func() time.Time
	users map[string]userRecord
	posts map[string]postRecord
}

type Option func(*Store)

// WithClock sets the source of CreatedAt/UpdatedAt timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		now:   time.Now,
		users: make(map[string]userRecord),
		posts: make(map[string]postRecord),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{store: s}
}

func (s *Store) Posts() *PostRepository {
	return &PostRepository{store: s}
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}
