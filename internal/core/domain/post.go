package domain

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    uuid.UUID `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostFilter narrows a listing. A nil Author lists every post.
type PostFilter struct {
	Author *uuid.UUID
}

// OwnedBy reports whether userID is the author of the post.
func (p *Post) OwnedBy(userID uuid.UUID) bool {
	return p.Author == userID
}
