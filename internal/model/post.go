package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PostStore defines persistence operations for posts.
type PostStore interface {
	Create(ctx context.Context, post Post) (Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (Post, error)
	GetAll(ctx context.Context) ([]Post, error)
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]Post, error)
	Update(ctx context.Context, post Post) (Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetLikes(ctx context.Context, id uuid.UUID, likes []uuid.UUID) (Post, error)
}

// Post represents a travel journal entry.
type Post struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	Title         string
	Content       string
	Location      string
	Rating        int
	Images        []string
	Likes         []uuid.UUID
	CommentsCount int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LikedBy reports whether the given user is in the post's like set.
func (p Post) LikedBy(userID uuid.UUID) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// CreatePostParams contains parameters to create a post.
type CreatePostParams struct {
	UserID   uuid.UUID
	Title    string
	Content  string
	Location string
	Rating   int
	Images   []string
}

// UpdatePostParams contains parameters to update a post. Images is the full
// set of image URLs to keep; anything previously attached but absent here is
// removed from storage.
type UpdatePostParams struct {
	UserID   uuid.UUID
	PostID   uuid.UUID
	Title    string
	Content  string
	Location string
	Rating   int
	Images   []string
}
