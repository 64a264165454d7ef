package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CommentStore defines persistence operations for comments.
type CommentStore interface {
	Create(ctx context.Context, comment Comment) (Comment, error)
	GetByID(ctx context.Context, id uuid.UUID) (Comment, error)
	GetByPostID(ctx context.Context, postID uuid.UUID) ([]Comment, error)
	Update(ctx context.Context, id uuid.UUID, content string) (Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByPostID(ctx context.Context, postID uuid.UUID) (int, error)
}

// Comment represents a comment on a post.
type Comment struct {
	ID        uuid.UUID
	PostID    uuid.UUID
	OwnerID   uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
