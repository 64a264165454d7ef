package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/easytravel/easytravel-server/internal/logger"
	"github.com/easytravel/easytravel-server/internal/model"
)

// Comment implements comment operations on posts.
type Comment struct {
	commentStore model.CommentStore
	postStore    model.PostStore
	logger       *logger.Logger
}

func NewComment(
	commentStore model.CommentStore,
	postStore model.PostStore,
	logger *logger.Logger,
) *Comment {
	return &Comment{
		commentStore: commentStore,
		postStore:    postStore,
		logger:       logger,
	}
}

// CreateComment adds a comment to an existing post.
func (s *Comment) CreateComment(ctx context.Context, userID, postID uuid.UUID, content string) (model.Comment, error) {
	if _, err := s.postStore.GetByID(ctx, postID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Comment{}, model.ErrNotFound
		}
		return model.Comment{}, fmt.Errorf("failed to get post by id: %w", err)
	}

	now := time.Now()
	comment := model.Comment{
		ID:        uuid.New(),
		PostID:    postID,
		OwnerID:   userID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.commentStore.Create(ctx, comment)
	if err != nil {
		return model.Comment{}, fmt.Errorf("failed to create comment: %w", err)
	}

	s.logger.Info("Comment service: comment created",
		"comment_id", created.ID,
		"post_id", postID)

	return created, nil
}

// GetComment returns a single comment.
func (s *Comment) GetComment(ctx context.Context, commentID uuid.UUID) (model.Comment, error) {
	return s.commentStore.GetByID(ctx, commentID)
}

// GetCommentsByPost returns a post's comments, oldest first.
func (s *Comment) GetCommentsByPost(ctx context.Context, postID uuid.UUID) ([]model.Comment, error) {
	return s.commentStore.GetByPostID(ctx, postID)
}

// UpdateComment changes the content of a comment the caller owns.
func (s *Comment) UpdateComment(ctx context.Context, userID, commentID uuid.UUID, content string) (model.Comment, error) {
	comment, err := s.commentStore.GetByID(ctx, commentID)
	if err != nil {
		return model.Comment{}, err
	}
	if comment.OwnerID != userID {
		return model.Comment{}, model.ErrForbidden
	}

	updated, err := s.commentStore.Update(ctx, commentID, content)
	if err != nil {
		return model.Comment{}, fmt.Errorf("failed to update comment: %w", err)
	}
	return updated, nil
}

// DeleteComment removes a comment the caller owns.
func (s *Comment) DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error {
	comment, err := s.commentStore.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.OwnerID != userID {
		return model.ErrForbidden
	}

	if err := s.commentStore.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	s.logger.Info("Comment service: comment deleted", "comment_id", commentID)
	return nil
}
