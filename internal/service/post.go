package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/easytravel/easytravel-server/internal/logger"
	"github.com/easytravel/easytravel-server/internal/model"
)

// ImagePrefix is the storage prefix and URL path segment for post images.
const ImagePrefix = "images"

// Post implements travel journal post operations.
type Post struct {
	postStore model.PostStore
	userStore model.UserStore
	storage   model.Storage
	logger    *logger.Logger
}

func NewPost(
	postStore model.PostStore,
	userStore model.UserStore,
	storage model.Storage,
	logger *logger.Logger,
) *Post {
	return &Post{
		postStore: postStore,
		userStore: userStore,
		storage:   storage,
		logger:    logger,
	}
}

// UploadImage stores an uploaded image and returns the URL it is served at.
func (s *Post) UploadImage(ctx context.Context, filename string, data io.Reader) (string, error) {
	key := uuid.NewString() + filepath.Ext(filename)
	if err := s.storage.Upload(ctx, ImagePrefix+"/"+key, data); err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return "/" + ImagePrefix + "/" + key, nil
}

// CreatePost creates a post owned by the given user.
func (s *Post) CreatePost(ctx context.Context, params model.CreatePostParams) (model.Post, error) {
	if _, err := s.userStore.GetByID(ctx, params.UserID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Post{}, model.ErrNotFound
		}
		return model.Post{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	images := params.Images
	if images == nil {
		images = []string{}
	}

	now := time.Now()
	post := model.Post{
		ID:        uuid.New(),
		OwnerID:   params.UserID,
		Title:     params.Title,
		Content:   params.Content,
		Location:  params.Location,
		Rating:    params.Rating,
		Images:    images,
		Likes:     []uuid.UUID{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.postStore.Create(ctx, post)
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info("Post service: post created",
		"post_id", created.ID,
		"owner_id", created.OwnerID)

	return created, nil
}

// GetPost returns a single post.
func (s *Post) GetPost(ctx context.Context, postID uuid.UUID) (model.Post, error) {
	return s.postStore.GetByID(ctx, postID)
}

// GetPosts returns all posts, newest first.
func (s *Post) GetPosts(ctx context.Context) ([]model.Post, error) {
	return s.postStore.GetAll(ctx)
}

// GetPostsByUser returns all posts owned by the given user.
func (s *Post) GetPostsByUser(ctx context.Context, ownerID uuid.UUID) ([]model.Post, error) {
	return s.postStore.GetByOwnerID(ctx, ownerID)
}

// UpdatePost updates a post the caller owns. Images attached to the post but
// absent from the update are removed from storage.
func (s *Post) UpdatePost(ctx context.Context, params model.UpdatePostParams) (model.Post, error) {
	post, err := s.postStore.GetByID(ctx, params.PostID)
	if err != nil {
		return model.Post{}, err
	}
	if post.OwnerID != params.UserID {
		return model.Post{}, model.ErrForbidden
	}

	keep := params.Images
	if keep == nil {
		keep = []string{}
	}

	for _, img := range post.Images {
		if !slices.Contains(keep, img) {
			s.deleteImage(ctx, img)
		}
	}

	post.Title = params.Title
	post.Content = params.Content
	post.Location = params.Location
	post.Rating = params.Rating
	post.Images = keep

	updated, err := s.postStore.Update(ctx, post)
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to update post: %w", err)
	}
	return updated, nil
}

// DeletePost removes a post the caller owns, along with its stored images.
func (s *Post) DeletePost(ctx context.Context, userID, postID uuid.UUID) error {
	post, err := s.postStore.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.OwnerID != userID {
		return model.ErrForbidden
	}

	if err := s.postStore.Delete(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	for _, img := range post.Images {
		s.deleteImage(ctx, img)
	}

	s.logger.Info("Post service: post deleted", "post_id", postID)
	return nil
}

// ToggleLike adds the user to the post's like set, or removes them if
// already present. Returns the updated post and whether it is now liked.
func (s *Post) ToggleLike(ctx context.Context, userID, postID uuid.UUID) (model.Post, bool, error) {
	post, err := s.postStore.GetByID(ctx, postID)
	if err != nil {
		return model.Post{}, false, err
	}

	liked := post.LikedBy(userID)
	var likes []uuid.UUID
	if liked {
		for _, id := range post.Likes {
			if id != userID {
				likes = append(likes, id)
			}
		}
	} else {
		likes = append(post.Likes, userID)
	}

	updated, err := s.postStore.SetLikes(ctx, postID, likes)
	if err != nil {
		return model.Post{}, false, fmt.Errorf("failed to set likes: %w", err)
	}

	return updated, !liked, nil
}

// deleteImage removes a stored image by its served URL. Storage cleanup
// failures do not fail the surrounding operation.
func (s *Post) deleteImage(ctx context.Context, imageURL string) {
	if !strings.HasPrefix(imageURL, "/"+ImagePrefix+"/") {
		return
	}
	key := ImagePrefix + "/" + path.Base(imageURL)
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Error("Post service: failed to delete image",
			"key", key,
			"error", err.Error())
	}
}
