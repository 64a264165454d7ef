package handler

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/easytravel/easytravel-server/internal/logger"
	"github.com/easytravel/easytravel-server/internal/model"
)

// PostService defines travel journal post operations.
type PostService interface {
	CreatePost(ctx context.Context, params model.CreatePostParams) (model.Post, error)
	GetPost(ctx context.Context, postID uuid.UUID) (model.Post, error)
	GetPosts(ctx context.Context) ([]model.Post, error)
	GetPostsByUser(ctx context.Context, ownerID uuid.UUID) ([]model.Post, error)
	UpdatePost(ctx context.Context, params model.UpdatePostParams) (model.Post, error)
	DeletePost(ctx context.Context, userID, postID uuid.UUID) error
	ToggleLike(ctx context.Context, userID, postID uuid.UUID) (model.Post, bool, error)
	UploadImage(ctx context.Context, filename string, data io.Reader) (string, error)
}

// Post handles post endpoints.
type Post struct {
	postService    PostService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewPost creates a new Post handler.
func NewPost(postService PostService, contextManager model.ContextManager, logger *logger.Logger) *Post {
	return &Post{
		postService:    postService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type postResponse struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"ownerId"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Location      string    `json:"location"`
	Rating        int       `json:"rating"`
	Images        []string  `json:"images"`
	Likes         []string  `json:"likes"`
	CommentsCount int       `json:"commentsCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toPostResponse(post model.Post) postResponse {
	likes := make([]string, 0, len(post.Likes))
	for _, id := range post.Likes {
		likes = append(likes, id.String())
	}
	return postResponse{
		ID:            post.ID.String(),
		OwnerID:       post.OwnerID.String(),
		Title:         post.Title,
		Content:       post.Content,
		Location:      post.Location,
		Rating:        post.Rating,
		Images:        post.Images,
		Likes:         likes,
		CommentsCount: post.CommentsCount,
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
	}
}

func toPostsResponse(posts []model.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, post := range posts {
		out = append(out, toPostResponse(post))
	}
	return out
}

// CreatePost creates a post from a multipart form with optional images.
func (h *Post) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "access denied")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	title := r.FormValue("title")
	if title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	rating, _ := strconv.Atoi(r.FormValue("rating"))

	var images []string
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["images"] {
			file, err := header.Open()
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid image upload")
				return
			}
			url, err := h.postService.UploadImage(r.Context(), header.Filename, file)
			file.Close()
			if err != nil {
				h.logger.Error("Post handler: image upload failed", "error", err.Error())
				handleError(w, err)
				return
			}
			images = append(images, url)
		}
	}

	post, err := h.postService.CreatePost(r.Context(), model.CreatePostParams{
		UserID:   userID,
		Title:    title,
		Content:  r.FormValue("content"),
		Location: r.FormValue("location"),
		Rating:   rating,
		Images:   images,
	})
	if err != nil {
		h.logger.Error("Post handler: failed to create post",
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPostResponse(post))
}

// GetPosts returns all posts.
func (h *Post) GetPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.GetPosts(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPostsResponse(posts))
}

// GetPost returns a single post.
func (h *Post) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := h.postService.GetPost(r.Context(), postID)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPostResponse(post))
}

// GetPostsByUser returns all posts owned by a user.
func (h *Post) GetPostsByUser(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	posts, err := h.postService.GetPostsByUser(r.Context(), ownerID)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPostsResponse(posts))
}

type updatePostRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Location string   `json:"location"`
	Rating   int      `json:"rating"`
	Images   []string `json:"images"`
}

// UpdatePost updates a post the caller owns.
func (h *Post) UpdatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "access denied")
		return
	}

	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	var req updatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	post, err := h.postService.UpdatePost(r.Context(), model.UpdatePostParams{
		UserID:   userID,
		PostID:   postID,
		Title:    req.Title,
		Content:  req.Content,
		Location: req.Location,
		Rating:   req.Rating,
		Images:   req.Images,
	})
	if err != nil {
		h.logger.Error("Post handler: failed to update post",
			"post_id", postID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(post))
}

// DeletePost removes a post the caller owns.
func (h *Post) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "access denied")
		return
	}

	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := h.postService.DeletePost(r.Context(), userID, postID); err != nil {
		h.logger.Error("Post handler: failed to delete post",
			"post_id", postID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "post deleted successfully"})
}

type likeResponse struct {
	Message string   `json:"message"`
	Likes   []string `json:"likes"`
}

// ToggleLike likes the post, or unlikes it if the caller already liked it.
func (h *Post) ToggleLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "access denied")
		return
	}

	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	post, liked, err := h.postService.ToggleLike(r.Context(), userID, postID)
	if err != nil {
		handleError(w, err)
		return
	}

	message := "post unliked"
	if liked {
		message = "post liked"
	}

	writeJSON(w, http.StatusOK, likeResponse{
		Message: message,
		Likes:   toPostResponse(post).Likes,
	})
}
