package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/easytravel/easytravel-server/internal/logger"
	"github.com/easytravel/easytravel-server/internal/model"
)

// CommentService defines comment operations.
type CommentService interface {
	CreateComment(ctx context.Context, userID, postID uuid.UUID, content string) (model.Comment, error)
	GetComment(ctx context.Context, commentID uuid.UUID) (model.Comment, error)
	GetCommentsByPost(ctx context.Context, postID uuid.UUID) ([]model.Comment, error)
	UpdateComment(ctx context.Context, userID, commentID uuid.UUID, content string) (model.Comment, error)
	DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error
}

// Comment handles comment endpoints.
type Comment struct {
	commentService CommentService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewComment creates a new Comment handler.
func NewComment(commentService CommentService, contextManager model.ContextManager, logger *logger.Logger) *Comment {
	return &Comment{
		commentService: commentService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type commentRequest struct {
	Content string `json:"content"`
}

type commentResponse struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	OwnerID   string    `json:"ownerId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toCommentResponse(comment model.Comment) commentResponse {
	return commentResponse{
		ID:        comment.ID.String(),
		PostID:    comment.PostID.String(),
		OwnerID:   comment.OwnerID.String(),
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

// CreateComment adds a comment to a post.
func (h *Comment) CreateComment(w http.ResponseWriter, r *http.Request) {
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

	var req commentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "content cannot be empty")
		return
	}

	comment, err := h.commentService.CreateComment(r.Context(), userID, postID, req.Content)
	if err != nil {
		h.logger.Error("Comment handler: failed to create comment",
			"post_id", postID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCommentResponse(comment))
}

// GetComments returns a post's comments.
func (h *Comment) GetComments(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	comments, err := h.commentService.GetCommentsByPost(r.Context(), postID)
	if err != nil {
		handleError(w, err)
		return
	}

	out := make([]commentResponse, 0, len(comments))
	for _, comment := range comments {
		out = append(out, toCommentResponse(comment))
	}
	writeJSON(w, http.StatusOK, out)
}

// UpdateComment changes a comment the caller owns.
func (h *Comment) UpdateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "access denied")
		return
	}

	commentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	var req commentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "content cannot be empty")
		return
	}

	comment, err := h.commentService.UpdateComment(r.Context(), userID, commentID, req.Content)
	if err != nil {
		h.logger.Error("Comment handler: failed to update comment",
			"comment_id", commentID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCommentResponse(comment))
}

// DeleteComment removes a comment the caller owns.
func (h *Comment) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "access denied")
		return
	}

	commentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	if err := h.commentService.DeleteComment(r.Context(), userID, commentID); err != nil {
		h.logger.Error("Comment handler: failed to delete comment",
			"comment_id", commentID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "comment deleted successfully"})
}
