package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/easytravel/easytravel-server/internal/logger"
	"github.com/easytravel/easytravel-server/internal/model"
)

// UserService defines profile operations.
type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (model.User, error)
	UpdateUsername(ctx context.Context, id uuid.UUID, username string) (model.User, error)
	UpdateBio(ctx context.Context, id uuid.UUID, bio string) (model.User, error)
	UpdateProfilePicture(ctx context.Context, id uuid.UUID, filename string, data io.Reader) (model.User, error)
}

// User handles profile endpoints.
type User struct {
	userService    UserService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(userService UserService, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{
		userService:    userService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// GetUser returns a user's public profile.
func (h *User) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// GetUsername returns only the user's display name.
func (h *User) GetUsername(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"username": user.Username})
}

// callerID resolves the authenticated caller and checks that the path ID is
// the caller's own. Profile mutations are allowed only on one's own record.
func (h *User) callerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return uuid.Nil, false
	}

	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "access denied")
		return uuid.Nil, false
	}
	if userID != id {
		writeError(w, http.StatusForbidden, "forbidden")
		return uuid.Nil, false
	}

	return id, true
}

type updateUsernameRequest struct {
	Username string `json:"username"`
}

// UpdateUsername changes the caller's display name.
func (h *User) UpdateUsername(w http.ResponseWriter, r *http.Request) {
	id, ok := h.callerID(w, r)
	if !ok {
		return
	}

	var req updateUsernameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Username == "" {
		writeError(w, http.StatusBadRequest, "username cannot be empty")
		return
	}

	user, err := h.userService.UpdateUsername(r.Context(), id, req.Username)
	if err != nil {
		h.logger.Error("User handler: failed to update username",
			"user_id", id,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":  "username updated successfully",
		"username": user.Username,
	})
}

type updateBioRequest struct {
	Bio string `json:"bio"`
}

// UpdateBio changes the caller's biography.
func (h *User) UpdateBio(w http.ResponseWriter, r *http.Request) {
	id, ok := h.callerID(w, r)
	if !ok {
		return
	}

	var req updateBioRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Bio == "" {
		writeError(w, http.StatusBadRequest, "bio cannot be empty")
		return
	}

	user, err := h.userService.UpdateBio(r.Context(), id, req.Bio)
	if err != nil {
		h.logger.Error("User handler: failed to update bio",
			"user_id", id,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "bio updated successfully",
		"bio":     user.Bio,
	})
}

// maxUploadSize bounds multipart uploads (32 MiB).
const maxUploadSize = 32 << 20

// UpdateProfilePicture stores an uploaded image as the caller's profile picture.
func (h *User) UpdateProfilePicture(w http.ResponseWriter, r *http.Request) {
	id, ok := h.callerID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "no image uploaded")
		return
	}

	file, header, err := r.FormFile("profilePicture")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no image uploaded")
		return
	}
	defer file.Close()

	user, err := h.userService.UpdateProfilePicture(r.Context(), id, header.Filename, file)
	if err != nil {
		h.logger.Error("User handler: failed to update profile picture",
			"user_id", id,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":      "profile picture updated successfully",
		"profileImage": user.ProfileImage,
	})
}
