package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/easytravel/easytravel-server/internal/logger"
	"github.com/easytravel/easytravel-server/internal/model"
)

// AuthService defines registration and login operations.
type AuthService interface {
	Register(ctx context.Context, params model.RegisterParams) (model.User, error)
	Login(ctx context.Context, email, password string) (model.TokenPair, error)
	FederatedLogin(ctx context.Context, assertion string) (model.TokenPair, model.User, error)
}

// TokenService defines token refresh and revoke operations.
type TokenService interface {
	Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error)
	RevokeByToken(ctx context.Context, refreshToken string) error
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
}

// Auth handles authentication endpoints.
type Auth struct {
	authService    AuthService
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		tokenService:   tokenService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
	Bio          string `json:"bio,omitempty"`
}

// The secret hash and refresh-token set never leave the server.
func toUserResponse(user model.User) userResponse {
	return userResponse{
		ID:           user.ID.String(),
		Username:     user.Username,
		Email:        user.Email,
		ProfileImage: user.ProfileImage,
		Bio:          user.Bio,
	}
}

type tokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserID       string `json:"userId"`
}

func toTokenResponse(pair model.TokenPair) tokenResponse {
	return tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		UserID:       pair.UserID.String(),
	}
}

// Register creates a new user from credentials.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	h.logger.Debug("Auth handler: processing registration request", "email", req.Email)

	user, err := h.authService.Register(r.Context(), model.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error("Auth handler: registration failed",
			"email", req.Email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and returns a token pair.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	h.logger.Debug("Auth handler: processing login request", "email", req.Email)

	pair, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: login failed",
			"email", req.Email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTokenResponse(pair))
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Refresh exchanges a refresh token for a new pair.
func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "refresh token is required")
		return
	}

	pair, err := h.tokenService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.logger.Error("Auth handler: token refresh failed", "error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: token refresh successful")

	writeJSON(w, http.StatusOK, toTokenResponse(pair))
}

// Logout revokes a single refresh token.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "refresh token is required")
		return
	}

	if err := h.tokenService.RevokeByToken(r.Context(), req.RefreshToken); err != nil {
		h.logger.Error("Auth handler: logout failed", "error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: logout successful")

	writeJSON(w, http.StatusOK, map[string]string{"message": "success"})
}

// LogoutAll revokes every refresh token the caller holds, ending all of
// their sessions at once.
func (h *Auth) LogoutAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "access denied")
		return
	}

	if err := h.tokenService.RevokeAllForUser(r.Context(), userID); err != nil {
		h.logger.Error("Auth handler: logout-all failed",
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: all sessions revoked", "user_id", userID)

	writeJSON(w, http.StatusOK, map[string]string{"message": "success"})
}

type federatedLoginRequest struct {
	Credential string `json:"credential"`
}

type federatedLoginResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         userResponse `json:"user"`
}

// FederatedLogin verifies a third-party identity assertion and returns a
// token pair, provisioning a local user on first login.
func (h *Auth) FederatedLogin(w http.ResponseWriter, r *http.Request) {
	var req federatedLoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Credential == "" {
		writeError(w, http.StatusBadRequest, "credential is required")
		return
	}

	pair, user, err := h.authService.FederatedLogin(r.Context(), req.Credential)
	if err != nil {
		h.logger.Error("Auth handler: federated login failed", "error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: federated login successful", "user_id", user.ID)

	writeJSON(w, http.StatusOK, federatedLoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User: userResponse{
			ID:           user.ID.String(),
			Username:     user.Username,
			ProfileImage: user.ProfileImage,
		},
	})
}
