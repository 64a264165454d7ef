package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/easytravel/easytravel-server/internal/logger"
	"github.com/easytravel/easytravel-server/internal/model"
)

// Auth implements registration, password login, federated login, and
// profile management. Password and federated logins converge on the same
// session-creation path in TokenService.
type Auth struct {
	userStore    model.UserStore
	hasher       model.PasswordHasher
	verifier     model.IdentityVerifier
	storage      model.Storage
	tokenService *TokenService
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	verifier model.IdentityVerifier,
	storage model.Storage,
	tokenService *TokenService,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		verifier:     verifier,
		storage:      storage,
		tokenService: tokenService,
		logger:       logger,
	}
}

// Register creates a user with a hashed secret and the default biography.
func (a *Auth) Register(ctx context.Context, params model.RegisterParams) (model.User, error) {
	a.logger.Debug("Auth service: registering user",
		"username", params.Username,
		"email", params.Email)

	hash, err := a.hasher.Hash(params.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := model.User{
		ID:           uuid.New(),
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: hash,
		Bio:          model.DefaultBio,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := a.userStore.Create(ctx, user)
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", params.Email,
			"error", err.Error())
		return model.User{}, err
	}

	a.logger.Info("Auth service: user registered",
		"user_id", created.ID,
		"email", created.Email)

	return created, nil
}

// Login verifies credentials and creates a session. A missing user and a
// wrong password are indistinguishable to the caller.
func (a *Auth) Login(ctx context.Context, email, password string) (model.TokenPair, error) {
	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.TokenPair{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if user.IsFederated() {
		return model.TokenPair{}, model.ErrInvalidCredentials
	}

	if err := a.hasher.Compare(user.PasswordHash, password); err != nil {
		return model.TokenPair{}, model.ErrInvalidCredentials
	}

	pair, err := a.tokenService.Issue(ctx, user.ID)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	a.logger.Info("Auth service: user logged in", "user_id", user.ID)

	return pair, nil
}

// FederatedLogin verifies a third-party identity assertion and creates a
// session, provisioning a local user on first login with the verified email.
func (a *Auth) FederatedLogin(ctx context.Context, assertion string) (model.TokenPair, model.User, error) {
	claims, err := a.verifier.Verify(ctx, assertion)
	if err != nil {
		a.logger.Info("Auth service: identity assertion rejected", "error", err.Error())
		return model.TokenPair{}, model.User{}, fmt.Errorf("%w: %w", model.ErrInvalidAssertion, err)
	}

	user, err := a.userStore.GetByEmail(ctx, claims.Email)
	if errors.Is(err, model.ErrNotFound) {
		now := time.Now()
		user, err = a.userStore.Create(ctx, model.User{
			ID:           uuid.New(),
			Username:     claims.Name,
			Email:        claims.Email,
			PasswordHash: model.FederatedSecret,
			ProfileImage: claims.Picture,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return model.TokenPair{}, model.User{}, fmt.Errorf("failed to provision federated user: %w", err)
		}
		a.logger.Info("Auth service: provisioned federated user",
			"user_id", user.ID,
			"email", user.Email)
	} else if err != nil {
		return model.TokenPair{}, model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	pair, err := a.tokenService.Issue(ctx, user.ID)
	if err != nil {
		return model.TokenPair{}, model.User{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return pair, user, nil
}

// GetUser returns the user's public profile.
func (a *Auth) GetUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := a.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// UpdateUsername changes the caller's display name.
func (a *Auth) UpdateUsername(ctx context.Context, id uuid.UUID, username string) (model.User, error) {
	user, err := a.userStore.UpdateUsername(ctx, id, username)
	if err != nil {
		return model.User{}, err
	}

	a.logger.Info("Auth service: username updated", "user_id", id)
	return user, nil
}

// UpdateBio changes the caller's biography.
func (a *Auth) UpdateBio(ctx context.Context, id uuid.UUID, bio string) (model.User, error) {
	user, err := a.userStore.UpdateBio(ctx, id, bio)
	if err != nil {
		return model.User{}, err
	}

	a.logger.Info("Auth service: bio updated", "user_id", id)
	return user, nil
}

// ProfilePicturePrefix is the storage prefix and URL path segment for
// profile pictures.
const ProfilePicturePrefix = "profile_pictures"

// UpdateProfilePicture stores the uploaded image and points the user's
// profile at its served URL.
func (a *Auth) UpdateProfilePicture(ctx context.Context, id uuid.UUID, filename string, data io.Reader) (model.User, error) {
	if _, err := a.userStore.GetByID(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	key := uuid.NewString() + filepath.Ext(filename)
	if err := a.storage.Upload(ctx, ProfilePicturePrefix+"/"+key, data); err != nil {
		return model.User{}, fmt.Errorf("failed to upload profile picture: %w", err)
	}

	user, err := a.userStore.UpdateProfileImage(ctx, id, "/"+ProfilePicturePrefix+"/"+key)
	if err != nil {
		return model.User{}, err
	}

	a.logger.Info("Auth service: profile picture updated", "user_id", id)
	return user, nil
}
