package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/easytravel/easytravel-server/internal/logger"
	"github.com/easytravel/easytravel-server/internal/model"
)

// TokenService owns the refresh-token lifecycle: it issues token pairs,
// rotates refresh tokens on use, and revokes them on logout or replay.
// Access tokens are never persisted; a refresh token is valid only while its
// store record is unrevoked.
type TokenService struct {
	manager    model.TokenManager
	store      model.RefreshTokenStore
	userStore  model.UserStore
	refreshTTL time.Duration
	logger     *logger.Logger
}

func NewTokenService(
	manager model.TokenManager,
	store model.RefreshTokenStore,
	userStore model.UserStore,
	refreshTTL time.Duration,
	logger *logger.Logger,
) *TokenService {
	return &TokenService{
		manager:    manager,
		store:      store,
		userStore:  userStore,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

// Issue mints a token pair for the user and registers the refresh token in
// the user's active set.
func (s *TokenService) Issue(ctx context.Context, userID uuid.UUID) (model.TokenPair, error) {
	return s.issue(ctx, userID, nil)
}

func (s *TokenService) issue(ctx context.Context, userID uuid.UUID, rotatedFromJTI *string) (model.TokenPair, error) {
	access, err := s.manager.GenerateAccessToken(userID)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue access: %w", err)
	}

	refresh, jti, err := s.manager.GenerateRefreshToken(userID)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue refresh: %w", err)
	}

	now := time.Now()
	rt := model.RefreshToken{
		ID:             uuid.New(),
		JTI:            jti,
		UserID:         userID,
		TokenHash:      hashRefresh(refresh),
		IssuedAt:       now,
		ExpiresAt:      now.Add(s.refreshTTL),
		RotatedFromJTI: rotatedFromJTI,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.store.Create(ctx, rt); err != nil {
		return model.TokenPair{}, fmt.Errorf("persist refresh: %w", err)
	}

	return model.TokenPair{AccessToken: access, RefreshToken: refresh, UserID: userID}, nil
}

// Refresh exchanges a valid, still-registered refresh token for a new pair.
// Each refresh token is single-use: the presented token is revoked before
// the replacement is minted. A cryptographically valid token that is no
// longer in the user's active set is treated as a replay, and every session
// for that user is revoked in response.
func (s *TokenService) Refresh(ctx context.Context, presentedRefresh string) (model.TokenPair, error) {
	userID, jti, err := s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("%w: %w", model.ErrInvalidToken, err)
	}

	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.TokenPair{}, model.ErrInvalidToken
		}
		return model.TokenPair{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	rt, err := s.store.GetByJTI(ctx, jti)
	if errors.Is(err, model.ErrNotFound) {
		return model.TokenPair{}, s.revokeOnReplay(ctx, userID, jti)
	}
	if err != nil {
		return model.TokenPair{}, err
	}

	if err := validateRecord(rt, hashRefresh(presentedRefresh), time.Now()); err != nil {
		if errors.Is(err, model.ErrTokenRevoked) {
			return model.TokenPair{}, s.revokeOnReplay(ctx, userID, jti)
		}
		return model.TokenPair{}, fmt.Errorf("%w: %w", model.ErrInvalidToken, err)
	}

	// The conditional rotation is the serialization point for concurrent
	// refreshes of the same token: exactly one caller wins.
	won, err := s.store.RotateByJTI(ctx, jti)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("rotate refresh: %w", err)
	}
	if !won {
		return model.TokenPair{}, s.revokeOnReplay(ctx, userID, jti)
	}

	rotatedFrom := rt.JTI
	pair, err := s.issue(ctx, userID, &rotatedFrom)
	if err != nil {
		return model.TokenPair{}, err
	}

	return pair, nil
}

// revokeOnReplay invalidates all outstanding sessions for the user and
// returns ErrTokenRevoked. Reaching for an already-consumed refresh token is
// the one observable sign of a stolen token.
func (s *TokenService) revokeOnReplay(ctx context.Context, userID uuid.UUID, jti string) error {
	s.logger.Info("Token service: refresh token replay detected, revoking all sessions",
		"user_id", userID,
		"jti", jti)

	if err := s.store.RevokeAllByUser(ctx, userID); err != nil {
		return fmt.Errorf("revoke all sessions: %w", err)
	}
	return model.ErrTokenRevoked
}

// RevokeByToken removes a single refresh token from the user's active set.
// Unlike Refresh, an already-absent token is not treated as a replay signal.
func (s *TokenService) RevokeByToken(ctx context.Context, presentedRefresh string) error {
	userID, jti, err := s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrInvalidToken, err)
	}

	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrInvalidToken
		}
		return fmt.Errorf("failed to get user by id: %w", err)
	}

	return s.store.RevokeByJTI(ctx, jti)
}

// RevokeAllForUser ends every session for the user.
func (s *TokenService) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	return s.store.RevokeAllByUser(ctx, userID)
}

// GetUserID resolves the user ID from an access token. Validity is purely
// cryptographic and time-based; the refresh-token set is not consulted.
func (s *TokenService) GetUserID(ctx context.Context, token string) (uuid.UUID, error) {
	return s.manager.ParseAccessToken(token)
}

func hashRefresh(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}

func validateRecord(rt model.RefreshToken, presentedHash []byte, now time.Time) error {
	if rt.RevokedAt != nil {
		return model.ErrTokenRevoked
	}
	if now.After(rt.ExpiresAt) {
		return model.ErrTokenExpired
	}
	if !equalBytes(rt.TokenHash, presentedHash) {
		return model.ErrTokenMismatch
	}
	return nil
}

func equalBytes(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
