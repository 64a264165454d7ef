package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RefreshTokenStore persists the set of refresh tokens this server issued.
// A token is a valid session proof only while its row exists unrevoked.
type RefreshTokenStore interface {
	Create(ctx context.Context, token RefreshToken) error
	GetByJTI(ctx context.Context, jti string) (RefreshToken, error)
	// RotateByJTI revokes the token in a single conditional statement and
	// reports whether this call performed the revocation. Two concurrent
	// refreshes of the same token race on this update; exactly one wins.
	RotateByJTI(ctx context.Context, jti string) (bool, error)
	RevokeByJTI(ctx context.Context, jti string) error
	RevokeAllByUser(ctx context.Context, userID uuid.UUID) error
}

// RefreshToken is the server-side record of an issued refresh token.
type RefreshToken struct {
	ID             uuid.UUID
	JTI            string
	UserID         uuid.UUID
	TokenHash      []byte
	IssuedAt       time.Time
	ExpiresAt      time.Time
	RevokedAt      *time.Time
	RotatedFromJTI *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
