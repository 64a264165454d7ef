package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// FederatedSecret is the sentinel stored in place of a password hash for
// users provisioned through a federated identity provider. Such users have
// no local secret and can only log in through the provider.
const FederatedSecret = "federated"

// DefaultBio is assigned to users who register without a biography.
const DefaultBio = "I'm using EASYTRAVEL"

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	UpdateUsername(ctx context.Context, id uuid.UUID, username string) (User, error)
	UpdateBio(ctx context.Context, id uuid.UUID, bio string) (User, error)
	UpdateProfileImage(ctx context.Context, id uuid.UUID, profileImage string) (User, error)
}

// RegisterParams contains parameters for user registration.
type RegisterParams struct {
	Username string
	Email    string
	Password string
}

// User represents a stored user with authentication material.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	ProfileImage string
	Bio          string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsFederated reports whether the user was provisioned through a federated
// identity provider and has no local password.
func (u User) IsFederated() bool {
	return u.PasswordHash == FederatedSecret
}
