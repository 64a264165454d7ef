package model

import "errors"

var (
	// ErrNotFound is returned by stores when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials is returned on a failed email/password login.
	ErrInvalidCredentials = errors.New("wrong email or password")

	// ErrInvalidToken is returned when a presented token fails signature or
	// expiry verification, or resolves to a user that no longer exists.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidAssertion is returned when a federated identity assertion
	// cannot be verified or lacks a verified email.
	ErrInvalidAssertion = errors.New("invalid identity assertion")

	// ErrMisconfigured is returned when a required configuration value,
	// such as the token signing secret, is absent.
	ErrMisconfigured = errors.New("missing required configuration")

	// ErrEmailTaken is returned when registration hits the email uniqueness constraint.
	ErrEmailTaken = errors.New("email already in use")

	// ErrUsernameTaken is returned when registration hits the username uniqueness constraint.
	ErrUsernameTaken = errors.New("username already in use")

	// ErrForbidden is returned when a caller attempts to mutate a resource
	// owned by another user.
	ErrForbidden = errors.New("forbidden")
)
