package model

import "errors"

var (
	// ErrTokenRevoked signals that a cryptographically valid refresh token is
	// no longer a member of the user's active set. Refresh treats this as a
	// replay and revokes every outstanding session for the user.
	ErrTokenRevoked = errors.New("refresh token revoked")

	ErrTokenExpired  = errors.New("refresh token expired")
	ErrTokenMismatch = errors.New("refresh token mismatch")
)
