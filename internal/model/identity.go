package model

import "context"

// IdentityVerifier validates a third-party identity assertion and yields the
// verified profile it attests to.
type IdentityVerifier interface {
	Verify(ctx context.Context, assertion string) (IdentityClaims, error)
}

// IdentityClaims is the verified profile extracted from an identity assertion.
type IdentityClaims struct {
	Email   string
	Name    string
	Picture string
}
