package identity

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"

	"github.com/easytravel/easytravel-server/internal/model"
)

// validateFunc matches idtoken.Validate; injected for tests.
type validateFunc func(ctx context.Context, token string, audience string) (*idtoken.Payload, error)

var _ model.IdentityVerifier = (*GoogleVerifier)(nil)

// GoogleVerifier validates Google-issued ID tokens against a configured
// client ID and extracts the verified profile.
type GoogleVerifier struct {
	audience string
	validate validateFunc
}

// NewGoogleVerifier creates a verifier for the given OAuth client ID.
// Fails if the client ID is not configured.
func NewGoogleVerifier(clientID string) (*GoogleVerifier, error) {
	if clientID == "" {
		return nil, fmt.Errorf("%w: google client id", model.ErrMisconfigured)
	}
	return &GoogleVerifier{
		audience: clientID,
		validate: idtoken.Validate,
	}, nil
}

// Verify validates the assertion signature and audience and returns the
// email, name, and picture it attests to. A payload without an email is
// rejected: the email is the key the local user record is provisioned under.
func (v *GoogleVerifier) Verify(ctx context.Context, assertion string) (model.IdentityClaims, error) {
	payload, err := v.validate(ctx, assertion, v.audience)
	if err != nil {
		return model.IdentityClaims{}, fmt.Errorf("failed to validate id token: %w", err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return model.IdentityClaims{}, fmt.Errorf("id token payload has no email")
	}

	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)

	return model.IdentityClaims{
		Email:   email,
		Name:    name,
		Picture: picture,
	}, nil
}
