package google

import (
	"context"
	"fmt"

	"github.com/raatap-waitlist/internal/domain"
	"google.golang.org/api/idtoken"
)

// Identity holds the verified claims extracted from a Google ID token.
type Identity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}

// Verifier verifies Google ID tokens against a specific client ID.
type Verifier struct {
	clientID string
}

func NewVerifier(clientID string) *Verifier {
	return &Verifier{clientID: clientID}
}

// Verify validates the Google ID token and returns the identity it carries.
func (v *Verifier) Verify(ctx context.Context, token string) (*Identity, error) {
	p, err := idtoken.Validate(ctx, token, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("invalid google token: %w", domain.ErrUnauthorized)
	}
	return identityFromClaims(p.Subject, p.Claims), nil
}

func identityFromClaims(sub string, claims map[string]any) *Identity {
	email, _ := claims["email"].(string)
	emailVerified, _ := claims["email_verified"].(bool)
	name, _ := claims["name"].(string)
	if name == "" {
		given, _ := claims["given_name"].(string)
		family, _ := claims["family_name"].(string)
		name = given
		if family != "" {
			if name != "" {
				name += " "
			}
			name += family
		}
	}
	return &Identity{
		Subject:       sub,
		Email:         email,
		EmailVerified: emailVerified,
		Name:          name,
	}
}
