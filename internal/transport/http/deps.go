package http

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/raatap-waitlist/internal/domain"
	"github.com/raatap-waitlist/internal/infrastructure/google"
	jwtinfra "github.com/raatap-waitlist/internal/infrastructure/jwt"
	"github.com/raatap-waitlist/internal/infrastructure/mail"
	"github.com/raatap-waitlist/internal/infrastructure/sns"
)

// OTPRepository is the minimal interface the router requires from a one-time code store.
type OTPRepository interface {
	Put(ctx context.Context, o *domain.OtpRecord) error
	Get(ctx context.Context, userID string) (*domain.OtpRecord, error)
	// MarkConsumed must fail with domain.ErrConflict unless the stored record
	// is unconsumed and still carries code.
	MarkConsumed(ctx context.Context, userID, code string, at time.Time) error
}

// ProfileRepository is the minimal interface the router requires from a profile store.
type ProfileRepository interface {
	Put(ctx context.Context, p *domain.Profile) error
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
}

// ObjectStore is the minimal interface the router requires from an object storage backend.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// IdentityVerifier checks third-party ID tokens.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*google.Identity, error)
}

// TokenProvider signs and verifies session tokens.
type TokenProvider interface {
	Sign(claims *jwtinfra.Claims) (string, error)
	Verify(tokenStr, audience string) (*jwtinfra.Claims, error)
}

type PlaceAutocompleter interface {
	Autocomplete(ctx context.Context, input string) ([]domain.Place, error)
}

type Geocoder interface {
	Search(ctx context.Context, q string, limit int) ([]domain.Place, error)
	Reverse(ctx context.Context, lat, lon string) (json.RawMessage, error)
}

// Deps holds all infrastructure dependencies for the router. Optional
// integrations are left nil when not configured.
type Deps struct {
	OTPRepo     OTPRepository
	ProfileRepo ProfileRepository
	Mailer      mail.Mailer
	Tokens      TokenProvider
	Geocoder    Geocoder

	SMSSender sns.SMSSender      // optional
	Exports   ObjectStore        // optional
	Google    IdentityVerifier   // optional
	Places    PlaceAutocompleter // optional

	// Now overrides the clock for every service; nil means time.Now.
	Now func() time.Time
}
