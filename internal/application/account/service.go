package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/raatap-waitlist/internal/domain"
	"github.com/raatap-waitlist/internal/infrastructure/google"
	jwtinfra "github.com/raatap-waitlist/internal/infrastructure/jwt"
	"github.com/raatap-waitlist/internal/pkg/id"
)

const (
	ProviderGoogle    = "google"
	defaultSessionTTL = 7 * 24 * time.Hour
)

// Session is the per-request view of a signed-in user.
type Session struct {
	UserID        string    `json:"user_id"`
	Email         string    `json:"email"`
	Provider      string    `json:"provider"`
	EmailVerified bool      `json:"email_verified"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// SignInResult is returned to the client after a successful sign-in.
type SignInResult struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Session     Session   `json:"session"`
}

type Service interface {
	SignInWithGoogle(ctx context.Context, idToken string) (*SignInResult, error)
	// Authenticate resolves a bearer token into a session.
	Authenticate(ctx context.Context, token string) (*Session, error)
}

type identityVerifier interface {
	Verify(ctx context.Context, token string) (*google.Identity, error)
}

type tokenProvider interface {
	Sign(claims *jwtinfra.Claims) (string, error)
	Verify(tokenStr, audience string) (*jwtinfra.Claims, error)
}

type Option func(*service)

func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

func WithSessionTTL(ttl time.Duration) Option {
	return func(s *service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

type service struct {
	google identityVerifier
	tokens tokenProvider
	now    func() time.Time
	ttl    time.Duration
}

// NewService builds the account service. verifier may be nil when Google
// sign-in is not configured.
func NewService(verifier identityVerifier, tokens tokenProvider, opts ...Option) Service {
	s := &service{google: verifier, tokens: tokens, now: time.Now, ttl: defaultSessionTTL}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) SignInWithGoogle(ctx context.Context, idToken string) (*SignInResult, error) {
	if s.google == nil {
		return nil, fmt.Errorf("google sign-in: %w", domain.ErrMisconfigured)
	}
	if strings.TrimSpace(idToken) == "" {
		return nil, domain.BadRequest("id_token is required")
	}

	ident, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sess := Session{
		UserID:        ProviderGoogle + ":" + ident.Subject,
		Email:         ident.Email,
		Provider:      ProviderGoogle,
		EmailVerified: ident.EmailVerified,
		ExpiresAt:     now.Add(s.ttl).Truncate(time.Second),
	}
	token, err := s.tokens.Sign(&jwtinfra.Claims{
		Role:          jwtinfra.RoleUser,
		Email:         sess.Email,
		Provider:      sess.Provider,
		EmailVerified: sess.EmailVerified,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.UserID,
			Audience:  jwt.ClaimStrings{jwtinfra.AudienceUser},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
			ID:        id.New(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("sign user session: %w", err)
	}

	slog.Info("user signed in", "user_id", sess.UserID, "provider", sess.Provider)
	return &SignInResult{AccessToken: token, ExpiresAt: sess.ExpiresAt, Session: sess}, nil
}

func (s *service) Authenticate(_ context.Context, token string) (*Session, error) {
	claims, err := s.tokens.Verify(token, jwtinfra.AudienceUser)
	if err != nil {
		return nil, err
	}
	if claims.Role != jwtinfra.RoleUser || claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, fmt.Errorf("not a user session: %w", domain.ErrUnauthorized)
	}
	return &Session{
		UserID:        claims.Subject,
		Email:         claims.Email,
		Provider:      claims.Provider,
		EmailVerified: claims.EmailVerified,
		ExpiresAt:     claims.ExpiresAt.Time,
	}, nil
}
