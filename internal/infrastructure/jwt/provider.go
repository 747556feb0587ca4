package jwtinfra

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/raatap-waitlist/internal/domain"
)

// Audiences keep admin and user tokens from being accepted in each other's place.
const (
	AudienceAdmin = "raatap-admin"
	AudienceUser  = "raatap-user"

	RoleAdmin = "admin"
	RoleUser  = "user"
)

const minSecretLen = 32

// Claims holds the JWT payload fields. Subject is the admin email for admin
// sessions and the user id for user sessions.
type Claims struct {
	Role          string `json:"role"`
	Email         string `json:"email,omitempty"`
	Provider      string `json:"provider,omitempty"`
	EmailVerified bool   `json:"email_verified,omitempty"`
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 session tokens.
type Provider struct {
	secret []byte
	now    func() time.Time
}

func NewProvider(secret string) (*Provider, error) {
	if len(secret) < minSecretLen {
		return nil, fmt.Errorf("session secret must be at least %d bytes", minSecretLen)
	}
	return &Provider{secret: []byte(secret), now: time.Now}, nil
}

// WithClock returns a copy of the provider that validates time-based claims against now.
func (p *Provider) WithClock(now func() time.Time) *Provider {
	cp := *p
	cp.now = now
	return &cp
}

// Sign signs claims as given; callers set IssuedAt, ExpiresAt and Audience.
func (p *Provider) Sign(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// Verify checks signature, audience and expiry. Expired tokens yield
// domain.ErrSessionExpired; every other failure yields domain.ErrUnauthorized.
func (p *Provider) Verify(tokenStr, audience string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("token expired: %w", domain.ErrSessionExpired)
		}
		return nil, fmt.Errorf("invalid token: %w", domain.ErrUnauthorized)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims: %w", domain.ErrUnauthorized)
	}
	return claims, nil
}
