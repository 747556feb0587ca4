package admin

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/raatap-waitlist/internal/domain"
	jwtinfra "github.com/raatap-waitlist/internal/infrastructure/jwt"
	"github.com/raatap-waitlist/internal/pkg/id"
	"golang.org/x/crypto/bcrypt"
)

const defaultSessionTTL = 24 * time.Hour

// Config carries the single admin account. PasswordHash (bcrypt) wins over Password.
type Config struct {
	Email        string
	Password     string
	PasswordHash string
	SessionTTL   time.Duration
}

func (c Config) configured() bool {
	return c.Email != "" && (c.Password != "" || c.PasswordHash != "")
}

type Service interface {
	// Login checks the credentials and returns a signed session token.
	Login(ctx context.Context, email, password string) (string, error)
	// Verify returns the admin email carried by a valid, unexpired token.
	Verify(ctx context.Context, token string) (string, error)
	SessionTTL() time.Duration
}

type tokenProvider interface {
	Sign(claims *jwtinfra.Claims) (string, error)
	Verify(tokenStr, audience string) (*jwtinfra.Claims, error)
}

type Option func(*service)

// WithClock overrides the time source used for issuing and aging sessions.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

type service struct {
	cfg    Config
	tokens tokenProvider
	now    func() time.Time
}

func NewService(cfg Config, tokens tokenProvider, opts ...Option) Service {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	s := &service{cfg: cfg, tokens: tokens, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) SessionTTL() time.Duration { return s.cfg.SessionTTL }

func (s *service) Login(_ context.Context, email, password string) (string, error) {
	if !s.cfg.configured() {
		return "", fmt.Errorf("admin credentials: %w", domain.ErrMisconfigured)
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.cfg.Email)) == 1
	passOK := s.checkPassword(password)
	if !emailOK || !passOK {
		slog.Warn("admin login rejected")
		return "", fmt.Errorf("invalid admin credentials: %w", domain.ErrUnauthorized)
	}

	now := s.now()
	token, err := s.tokens.Sign(&jwtinfra.Claims{
		Role: jwtinfra.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.cfg.Email,
			Audience:  jwt.ClaimStrings{jwtinfra.AudienceAdmin},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.SessionTTL)),
			ID:        id.New(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("sign admin session: %w", err)
	}
	slog.Info("admin login")
	return token, nil
}

func (s *service) checkPassword(password string) bool {
	if s.cfg.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.Password)) == 1
}

func (s *service) Verify(_ context.Context, token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("missing admin session: %w", domain.ErrUnauthorized)
	}
	if s.cfg.Email == "" {
		return "", fmt.Errorf("admin credentials: %w", domain.ErrMisconfigured)
	}

	claims, err := s.tokens.Verify(token, jwtinfra.AudienceAdmin)
	if err != nil {
		return "", err
	}
	if claims.Role != jwtinfra.RoleAdmin ||
		subtle.ConstantTimeCompare([]byte(claims.Subject), []byte(s.cfg.Email)) != 1 {
		return "", fmt.Errorf("admin session subject mismatch: %w", domain.ErrUnauthorized)
	}
	if claims.IssuedAt == nil {
		return "", fmt.Errorf("admin session missing iat: %w", domain.ErrUnauthorized)
	}
	// Age is measured from issuance, not from last use.
	if s.now().Sub(claims.IssuedAt.Time) >= s.cfg.SessionTTL {
		return "", fmt.Errorf("admin session too old: %w", domain.ErrSessionExpired)
	}
	return claims.Subject, nil
}
