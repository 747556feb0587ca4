package account

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/raatap-waitlist/internal/domain"
	"github.com/raatap-waitlist/internal/infrastructure/google"
	jwtinfra "github.com/raatap-waitlist/internal/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockVerifier struct{ mock.Mock }

func (m *mockVerifier) Verify(ctx context.Context, token string) (*google.Identity, error) {
	args := m.Called(ctx, token)
	if id, _ := args.Get(0).(*google.Identity); id != nil {
		return id, args.Error(1)
	}
	return nil, args.Error(1)
}

func newProvider(t *testing.T) *jwtinfra.Provider {
	t.Helper()
	p, err := jwtinfra.NewProvider("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	return p
}

func TestSignInWithGoogle_IssuesUserSession(t *testing.T) {
	v := &mockVerifier{}
	v.On("Verify", mock.Anything, "good-token").Return(&google.Identity{
		Subject: "1089", Email: "ravi@gmail.com", EmailVerified: true,
	}, nil)
	svc := NewService(v, newProvider(t))

	res, err := svc.SignInWithGoogle(context.Background(), "good-token")
	require.NoError(t, err)
	assert.Equal(t, "google:1089", res.Session.UserID)
	assert.NotEmpty(t, res.AccessToken)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), res.ExpiresAt, 2*time.Second)

	sess, err := svc.Authenticate(context.Background(), res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "google:1089", sess.UserID)
	assert.Equal(t, "ravi@gmail.com", sess.Email)
	assert.Equal(t, ProviderGoogle, sess.Provider)
	assert.True(t, sess.EmailVerified)
}

func TestSignInWithGoogle_InvalidToken(t *testing.T) {
	v := &mockVerifier{}
	v.On("Verify", mock.Anything, "bad").Return(nil, fmt.Errorf("invalid google token: %w", domain.ErrUnauthorized))

	_, err := NewService(v, newProvider(t)).SignInWithGoogle(context.Background(), "bad")
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestSignInWithGoogle_NotConfigured(t *testing.T) {
	_, err := NewService(nil, newProvider(t)).SignInWithGoogle(context.Background(), "tok")
	assert.True(t, errors.Is(err, domain.ErrMisconfigured))
}

func TestSignInWithGoogle_EmptyToken(t *testing.T) {
	_, err := NewService(&mockVerifier{}, newProvider(t)).SignInWithGoogle(context.Background(), "")
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestAuthenticate_RejectsAdminToken(t *testing.T) {
	p := newProvider(t)
	now := time.Now()
	adminToken, err := p.Sign(&jwtinfra.Claims{
		Role: jwtinfra.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin@raatap.com",
			Audience:  jwt.ClaimStrings{jwtinfra.AudienceAdmin},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	})
	require.NoError(t, err)

	_, err = NewService(nil, p).Authenticate(context.Background(), adminToken)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestAuthenticate_Garbage(t *testing.T) {
	_, err := NewService(nil, newProvider(t)).Authenticate(context.Background(), "garbage")
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}
