package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/raatap-waitlist/internal/application/account"
	"github.com/raatap-waitlist/internal/domain"
)

type contextKey string

const (
	sessionKey contextKey = "session"
	adminKey   contextKey = "admin"
)

// Authenticator resolves a bearer token into a user session.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*account.Session, error)
}

// RequireUser rejects requests without a valid bearer session.
func RequireUser(a Authenticator) func(http.Handler) http.Handler {
	return userAuth(a, true)
}

// OptionalUser attaches the session when a bearer token is sent. A token
// that is present but invalid is still rejected.
func OptionalUser(a Authenticator) func(http.Handler) http.Handler {
	return userAuth(a, false)
}

func userAuth(a Authenticator, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" && !required {
				next.ServeHTTP(w, r)
				return
			}
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeJSONError(w, http.StatusUnauthorized, "missing or invalid authorization header")
				return
			}
			sess, err := a.Authenticate(r.Context(), strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				msg := "invalid token"
				if errors.Is(err, domain.ErrSessionExpired) {
					msg = "session expired"
				}
				writeJSONError(w, http.StatusUnauthorized, msg)
				return
			}
			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the user session attached by RequireUser or OptionalUser.
func SessionFromContext(ctx context.Context) (*account.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*account.Session)
	return s, ok
}
