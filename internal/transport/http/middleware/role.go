package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/raatap-waitlist/internal/domain"
)

// AdminCookie is the name of the admin session cookie.
const AdminCookie = "admin_session"

// AdminVerifier checks an admin session token and returns the admin email.
type AdminVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// RequireAdmin allows the request only with a valid admin session cookie.
func RequireAdmin(v AdminVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(AdminCookie)
			if err != nil || c.Value == "" {
				writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			email, err := v.Verify(r.Context(), c.Value)
			switch {
			case errors.Is(err, domain.ErrMisconfigured):
				writeJSONError(w, http.StatusInternalServerError, "Admin credentials not configured")
				return
			case err != nil:
				writeJSONError(w, http.StatusUnauthorized, "Session expired")
				return
			}
			ctx := context.WithValue(r.Context(), adminKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminFromContext returns the admin email attached by RequireAdmin.
func AdminFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(adminKey).(string)
	return email, ok
}
