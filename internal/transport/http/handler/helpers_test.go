package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/raatap-waitlist/internal/application/account"
	"github.com/raatap-waitlist/internal/domain"
	"github.com/raatap-waitlist/internal/transport/http/middleware"
	"github.com/stretchr/testify/require"
)

// stubSessions treats the bearer token as the user id.
type stubSessions struct{}

func (stubSessions) Authenticate(_ context.Context, token string) (*account.Session, error) {
	if token == "" || token == "bad" {
		return nil, fmt.Errorf("invalid token: %w", domain.ErrUnauthorized)
	}
	return &account.Session{UserID: token, Provider: account.ProviderGoogle}, nil
}

func jsonReq(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	r := httptest.NewRequest(method, target, bytes.NewReader(b))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// serveAs runs h behind OptionalUser, signed in as userID when non-empty.
func serveAs(userID string, h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	if userID != "" {
		r.Header.Set("Authorization", "Bearer "+userID)
	}
	rr := httptest.NewRecorder()
	middleware.OptionalUser(stubSessions{})(h).ServeHTTP(rr, r)
	return rr
}

// withChiParam injects a chi URL param into the request context.
func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
	return out
}
