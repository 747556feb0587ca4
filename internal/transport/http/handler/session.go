package handler

import (
	"net/http"

	"github.com/raatap-waitlist/internal/transport/http/middleware"
)

// sameUser rejects the request when a signed-in user acts on another user's id.
// Requests without a session pass through unchanged.
func sameUser(w http.ResponseWriter, r *http.Request, userID string) bool {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok || userID == "" || sess.UserID == userID {
		return true
	}
	writeError(w, http.StatusForbidden, "Forbidden")
	return false
}
