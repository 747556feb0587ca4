package handler

import (
	"errors"
	"net/http"

	"github.com/raatap-waitlist/internal/application/account"
	"github.com/raatap-waitlist/internal/domain"
	"github.com/raatap-waitlist/internal/transport/http/middleware"
)

// AuthHandler serves user sign-in and session inspection.
type AuthHandler struct {
	svc account.Service
}

func NewAuthHandler(svc account.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Google(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IDToken string `json:"id_token"`
	}
	if !decode(w, r, &body) {
		return
	}
	res, err := h.svc.SignInWithGoogle(r.Context(), body.IDToken)
	if err != nil {
		if errors.Is(err, domain.ErrMisconfigured) {
			writeError(w, http.StatusInternalServerError, "Google sign-in not configured")
			return
		}
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, map[string]*account.Session{"session": sess})
}
