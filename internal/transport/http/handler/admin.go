package handler

import (
	"errors"
	"net/http"

	"github.com/raatap-waitlist/internal/application/admin"
	"github.com/raatap-waitlist/internal/application/waitlist"
	"github.com/raatap-waitlist/internal/domain"
	"github.com/raatap-waitlist/internal/transport/http/middleware"
)

// AdminHandler serves the admin login flow and the waitlist dashboard.
type AdminHandler struct {
	auth         admin.Service
	waitlist     waitlist.Service
	secureCookie bool
}

func NewAdminHandler(auth admin.Service, wl waitlist.Service, secureCookie bool) *AdminHandler {
	return &AdminHandler{auth: auth, waitlist: wl, secureCookie: secureCookie}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}
	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, domain.ErrMisconfigured):
		writeError(w, http.StatusInternalServerError, "Admin credentials not configured")
		return
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "An error occurred")
		return
	}

	http.SetCookie(w, h.cookie(token, int(h.auth.SessionTTL().Seconds())))
	writeJSON(w, http.StatusOK, MessageEnvelope{Success: true})
}

func (h *AdminHandler) Verify(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(middleware.AdminCookie)
	if err != nil || c.Value == "" {
		writeJSON(w, http.StatusUnauthorized, AdminStatusEnvelope{})
		return
	}
	email, err := h.auth.Verify(r.Context(), c.Value)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, AdminStatusEnvelope{})
		return
	}
	writeJSON(w, http.StatusOK, AdminStatusEnvelope{Authenticated: true, Email: email})
}

func (h *AdminHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, h.cookie("", -1))
	writeJSON(w, http.StatusOK, MessageEnvelope{Success: true})
}

func (h *AdminHandler) Entries(w http.ResponseWriter, r *http.Request) {
	d, err := h.waitlist.Dashboard(r.Context(), queryFrom(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	url, err := h.waitlist.Export(r.Context(), queryFrom(r))
	if err != nil {
		if errors.Is(err, domain.ErrMisconfigured) {
			writeError(w, http.StatusInternalServerError, "Export storage not configured")
			return
		}
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ExportEnvelope{URL: url})
}

func (h *AdminHandler) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.AdminCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

func queryFrom(r *http.Request) waitlist.Query {
	q := r.URL.Query()
	return waitlist.Query{
		Search:      q.Get("q"),
		Institution: q.Get("institution"),
		Role:        q.Get("role"),
		Sort:        q.Get("sort"),
		Order:       q.Get("order"),
	}
}
