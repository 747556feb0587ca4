package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/raatap-waitlist/internal/application/waitlist"
	"github.com/raatap-waitlist/internal/domain"
)

// ProfileHandler serves waitlist profile submission and lookup.
type ProfileHandler struct {
	svc waitlist.Service
}

func NewProfileHandler(svc waitlist.Service) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

type submitProfileRequest struct {
	UserID string `json:"userId"`
	domain.ProfileInput
}

type profileEnvelope struct {
	Success bool            `json:"success,omitempty"`
	Profile *domain.Profile `json:"profile"`
}

func (h *ProfileHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitProfileRequest
	if !decode(w, r, &req) {
		return
	}
	if !sameUser(w, r, req.UserID) {
		return
	}
	p, err := h.svc.Submit(r.Context(), req.UserID, req.ProfileInput)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileEnvelope{Success: true, Profile: p})
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if !sameUser(w, r, userID) {
		return
	}
	p, err := h.svc.Get(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileEnvelope{Profile: p})
}
