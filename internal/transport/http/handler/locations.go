package handler

import (
	"errors"
	"net/http"

	"github.com/raatap-waitlist/internal/application/location"
	"github.com/raatap-waitlist/internal/domain"
)

// LocationHandler proxies place search and reverse geocoding.
type LocationHandler struct {
	svc location.Service
}

func NewLocationHandler(svc location.Service) *LocationHandler {
	return &LocationHandler{svc: svc}
}

func (h *LocationHandler) Search(w http.ResponseWriter, r *http.Request) {
	places, err := h.svc.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to search locations")
		return
	}
	writeJSON(w, http.StatusOK, places)
}

func (h *LocationHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	raw, err := h.svc.Reverse(r.Context(), q.Get("lat"), q.Get("lon"))
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Failed to get address")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}
