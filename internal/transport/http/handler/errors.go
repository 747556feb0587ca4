package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/raatap-waitlist/internal/domain"
)

var otpMessages = map[error]string{
	domain.ErrOTPNotFound:    "No OTP found. Please request a new one.",
	domain.ErrOTPExpired:     "OTP has expired. Please request a new one.",
	domain.ErrOTPAlreadyUsed: "OTP already used. Please request a new one.",
	domain.ErrOTPMismatch:    "Invalid OTP. Please try again.",
}

// writeServiceError maps a service error onto a status code and client message.
func writeServiceError(w http.ResponseWriter, err error) {
	for sentinel, msg := range otpMessages {
		if errors.Is(err, sentinel) {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
	}

	var op *domain.OpError
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrSessionExpired):
		writeError(w, http.StatusUnauthorized, "Session expired")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "Conflict")
	case errors.Is(err, domain.ErrMisconfigured):
		slog.Error("service not configured", "error", err)
		writeError(w, http.StatusInternalServerError, "Service not configured")
	case errors.As(err, &op) && op.Kind == domain.ErrStorage:
		slog.Error("storage error", "error", err)
		writeError(w, http.StatusInternalServerError, "Database error: "+op.Err.Error())
	case errors.As(err, &op) && op.Kind == domain.ErrDelivery:
		slog.Error("delivery error", "error", err)
		writeError(w, http.StatusInternalServerError, "Email error: "+op.Err.Error())
	default:
		slog.Error("unhandled service error", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
