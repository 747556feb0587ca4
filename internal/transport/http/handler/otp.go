package handler

import (
	"net/http"

	"github.com/raatap-waitlist/internal/application/otp"
)

// OTPHandler serves email code issue and verification.
type OTPHandler struct {
	svc otp.Service
}

func NewOTPHandler(svc otp.Service) *OTPHandler {
	return &OTPHandler{svc: svc}
}

func (h *OTPHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req otp.IssueRequest
	if !decode(w, r, &req) {
		return
	}
	if !sameUser(w, r, req.UserID) {
		return
	}
	if err := h.svc.Issue(r.Context(), req); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Success: true, Message: "OTP sent successfully"})
}

func (h *OTPHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req otp.VerifyRequest
	if !decode(w, r, &req) {
		return
	}
	if !sameUser(w, r, req.UserID) {
		return
	}
	email, err := h.svc.Verify(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, VerifyEnvelope{
		Success: true,
		Message: "Email verified successfully",
		Email:   email,
	})
}
