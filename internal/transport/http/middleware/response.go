package middleware

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

type errorBody struct {
	Error string `json:"error"`
}

// writeJSONError writes the {"error": msg} envelope the handlers also use.
// Guard failures are never cached by intermediaries.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: msg})
}

// writeTooManyRequests adds a Retry-After hint, rounded up to whole seconds.
func writeTooManyRequests(w http.ResponseWriter, retryAfter time.Duration) {
	secs := int((retryAfter + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(secs))
	writeJSONError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
}
