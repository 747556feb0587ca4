package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrBadRequest    = errors.New("bad request")
	ErrMisconfigured = errors.New("not configured")

	// Upstream failure categories, surfaced with the provider message.
	ErrStorage  = errors.New("storage error")
	ErrDelivery = errors.New("delivery error")
	ErrUpstream = errors.New("upstream error")

	ErrOTPNotFound    = errors.New("otp not found")
	ErrOTPExpired     = errors.New("otp expired")
	ErrOTPAlreadyUsed = errors.New("otp already used")
	ErrOTPMismatch    = errors.New("otp mismatch")

	ErrSessionExpired = errors.New("session expired")
)

// OpError ties an infrastructure failure to one of the upstream categories above.
// errors.Is matches both the category and the wrapped provider error.
type OpError struct {
	Kind error
	Err  error
}

func (e *OpError) Error() string { return e.Kind.Error() + ": " + e.Err.Error() }

func (e *OpError) Unwrap() []error { return []error{e.Kind, e.Err} }

// Wrap returns an *OpError of the given kind, or nil when err is nil.
func Wrap(kind, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Kind: kind, Err: err}
}

// BadRequest returns an error that matches ErrBadRequest and reads as msg,
// so handlers can return it to the client verbatim.
func BadRequest(msg string) error { return &badRequestError{msg: msg} }

type badRequestError struct{ msg string }

func (e *badRequestError) Error() string { return e.msg }

func (e *badRequestError) Is(target error) bool { return target == ErrBadRequest }
