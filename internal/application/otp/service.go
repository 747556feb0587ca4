package otp

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/raatap-waitlist/internal/domain"
	"github.com/raatap-waitlist/internal/infrastructure/mail"
)

const defaultTTL = 10 * time.Minute

type IssueRequest struct {
	Email  string `json:"email"`
	UserID string `json:"userId"`
}

type VerifyRequest struct {
	Code   string `json:"otp"`
	UserID string `json:"userId"`
}

type Service interface {
	// Issue stores a fresh code for the user and emails it.
	Issue(ctx context.Context, req IssueRequest) error
	// Verify consumes the user's code and returns the email it was issued to.
	Verify(ctx context.Context, req VerifyRequest) (string, error)
	// Lookup returns the current record for the user, consumed or not.
	Lookup(ctx context.Context, userID string) (*domain.OtpRecord, error)
}

type otpStore interface {
	Put(ctx context.Context, o *domain.OtpRecord) error
	Get(ctx context.Context, userID string) (*domain.OtpRecord, error)
	MarkConsumed(ctx context.Context, userID, code string, at time.Time) error
}

type Option func(*service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// WithCodeGenerator overrides code generation.
func WithCodeGenerator(gen func() (string, error)) Option {
	return func(s *service) { s.generate = gen }
}

// WithTTL sets how long an issued code stays valid.
func WithTTL(ttl time.Duration) Option {
	return func(s *service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

type service struct {
	store    otpStore
	mailer   mail.Mailer
	now      func() time.Time
	generate func() (string, error)
	ttl      time.Duration
}

func NewService(store otpStore, mailer mail.Mailer, opts ...Option) Service {
	s := &service{
		store:    store,
		mailer:   mailer,
		now:      time.Now,
		generate: GenerateCode,
		ttl:      defaultTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Issue(ctx context.Context, req IssueRequest) error {
	email := strings.TrimSpace(req.Email)
	userID := strings.TrimSpace(req.UserID)
	if email == "" || userID == "" {
		return domain.BadRequest("Email and userId are required")
	}

	code, err := s.generate()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	now := s.now().UTC()
	rec := &domain.OtpRecord{
		UserID:    userID,
		Email:     email,
		Code:      code,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.store.Put(ctx, rec); err != nil {
		return domain.Wrap(domain.ErrStorage, err)
	}

	msg, err := mail.OTPMessage(email, code, s.ttl, now)
	if err != nil {
		return domain.Wrap(domain.ErrDelivery, err)
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		slog.Error("otp email delivery failed", "user_id", userID, "error", err)
		return domain.Wrap(domain.ErrDelivery, err)
	}

	slog.Info("otp issued", "user_id", userID)
	return nil
}

func (s *service) Verify(ctx context.Context, req VerifyRequest) (string, error) {
	userID := strings.TrimSpace(req.UserID)
	if req.Code == "" || userID == "" {
		return "", domain.BadRequest("OTP and userId are required")
	}

	rec, err := s.load(ctx, userID)
	if err != nil {
		return "", err
	}
	if err := s.check(rec, req.Code); err != nil {
		return "", err
	}

	err = s.store.MarkConsumed(ctx, userID, rec.Code, s.now())
	if errors.Is(err, domain.ErrConflict) {
		return "", s.classifyLostRace(ctx, userID, req.Code)
	}
	if err != nil {
		return "", domain.Wrap(domain.ErrStorage, err)
	}

	slog.Info("otp verified", "user_id", userID)
	return rec.Email, nil
}

func (s *service) Lookup(ctx context.Context, userID string) (*domain.OtpRecord, error) {
	return s.load(ctx, userID)
}

func (s *service) load(ctx context.Context, userID string) (*domain.OtpRecord, error) {
	rec, err := s.store.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrOTPNotFound
	}
	if err != nil {
		return nil, domain.Wrap(domain.ErrStorage, err)
	}
	return rec, nil
}

// check applies the ordered verification rules: expiry, then reuse, then the code itself.
func (s *service) check(rec *domain.OtpRecord, code string) error {
	if rec.Expired(s.now()) {
		return domain.ErrOTPExpired
	}
	if rec.Consumed {
		return domain.ErrOTPAlreadyUsed
	}
	if subtle.ConstantTimeCompare([]byte(rec.Code), []byte(code)) != 1 {
		return domain.ErrOTPMismatch
	}
	return nil
}

// classifyLostRace reports why the conditional consume failed, based on a fresh read.
func (s *service) classifyLostRace(ctx context.Context, userID, code string) error {
	rec, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.check(rec, code); err != nil {
		return err
	}
	return domain.ErrOTPAlreadyUsed
}

var codeSpan = big.NewInt(900000)

// GenerateCode returns a six-digit code drawn uniformly from [100000, 999999].
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpan)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
