package waitlist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/raatap-waitlist/internal/domain"
	"github.com/raatap-waitlist/internal/pkg/id"
	"github.com/raatap-waitlist/internal/pkg/validate"
)

const (
	exportPrefix  = "exports/waitlist-"
	exportURLTTL  = 15 * time.Minute
	smsCountryTag = "+91"
)

// Dashboard is the admin table view: filtered entries plus whole-list stats.
type Dashboard struct {
	Entries      []domain.Profile   `json:"entries"`
	Stats        Stats              `json:"stats"`
	Institutions []InstitutionCount `json:"institutions"`
}

type Service interface {
	Submit(ctx context.Context, userID string, in domain.ProfileInput) (*domain.Profile, error)
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
	Dashboard(ctx context.Context, q Query) (*Dashboard, error)
	// Export uploads the filtered view as CSV and returns a short-lived download URL.
	Export(ctx context.Context, q Query) (string, error)
}

type profileStore interface {
	Put(ctx context.Context, p *domain.Profile) error
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
}

type otpLookup interface {
	Lookup(ctx context.Context, userID string) (*domain.OtpRecord, error)
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type Option func(*service)

// WithSMS enables the confirmation text after a successful submission.
func WithSMS(sender smsSender) Option {
	return func(s *service) { s.sms = sender }
}

// WithExports enables CSV exports to object storage.
func WithExports(store objectStore) Option {
	return func(s *service) { s.exports = store }
}

func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

type service struct {
	profiles profileStore
	otps     otpLookup
	sms      smsSender
	exports  objectStore
	now      func() time.Time
}

func NewService(profiles profileStore, otps otpLookup, opts ...Option) Service {
	s := &service{profiles: profiles, otps: otps, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Submit(ctx context.Context, userID string, in domain.ProfileInput) (*domain.Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.BadRequest("userId is required")
	}
	normalize(&in)
	if err := validate.Struct(in); err != nil {
		return nil, domain.BadRequest(err.Error())
	}

	verified, err := s.emailVerified(ctx, userID, in.InstitutionalEmail)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	p := profileFromInput(userID, in)
	p.EmailVerified = verified
	p.CreatedAt = now
	p.UpdatedAt = now

	existing, err := s.profiles.Get(ctx, userID)
	switch {
	case err == nil:
		p.CreatedAt = existing.CreatedAt
	case !errors.Is(err, domain.ErrNotFound):
		return nil, domain.Wrap(domain.ErrStorage, err)
	}

	if err := s.profiles.Put(ctx, p); err != nil {
		return nil, domain.Wrap(domain.ErrStorage, err)
	}
	slog.Info("waitlist profile saved", "user_id", userID, "email_verified", verified)

	s.confirmBySMS(ctx, p)
	return p, nil
}

// emailVerified is true only when the user's code was consumed for this exact address.
func (s *service) emailVerified(ctx context.Context, userID, email string) (bool, error) {
	rec, err := s.otps.Lookup(ctx, userID)
	if errors.Is(err, domain.ErrOTPNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return rec.Consumed && strings.EqualFold(rec.Email, email), nil
}

func (s *service) confirmBySMS(ctx context.Context, p *domain.Profile) {
	if s.sms == nil {
		return
	}
	msg := fmt.Sprintf("Hi %s, you're on the Raatap waitlist for %s. We'll text you when rides open up.",
		firstName(p.FullName), p.Institution)
	if err := s.sms.SendSMS(ctx, smsCountryTag+p.PhoneNumber, msg); err != nil {
		slog.Warn("waitlist sms failed", "user_id", p.UserID, "error", err)
	}
}

func (s *service) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	p, err := s.profiles.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, domain.Wrap(domain.ErrStorage, err)
	}
	return p, nil
}

func (s *service) List(ctx context.Context) ([]domain.Profile, error) {
	entries, err := s.profiles.List(ctx)
	if err != nil {
		return nil, domain.Wrap(domain.ErrStorage, err)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

func (s *service) Dashboard(ctx context.Context, q Query) (*Dashboard, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	stats, insts := Summarize(all)
	return &Dashboard{Entries: Apply(all, q), Stats: stats, Institutions: insts}, nil
}

func (s *service) Export(ctx context.Context, q Query) (string, error) {
	if s.exports == nil {
		return "", fmt.Errorf("export bucket: %w", domain.ErrMisconfigured)
	}
	all, err := s.List(ctx)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	if err := WriteCSV(&buf, Apply(all, q)); err != nil {
		return "", fmt.Errorf("render csv: %w", err)
	}

	key := exportPrefix + id.At(s.now()) + ".csv"
	if err := s.exports.Upload(ctx, key, strings.NewReader(buf.String()), "text/csv"); err != nil {
		return "", domain.Wrap(domain.ErrStorage, err)
	}
	url, err := s.exports.PresignedURL(ctx, key, exportURLTTL)
	if err != nil {
		return "", domain.Wrap(domain.ErrStorage, err)
	}
	slog.Info("waitlist exported", "key", key)
	return url, nil
}

func normalize(in *domain.ProfileInput) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	in.Institution = strings.TrimSpace(in.Institution)
	in.InstitutionalEmail = strings.TrimSpace(in.InstitutionalEmail)
}

func profileFromInput(userID string, in domain.ProfileInput) *domain.Profile {
	return &domain.Profile{
		UserID:             userID,
		FullName:           in.FullName,
		PhoneNumber:        in.PhoneNumber,
		Age:                in.Age,
		Gender:             in.Gender,
		Institution:        in.Institution,
		InstitutionalEmail: in.InstitutionalEmail,
		FromLocation:       in.FromLocation,
		ToLocation:         in.ToLocation,
		LeaveHomeTime:      in.LeaveHomeTime,
		LeaveCollegeTime:   in.LeaveCollegeTime,
		DaysOfCommute:      in.DaysOfCommute,
		PreferHosting:      in.PreferHosting,
		PreferTakingRide:   in.PreferTakingRide,
		VehicleType:        in.VehicleType,
		ComfortableWith:    in.ComfortableWith,
		AgreedToTerms:      in.AgreedToTerms,
	}
}

func firstName(full string) string {
	if f := strings.Fields(full); len(f) > 0 {
		return f[0]
	}
	return "there"
}
