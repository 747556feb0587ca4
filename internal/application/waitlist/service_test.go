package waitlist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/raatap-waitlist/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockProfileStore struct{ mock.Mock }

func (m *mockProfileStore) Put(ctx context.Context, p *domain.Profile) error {
	return m.Called(ctx, p).Error(0)
}
func (m *mockProfileStore) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if p, _ := args.Get(0).(*domain.Profile); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockProfileStore) List(ctx context.Context) ([]domain.Profile, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]domain.Profile)
	return ps, args.Error(1)
}

type mockOTPLookup struct{ mock.Mock }

func (m *mockOTPLookup) Lookup(ctx context.Context, userID string) (*domain.OtpRecord, error) {
	args := m.Called(ctx, userID)
	if r, _ := args.Get(0).(*domain.OtpRecord); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSMS struct{ mock.Mock }

func (m *mockSMS) SendSMS(ctx context.Context, to, message string) error {
	return m.Called(ctx, to, message).Error(0)
}

type mockObjectStore struct {
	mock.Mock
	body string
}

func (m *mockObjectStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) error {
	b, _ := io.ReadAll(r)
	m.body = string(b)
	return m.Called(ctx, key, contentType).Error(0)
}
func (m *mockObjectStore) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}

func validInput() domain.ProfileInput {
	return domain.ProfileInput{
		FullName:           "Ravi Kumar",
		PhoneNumber:        "9876543210",
		Age:                21,
		Gender:             "male",
		Institution:        "IIT Hyderabad",
		InstitutionalEmail: "ravi@iith.ac.in",
		FromLocation:       "Gachibowli",
		ToLocation:         "IIT Hyderabad, Kandi",
		LeaveHomeTime:      "08:00",
		LeaveCollegeTime:   "17:30",
		DaysOfCommute:      []string{"mon", "tue"},
		PreferHosting:      true,
		VehicleType:        "2_wheeler",
		ComfortableWith:    "both",
		AgreedToTerms:      true,
	}
}

var now = time.Date(2026, 2, 10, 10, 0, 0, 0, time.UTC)

// --- tests ---

func TestSubmit_VerifiedWhenOTPConsumedForSameEmail(t *testing.T) {
	profiles := &mockProfileStore{}
	otps := &mockOTPLookup{}
	otps.On("Lookup", mock.Anything, "u1").Return(&domain.OtpRecord{Email: "RAVI@iith.ac.in", Consumed: true}, nil)
	profiles.On("Get", mock.Anything, "u1").Return(nil, fmt.Errorf("profile: %w", domain.ErrNotFound))
	profiles.On("Put", mock.Anything, mock.AnythingOfType("*domain.Profile")).Return(nil)

	svc := NewService(profiles, otps, WithClock(func() time.Time { return now }))
	p, err := svc.Submit(context.Background(), "u1", validInput())
	require.NoError(t, err)

	assert.True(t, p.EmailVerified)
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, now, p.CreatedAt)
	profiles.AssertExpectations(t)
}

func TestSubmit_NotVerified(t *testing.T) {
	cases := map[string]*domain.OtpRecord{
		"unconsumed":    {Email: "ravi@iith.ac.in", Consumed: false},
		"other address": {Email: "ravi@gmail.com", Consumed: true},
	}
	for name, rec := range cases {
		t.Run(name, func(t *testing.T) {
			profiles := &mockProfileStore{}
			otps := &mockOTPLookup{}
			otps.On("Lookup", mock.Anything, "u1").Return(rec, nil)
			profiles.On("Get", mock.Anything, "u1").Return(nil, domain.ErrNotFound)
			profiles.On("Put", mock.Anything, mock.Anything).Return(nil)

			p, err := NewService(profiles, otps).Submit(context.Background(), "u1", validInput())
			require.NoError(t, err)
			assert.False(t, p.EmailVerified)
		})
	}

	t.Run("no otp", func(t *testing.T) {
		profiles := &mockProfileStore{}
		otps := &mockOTPLookup{}
		otps.On("Lookup", mock.Anything, "u1").Return(nil, domain.ErrOTPNotFound)
		profiles.On("Get", mock.Anything, "u1").Return(nil, domain.ErrNotFound)
		profiles.On("Put", mock.Anything, mock.Anything).Return(nil)

		p, err := NewService(profiles, otps).Submit(context.Background(), "u1", validInput())
		require.NoError(t, err)
		assert.False(t, p.EmailVerified)
	})
}

func TestSubmit_PreservesCreatedAt(t *testing.T) {
	first := now.Add(-72 * time.Hour)
	profiles := &mockProfileStore{}
	otps := &mockOTPLookup{}
	otps.On("Lookup", mock.Anything, "u1").Return(nil, domain.ErrOTPNotFound)
	profiles.On("Get", mock.Anything, "u1").Return(&domain.Profile{UserID: "u1", CreatedAt: first}, nil)
	profiles.On("Put", mock.Anything, mock.Anything).Return(nil)

	p, err := NewService(profiles, otps, WithClock(func() time.Time { return now })).
		Submit(context.Background(), "u1", validInput())
	require.NoError(t, err)
	assert.Equal(t, first, p.CreatedAt)
	assert.Equal(t, now, p.UpdatedAt)
}

func TestSubmit_Validation(t *testing.T) {
	cases := []struct {
		name   string
		field  string
		mutate func(*domain.ProfileInput)
	}{
		{"short phone", "phone_number", func(in *domain.ProfileInput) { in.PhoneNumber = "98765" }},
		{"signed phone", "phone_number", func(in *domain.ProfileInput) { in.PhoneNumber = "+912345678" }},
		{"negative phone", "phone_number", func(in *domain.ProfileInput) { in.PhoneNumber = "-123456789" }},
		{"decimal phone", "phone_number", func(in *domain.ProfileInput) { in.PhoneNumber = "12345.6789" }},
		{"zero age", "age", func(in *domain.ProfileInput) { in.Age = 0 }},
		{"no commute days", "days_of_commute", func(in *domain.ProfileInput) { in.DaysOfCommute = nil }},
		{"no preference", "prefer_taking_ride", func(in *domain.ProfileInput) { in.PreferHosting = false }},
		{"terms not accepted", "agreed_to_terms", func(in *domain.ProfileInput) { in.AgreedToTerms = false }},
		{"unknown vehicle", "vehicle_type", func(in *domain.ProfileInput) { in.VehicleType = "bus" }},
		{"bad email", "institutional_email", func(in *domain.ProfileInput) { in.InstitutionalEmail = "not-an-email" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			profiles := &mockProfileStore{}
			_, err := NewService(profiles, &mockOTPLookup{}).Submit(context.Background(), "u1", in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrBadRequest))
			assert.Contains(t, err.Error(), tc.field)
			profiles.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmit_MissingUserID(t *testing.T) {
	_, err := NewService(&mockProfileStore{}, &mockOTPLookup{}).Submit(context.Background(), " ", validInput())
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestSubmit_SendsSMSAndIgnoresFailure(t *testing.T) {
	profiles := &mockProfileStore{}
	otps := &mockOTPLookup{}
	sms := &mockSMS{}
	otps.On("Lookup", mock.Anything, "u1").Return(nil, domain.ErrOTPNotFound)
	profiles.On("Get", mock.Anything, "u1").Return(nil, domain.ErrNotFound)
	profiles.On("Put", mock.Anything, mock.Anything).Return(nil)
	sms.On("SendSMS", mock.Anything, "+919876543210", mock.MatchedBy(func(msg string) bool {
		return strings.HasPrefix(msg, "Hi Ravi,")
	})).Return(errors.New("opted out"))

	_, err := NewService(profiles, otps, WithSMS(sms)).Submit(context.Background(), "u1", validInput())
	assert.NoError(t, err)
	sms.AssertExpectations(t)
}

func TestSubmit_StorageFailure(t *testing.T) {
	profiles := &mockProfileStore{}
	otps := &mockOTPLookup{}
	otps.On("Lookup", mock.Anything, "u1").Return(nil, domain.ErrOTPNotFound)
	profiles.On("Get", mock.Anything, "u1").Return(nil, domain.ErrNotFound)
	profiles.On("Put", mock.Anything, mock.Anything).Return(errors.New("provisioned throughput exceeded"))

	_, err := NewService(profiles, otps).Submit(context.Background(), "u1", validInput())
	assert.True(t, errors.Is(err, domain.ErrStorage))
}

func TestGet(t *testing.T) {
	profiles := &mockProfileStore{}
	profiles.On("Get", mock.Anything, "u1").Return(&domain.Profile{UserID: "u1"}, nil)
	profiles.On("Get", mock.Anything, "u2").Return(nil, fmt.Errorf("profile: %w", domain.ErrNotFound))
	svc := NewService(profiles, &mockOTPLookup{})

	p, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", p.UserID)

	_, err = svc.Get(context.Background(), "u2")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDashboard(t *testing.T) {
	profiles := &mockProfileStore{}
	profiles.On("List", mock.Anything).Return(entries(), nil)

	d, err := NewService(profiles, &mockOTPLookup{}).Dashboard(context.Background(), Query{Role: RoleHost})
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "1"}, ids(d.Entries))
	assert.Equal(t, 4, d.Stats.Total)
	assert.Len(t, d.Institutions, 3)
}

func TestExport(t *testing.T) {
	profiles := &mockProfileStore{}
	profiles.On("List", mock.Anything).Return(entries(), nil)
	store := &mockObjectStore{}
	keyMatch := mock.MatchedBy(func(k string) bool {
		return strings.HasPrefix(k, "exports/waitlist-") && strings.HasSuffix(k, ".csv")
	})
	store.On("Upload", mock.Anything, keyMatch, "text/csv").Return(nil)
	store.On("PresignedURL", mock.Anything, keyMatch, 15*time.Minute).Return("https://s3.example/x.csv?sig", nil)

	url, err := NewService(profiles, &mockOTPLookup{}, WithExports(store)).
		Export(context.Background(), Query{Institution: "IIT Hyderabad"})
	require.NoError(t, err)
	assert.Equal(t, "https://s3.example/x.csv?sig", url)
	assert.Contains(t, store.body, "Ravi Kumar")
	assert.NotContains(t, store.body, "Zoya Khan")
	store.AssertExpectations(t)
}

func TestExport_NotConfigured(t *testing.T) {
	_, err := NewService(&mockProfileStore{}, &mockOTPLookup{}).Export(context.Background(), Query{})
	assert.True(t, errors.Is(err, domain.ErrMisconfigured))
}
