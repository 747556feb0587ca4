package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/raatap-waitlist/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockLocationSvc struct{ mock.Mock }

func (m *mockLocationSvc) Search(ctx context.Context, q string) ([]domain.Place, error) {
	args := m.Called(ctx, q)
	ps, _ := args.Get(0).([]domain.Place)
	return ps, args.Error(1)
}

func (m *mockLocationSvc) Reverse(ctx context.Context, lat, lon string) (json.RawMessage, error) {
	args := m.Called(ctx, lat, lon)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

func TestLocationSearch(t *testing.T) {
	svc := &mockLocationSvc{}
	svc.On("Search", mock.Anything, "iit").Return([]domain.Place{{PlaceID: "p1", DisplayName: "IIT Hyderabad"}}, nil)

	rr := httptest.NewRecorder()
	NewLocationHandler(svc).Search(rr, httptest.NewRequest(http.MethodGet, "/locations/search?q=iit", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"place_id":"p1","display_name":"IIT Hyderabad"}]`, rr.Body.String())
}

func TestLocationReverse(t *testing.T) {
	svc := &mockLocationSvc{}
	svc.On("Reverse", mock.Anything, "17.4", "78.4").Return(json.RawMessage(`{"display_name":"Hyderabad"}`), nil)
	svc.On("Reverse", mock.Anything, "", "78.4").Return(nil, domain.BadRequest("Missing lat/lon"))
	svc.On("Reverse", mock.Anything, "0", "0").Return(nil, domain.Wrap(domain.ErrUpstream, errors.New("502")))
	h := NewLocationHandler(svc)

	rr := httptest.NewRecorder()
	h.Reverse(rr, httptest.NewRequest(http.MethodGet, "/locations/reverse?lat=17.4&lon=78.4", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"display_name":"Hyderabad"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	h.Reverse(rr, httptest.NewRequest(http.MethodGet, "/locations/reverse?lon=78.4", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"Missing lat/lon"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	h.Reverse(rr, httptest.NewRequest(http.MethodGet, "/locations/reverse?lat=0&lon=0", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Failed to get address"}`, rr.Body.String())
}
