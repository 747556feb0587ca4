package location

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/raatap-waitlist/internal/domain"
)

const (
	minQueryLen    = 2
	nominatimLimit = 5
	enoughResults  = 6
	maxResults     = 8
)

type Service interface {
	Search(ctx context.Context, q string) ([]domain.Place, error)
	Reverse(ctx context.Context, lat, lon string) (json.RawMessage, error)
}

type autocompleter interface {
	Autocomplete(ctx context.Context, input string) ([]domain.Place, error)
}

type geocoder interface {
	Search(ctx context.Context, q string, limit int) ([]domain.Place, error)
	Reverse(ctx context.Context, lat, lon string) (json.RawMessage, error)
}

type service struct {
	google autocompleter
	osm    geocoder
}

// NewService wires the place providers. google may be nil, in which case
// only Nominatim is queried.
func NewService(google autocompleter, osm geocoder) Service {
	return &service{google: google, osm: osm}
}

func (s *service) Search(ctx context.Context, q string) ([]domain.Place, error) {
	q = strings.TrimSpace(q)
	if len([]rune(q)) < minQueryLen {
		return []domain.Place{}, nil
	}

	if s.google != nil {
		places, err := s.google.Autocomplete(ctx, q)
		if err == nil && len(places) > 0 {
			return places, nil
		}
		slog.Info("places autocomplete empty, falling back to nominatim", "error", err)
	}

	return s.searchNominatim(ctx, q), nil
}

// searchNominatim widens the query towards the service area until enough
// distinct places are found.
func (s *service) searchNominatim(ctx context.Context, q string) []domain.Place {
	queries := []string{q, q + ", Hyderabad, India", q + ", Telangana, India"}
	seen := map[string]bool{}
	out := []domain.Place{}
	for _, query := range queries {
		if len(out) >= enoughResults {
			break
		}
		places, err := s.osm.Search(ctx, query, nominatimLimit)
		if err != nil {
			slog.Warn("nominatim search failed", "query", query, "error", err)
			continue
		}
		for _, p := range places {
			if seen[p.PlaceID] {
				continue
			}
			seen[p.PlaceID] = true
			out = append(out, p)
		}
	}
	if len(out) > maxResults {
		out = out[:maxResults]
	}
	return out
}

func (s *service) Reverse(ctx context.Context, lat, lon string) (json.RawMessage, error) {
	if lat == "" || lon == "" {
		return nil, domain.BadRequest("Missing lat/lon")
	}
	raw, err := s.osm.Reverse(ctx, lat, lon)
	if err != nil {
		slog.Error("reverse geocoding failed", "error", err)
		return nil, domain.Wrap(domain.ErrUpstream, err)
	}
	return raw, nil
}
