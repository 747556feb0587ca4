package places

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/raatap-waitlist/internal/domain"
)

// NominatimClient talks to an OpenStreetMap Nominatim instance.
type NominatimClient struct {
	hc      *http.Client
	baseURL string
}

func NewNominatimClient(baseURL string) *NominatimClient {
	return &NominatimClient{hc: newHTTPClient(), baseURL: strings.TrimRight(baseURL, "/")}
}

type nominatimResult struct {
	PlaceID     json.Number `json:"place_id"`
	DisplayName string      `json:"display_name"`
	Lat         string      `json:"lat"`
	Lon         string      `json:"lon"`
}

// Search runs a free-form query and returns at most limit matches.
func (c *NominatimClient) Search(ctx context.Context, q string, limit int) ([]domain.Place, error) {
	params := url.Values{
		"format":          {"json"},
		"q":               {q},
		"limit":           {strconv.Itoa(limit)},
		"addressdetails":  {"1"},
		"accept-language": {"en"},
	}
	var results []nominatimResult
	if err := getJSON(ctx, c.hc, c.baseURL+"/search", params, &results); err != nil {
		return nil, err
	}

	out := make([]domain.Place, 0, len(results))
	for _, r := range results {
		out = append(out, domain.Place{
			PlaceID:     r.PlaceID.String(),
			DisplayName: r.DisplayName,
			Lat:         r.Lat,
			Lon:         r.Lon,
		})
	}
	return out, nil
}

// Reverse geocodes a coordinate pair and returns the upstream document as is.
func (c *NominatimClient) Reverse(ctx context.Context, lat, lon string) (json.RawMessage, error) {
	params := url.Values{
		"format":          {"json"},
		"lat":             {lat},
		"lon":             {lon},
		"addressdetails":  {"1"},
		"accept-language": {"en"},
	}
	var raw json.RawMessage
	if err := getJSON(ctx, c.hc, c.baseURL+"/reverse", params, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
