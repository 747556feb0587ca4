package places

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/raatap-waitlist/internal/domain"
)

// GoogleClient queries the Places Autocomplete API.
type GoogleClient struct {
	hc       *http.Client
	endpoint string
	apiKey   string
}

func NewGoogleClient(endpoint, apiKey string) *GoogleClient {
	return &GoogleClient{hc: newHTTPClient(), endpoint: endpoint, apiKey: apiKey}
}

type autocompleteResponse struct {
	Status      string `json:"status"`
	Predictions []struct {
		PlaceID              string `json:"place_id"`
		Description          string `json:"description"`
		StructuredFormatting *struct {
			MainText      string `json:"main_text"`
			SecondaryText string `json:"secondary_text"`
		} `json:"structured_formatting"`
	} `json:"predictions"`
}

// Autocomplete returns predictions restricted to India. A non-OK status
// is reported as an error so callers can fall back.
func (c *GoogleClient) Autocomplete(ctx context.Context, input string) ([]domain.Place, error) {
	params := url.Values{
		"input":      {input},
		"key":        {c.apiKey},
		"components": {"country:in"},
		"types":      {"establishment|geocode"},
		"language":   {"en"},
	}
	var body autocompleteResponse
	if err := getJSON(ctx, c.hc, c.endpoint, params, &body); err != nil {
		return nil, err
	}
	if body.Status != "OK" {
		return nil, fmt.Errorf("places autocomplete status %q", body.Status)
	}

	out := make([]domain.Place, 0, len(body.Predictions))
	for _, p := range body.Predictions {
		place := domain.Place{PlaceID: p.PlaceID, DisplayName: p.Description}
		if sf := p.StructuredFormatting; sf != nil {
			place.MainText = sf.MainText
			place.SecondaryText = sf.SecondaryText
		}
		out = append(out, place)
	}
	return out, nil
}
