package domain

// Place is a location suggestion returned by the places search.
// Google results fill MainText/SecondaryText; Nominatim results fill Lat/Lon.
type Place struct {
	PlaceID       string `json:"place_id"`
	DisplayName   string `json:"display_name"`
	MainText      string `json:"main_text,omitempty"`
	SecondaryText string `json:"secondary_text,omitempty"`
	Lat           string `json:"lat,omitempty"`
	Lon           string `json:"lon,omitempty"`
}
