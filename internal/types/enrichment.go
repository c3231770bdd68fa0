package types

import "github.com/google/uuid"

// StatusOK is the mapping provider's success status for a details lookup.
const StatusOK = "OK"

// PlaceDetails is the mapping provider's answer to a details lookup.
type PlaceDetails struct {
	Status    string   `json:"status"`
	Address   string   `json:"address"`
	PhotoURLs []string `json:"photo_urls,omitempty"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
}

// Venue is one nearby point of interest returned by the venue provider.
type Venue struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	AddressLines []string `json:"address_lines"`
	Phone        string   `json:"phone,omitempty"`
	URL          string   `json:"url,omitempty"`
}

// EnrichmentContent is the combined result of the two-stage lookup for a
// selected marker. It is recomputed in full on every activation and
// never cached.
type EnrichmentContent struct {
	Title              string   `json:"title"`
	Address            string   `json:"address"`
	PhotoURLs          []string `json:"photo_urls,omitempty"`
	OpenYearRound      bool     `json:"open_year_round"`
	HandicapAccessible bool     `json:"handicap_accessible"`
	Venues             []Venue  `json:"venues"`
}

// ContentPanel is the single on-map overlay anchored to the selected
// marker. The Error variant carries the failure message instead of
// enrichment content.
type ContentPanel struct {
	MarkerID uuid.UUID `json:"marker_id"`
	Body     string    `json:"body"`
	Error    bool      `json:"error"`
}
