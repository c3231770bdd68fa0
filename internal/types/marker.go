package types

import "github.com/google/uuid"

// IconCategory selects which legend icon a marker is drawn with.
type IconCategory string

const (
	IconPark       IconCategory = "park"
	IconPlayground IconCategory = "playground"
	IconOther      IconCategory = "other"
)

// Marker is the map-rendered counterpart of a Location, derived 1:1 when
// the registry is built. Everything except Visible is fixed at build
// time; Visible is mutated by filter changes and search input.
type Marker struct {
	ID                 uuid.UUID    `json:"id"`
	Title              string       `json:"title"`
	Borough            Borough      `json:"borough"`
	Latitude           float64      `json:"latitude"`
	Longitude          float64      `json:"longitude"`
	PlaceID            string       `json:"place_id"`
	OpenYearRound      bool         `json:"open_year_round"`
	HandicapAccessible bool         `json:"handicap_accessible,omitempty"`
	Icon               IconCategory `json:"icon"`
	Visible            bool         `json:"visible"`
}

// Filter is one entry of the fixed borough filter list. Exactly one
// filter is active at any time.
type Filter struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}
