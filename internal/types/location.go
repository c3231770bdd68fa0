package types

// Borough is one of NYC's five administrative divisions. It is the only
// dimension restroom locations are filtered on.
type Borough string

const (
	BoroughManhattan    Borough = "Manhattan"
	BoroughBrooklyn     Borough = "Brooklyn"
	BoroughQueens       Borough = "Queens"
	BoroughBronx        Borough = "Bronx"
	BoroughStatenIsland Borough = "Staten Island"
)

// FilterAll is the pseudo-filter that matches every borough.
const FilterAll = "All"

// Boroughs returns the fixed borough list in display order.
func Boroughs() []Borough {
	return []Borough{
		BoroughManhattan,
		BoroughBrooklyn,
		BoroughQueens,
		BoroughBronx,
		BoroughStatenIsland,
	}
}

// Valid reports whether b is one of the five boroughs.
func (b Borough) Valid() bool {
	switch b {
	case BoroughManhattan, BoroughBrooklyn, BoroughQueens, BoroughBronx, BoroughStatenIsland:
		return true
	}
	return false
}

// Location is one public restroom in a NYC park. Records are loaded once
// at startup and never mutated afterwards.
type Location struct {
	Name               string  `json:"name"`
	Borough            Borough `json:"borough"`
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
	OpenYearRound      bool    `json:"open_year_round"`
	HandicapAccessible bool    `json:"handicap_accessible,omitempty"`
	// PlaceID is the opaque identifier the mapping provider resolves to
	// address and photo metadata.
	PlaceID string `json:"place_id"`
}
