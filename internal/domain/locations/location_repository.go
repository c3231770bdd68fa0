package locations

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/FACorreiaa/nyc-restroom-finder/internal/types"
)

//go:embed dataset.json
var datasetJSON []byte

var _ Repository = (*StaticRepository)(nil)

// Repository serves the restroom location records. Locations are
// read-only: there is no save, update or delete path anywhere.
type Repository interface {
	GetAllLocations(ctx context.Context) ([]types.Location, error)
	FindLocationByPlaceID(ctx context.Context, placeID string) (*types.Location, error)
}

// StaticRepository serves the embedded dataset. It is the default
// source and the only one the original deployment used.
type StaticRepository struct {
	logger    *slog.Logger
	locations []types.Location
}

// NewStaticRepository decodes the embedded dataset once. An empty
// dataset is not an error; downstream components operate on the empty
// collection.
func NewStaticRepository(logger *slog.Logger) (*StaticRepository, error) {
	var locations []types.Location
	if err := json.Unmarshal(datasetJSON, &locations); err != nil {
		return nil, fmt.Errorf("failed to decode embedded dataset: %w", err)
	}

	sort.SliceStable(locations, func(i, j int) bool {
		return locations[i].Name < locations[j].Name
	})

	logger.Info("static location dataset loaded", slog.Int("count", len(locations)))
	return &StaticRepository{logger: logger, locations: locations}, nil
}

func (r *StaticRepository) GetAllLocations(_ context.Context) ([]types.Location, error) {
	out := make([]types.Location, len(r.locations))
	copy(out, r.locations)
	return out, nil
}

func (r *StaticRepository) FindLocationByPlaceID(_ context.Context, placeID string) (*types.Location, error) {
	for i := range r.locations {
		if r.locations[i].PlaceID == placeID {
			loc := r.locations[i]
			return &loc, nil
		}
	}
	return nil, types.ErrNotFound
}
