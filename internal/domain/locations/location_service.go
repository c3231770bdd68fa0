package locations

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/nyc-restroom-finder/internal/types"
)

type Service interface {
	GetAllLocations(ctx context.Context) ([]types.Location, error)
	GetLocationByPlaceID(ctx context.Context, placeID string) (*types.Location, error)
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
}

func NewLocationService(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

// GetAllLocations retrieves the full restroom dataset.
func (s *ServiceImpl) GetAllLocations(ctx context.Context) ([]types.Location, error) {
	ctx, span := otel.Tracer("LocationService").Start(ctx, "GetAllLocations")
	defer span.End()

	l := s.logger.With(slog.String("method", "GetAllLocations"))

	locations, err := s.repo.GetAllLocations(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to retrieve locations from repository", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Repository operation failed")
		return nil, fmt.Errorf("failed to retrieve locations: %w", err)
	}

	l.DebugContext(ctx, "Successfully retrieved locations", slog.Int("count", len(locations)))
	span.SetAttributes(attribute.Int("locations.count", len(locations)))
	span.SetStatus(codes.Ok, "Locations retrieved successfully")

	return locations, nil
}

// GetLocationByPlaceID resolves a single location by its external place
// identifier.
func (s *ServiceImpl) GetLocationByPlaceID(ctx context.Context, placeID string) (*types.Location, error) {
	ctx, span := otel.Tracer("LocationService").Start(ctx, "GetLocationByPlaceID")
	defer span.End()

	loc, err := s.repo.FindLocationByPlaceID(ctx, placeID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Repository operation failed")
		return nil, fmt.Errorf("failed to find location %q: %w", placeID, err)
	}

	span.SetStatus(codes.Ok, "Location found")
	return loc, nil
}
