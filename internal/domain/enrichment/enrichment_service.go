package enrichment

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/nyc-restroom-finder/internal/types"
)

// maxVenues bounds the venue list on the composed content.
const maxVenues = 5

// DetailsProvider resolves a place identifier against the mapping
// provider.
type DetailsProvider interface {
	GetDetails(ctx context.Context, placeID string) (*types.PlaceDetails, error)
}

// VenuesProvider returns nearby points of interest for a coordinate.
type VenuesProvider interface {
	ExploreNearby(ctx context.Context, lat, lng float64) ([]types.Venue, error)
}

// Service is the enrichment aggregator: a details lookup, then on
// success a venues-nearby lookup at the resolved coordinates, then the
// composed result. The two stages are exposed separately so the
// selection controller can drive its state machine between them; the
// venues stage is never issued unless the details stage succeeded.
type Service interface {
	FetchDetails(ctx context.Context, placeID string) (*types.PlaceDetails, error)
	FetchVenues(ctx context.Context, lat, lng float64) ([]types.Venue, error)
	Compose(marker types.Marker, details *types.PlaceDetails, venues []types.Venue) *types.EnrichmentContent
}

type ServiceImpl struct {
	logger  *slog.Logger
	details DetailsProvider
	venues  VenuesProvider
}

func NewEnrichmentService(details DetailsProvider, venues VenuesProvider, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:  logger,
		details: details,
		venues:  venues,
	}
}

// FetchDetails runs the first stage of the sequence.
func (s *ServiceImpl) FetchDetails(ctx context.Context, placeID string) (*types.PlaceDetails, error) {
	ctx, span := otel.Tracer("EnrichmentService").Start(ctx, "FetchDetails")
	defer span.End()
	span.SetAttributes(attribute.String("place.id", placeID))

	details, err := s.details.GetDetails(ctx, placeID)
	if err != nil {
		s.logger.WarnContext(ctx, "details lookup failed",
			slog.String("place_id", placeID),
			slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Details lookup failed")
		return nil, err
	}

	span.SetStatus(codes.Ok, "Details resolved")
	return details, nil
}

// FetchVenues runs the second stage at the coordinates the details
// lookup resolved.
func (s *ServiceImpl) FetchVenues(ctx context.Context, lat, lng float64) ([]types.Venue, error) {
	ctx, span := otel.Tracer("EnrichmentService").Start(ctx, "FetchVenues")
	defer span.End()

	venues, err := s.venues.ExploreNearby(ctx, lat, lng)
	if err != nil {
		s.logger.WarnContext(ctx, "venues lookup failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Venues lookup failed")
		return nil, err
	}

	span.SetAttributes(attribute.Int("venues.count", len(venues)))
	span.SetStatus(codes.Ok, "Venues resolved")
	return venues, nil
}

// Compose merges the marker's own fields with both lookup results. The
// venue list is truncated to five entries, provider order preserved.
func (s *ServiceImpl) Compose(marker types.Marker, details *types.PlaceDetails, venues []types.Venue) *types.EnrichmentContent {
	if len(venues) > maxVenues {
		venues = venues[:maxVenues]
	}
	return &types.EnrichmentContent{
		Title:              marker.Title,
		Address:            details.Address,
		PhotoURLs:          details.PhotoURLs,
		OpenYearRound:      marker.OpenYearRound,
		HandicapAccessible: marker.HandicapAccessible,
		Venues:             venues,
	}
}
