package locations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/patrickmn/go-cache"

	"github.com/FACorreiaa/nyc-restroom-finder/internal/types"
)

const allLocationsCacheKey = "locations:all"

var _ Repository = (*PostgresRepository)(nil)

// PgxQuerier is the subset of pgxpool.Pool the repository uses. Kept as
// an interface so tests can substitute pgxmock.
type PgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository serves locations from the park_restrooms table.
// The table is seeded out of band and treated as read-only, so reads go
// through a short TTL cache.
type PostgresRepository struct {
	logger *slog.Logger
	db     PgxQuerier
	cache  *cache.Cache
	sb     sq.StatementBuilderType
}

func NewPostgresRepository(db PgxQuerier, logger *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		logger: logger,
		db:     db,
		cache:  cache.New(5*time.Minute, 10*time.Minute),
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *PostgresRepository) GetAllLocations(ctx context.Context) ([]types.Location, error) {
	if cached, found := r.cache.Get(allLocationsCacheKey); found {
		return cached.([]types.Location), nil
	}

	query, args, err := r.sb.
		Select("name", "borough", "latitude", "longitude", "open_year_round", "handicap_accessible", "place_id").
		From("park_restrooms").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build locations query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to query locations", slog.Any("error", err))
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	var locations []types.Location
	for rows.Next() {
		var loc types.Location
		if err := rows.Scan(
			&loc.Name,
			&loc.Borough,
			&loc.Latitude,
			&loc.Longitude,
			&loc.OpenYearRound,
			&loc.HandicapAccessible,
			&loc.PlaceID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan location row: %w", err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read location rows: %w", err)
	}

	r.cache.Set(allLocationsCacheKey, locations, cache.DefaultExpiration)
	return locations, nil
}

func (r *PostgresRepository) FindLocationByPlaceID(ctx context.Context, placeID string) (*types.Location, error) {
	query, args, err := r.sb.
		Select("name", "borough", "latitude", "longitude", "open_year_round", "handicap_accessible", "place_id").
		From("park_restrooms").
		Where(sq.Eq{"place_id": placeID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build location query: %w", err)
	}

	var loc types.Location
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&loc.Name,
		&loc.Borough,
		&loc.Latitude,
		&loc.Longitude,
		&loc.OpenYearRound,
		&loc.HandicapAccessible,
		&loc.PlaceID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query location by place id: %w", err)
	}
	return &loc, nil
}
