package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/FACorreiaa/nyc-restroom-finder/internal/api"
	"github.com/FACorreiaa/nyc-restroom-finder/internal/domain/enrichment"
	"github.com/FACorreiaa/nyc-restroom-finder/internal/domain/locations"
	"github.com/FACorreiaa/nyc-restroom-finder/internal/domain/markers"
	"github.com/FACorreiaa/nyc-restroom-finder/internal/domain/selection"
	"github.com/FACorreiaa/nyc-restroom-finder/internal/provider/places"
	"github.com/FACorreiaa/nyc-restroom-finder/internal/provider/venues"
	"github.com/FACorreiaa/nyc-restroom-finder/pkg/config"
	"github.com/FACorreiaa/nyc-restroom-finder/pkg/db"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *slog.Logger
	DB     *db.DB

	// Repositories
	LocationRepo locations.Repository

	// Services
	LocationSvc   locations.Service
	EnrichmentSvc enrichment.Service

	// View state
	Surface    *markers.InMemorySurface
	Registry   *markers.Registry
	Controller *selection.Controller

	// Handlers
	APIHandler *api.Handler

	mapReady chan struct{}
}

// InitDependencies initializes all application dependencies and loads
// the map state once.
func InitDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config:   cfg,
		Logger:   logger,
		mapReady: make(chan struct{}),
	}

	if err := deps.initRepositories(); err != nil {
		return nil, fmt.Errorf("failed to init repositories: %w", err)
	}

	if err := deps.initServices(); err != nil {
		return nil, fmt.Errorf("failed to init services: %w", err)
	}

	if err := deps.loadMap(); err != nil {
		return nil, fmt.Errorf("failed to load map state: %w", err)
	}

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initRepositories selects the location source: the embedded dataset by
// default, Postgres when configured.
func (d *Dependencies) initRepositories() error {
	if d.Config.Database.Enabled {
		database, err := db.New(db.Config{
			DSN:             d.Config.Database.DSN(),
			MaxConns:        25,
			MinConns:        5,
			MaxConnLifetime: 5 * time.Minute,
			MaxConnIdleTime: 10 * time.Minute,
		}, d.Logger)
		if err != nil {
			return err
		}
		d.DB = database
		d.LocationRepo = locations.NewPostgresRepository(database.Pool, d.Logger)
		d.Logger.Info("using postgres location repository")
		return nil
	}

	repo, err := locations.NewStaticRepository(d.Logger)
	if err != nil {
		return err
	}
	d.LocationRepo = repo
	d.Logger.Info("using embedded location dataset")
	return nil
}

// initServices initializes all service layer dependencies
func (d *Dependencies) initServices() error {
	d.LocationSvc = locations.NewLocationService(d.LocationRepo, d.Logger)

	detailsClient := places.NewClient(
		d.Config.Providers.PlacesBaseURL,
		d.Config.Providers.PlacesAPIKey,
		d.Logger,
	)
	venuesClient := venues.NewClient(
		d.Config.Providers.VenuesBaseURL,
		d.Config.Providers.VenuesClientID,
		d.Config.Providers.VenuesClientSecret,
		d.Logger,
	)
	d.EnrichmentSvc = enrichment.NewEnrichmentService(detailsClient, venuesClient, d.Logger)

	d.Surface = markers.NewInMemorySurface()
	d.Registry = markers.NewRegistry(d.Surface, d.Logger)
	d.Controller = selection.NewController(d.EnrichmentSvc, d.Surface, d.Logger)
	d.APIHandler = api.NewHandler(d.LocationSvc, d.Registry, d.Surface, d.Controller, d.Logger)

	d.Logger.Info("services initialized")
	return nil
}

// loadMap populates the stores exactly once: locations in, markers
// built 1:1, initial render with everything visible.
func (d *Dependencies) loadMap() error {
	ctx, cancel := context.WithTimeout(context.Background(), d.Config.Server.MapLoadTimeout)
	defer cancel()

	locs, err := d.LocationSvc.GetAllLocations(ctx)
	if err != nil {
		return err
	}

	d.Registry.Build(locs)
	d.Registry.Render()
	close(d.mapReady)

	d.Logger.Info("map state loaded", slog.Int("locations", len(locs)))
	return nil
}

// MapReady is closed once the marker registry is built and rendered.
func (d *Dependencies) MapReady() <-chan struct{} {
	return d.mapReady
}

// Cleanup closes all resources
func (d *Dependencies) Cleanup() {
	if d.DB != nil {
		d.DB.Close()
	}
	d.Logger.Info("cleanup completed")
}
