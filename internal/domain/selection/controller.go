package selection

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/nyc-restroom-finder/internal/domain/enrichment"
	"github.com/FACorreiaa/nyc-restroom-finder/internal/types"
)

// State names the phases of one activation sequence.
type State string

const (
	StateIdle             State = "IDLE"
	StateFetchingDetails  State = "FETCHING_DETAILS"
	StateFetchingVenues   State = "FETCHING_VENUES"
	StateContentDisplayed State = "CONTENT_DISPLAYED"
	StateErrorDisplayed   State = "ERROR_DISPLAYED"
)

// PanelSurface is the map surface's content-panel primitive: one panel,
// anchored to a marker, replaced on every open.
type PanelSurface interface {
	OpenPanel(panel types.ContentPanel)
	ClosePanel()
}

// Controller tracks the single current selection and drives the
// two-stage enrichment sequence when a marker is activated.
//
// Activating a marker while a previous sequence is still in flight does
// not cancel it: both sequences run to completion and the panel ends up
// showing whichever resolved last. That last-write-wins race is
// inherited behavior, kept deliberately (no sequence-number guard).
type Controller struct {
	mu      sync.Mutex
	logger  *slog.Logger
	svc     enrichment.Service
	surface PanelSurface

	current *types.Marker
	state   State
}

func NewController(svc enrichment.Service, surface PanelSurface, logger *slog.Logger) *Controller {
	return &Controller{
		logger:  logger,
		svc:     svc,
		surface: surface,
		state:   StateIdle,
	}
}

// Current returns the currently selected marker, or nil before the
// first activation. There is no explicit deselection path; a new
// activation replaces the previous selection.
func (c *Controller) Current() *types.Marker {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	m := *c.current
	return &m
}

// State returns the controller's current phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) setState(state State, markerID uuid.UUID) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
	c.logger.Debug("selection state changed",
		slog.String("state", string(state)),
		slog.String("marker_id", markerID.String()))
}

// Activate runs one activation sequence for the marker: select it,
// fetch details, on success fetch nearby venues, compose and open the
// content panel. Either lookup failing replaces the panel with a short
// error message embedding the failure status; there are no retries.
// The returned error is the lookup error, nil on success; the panel is
// populated in both cases.
//
// The mutex is only held across state writes, never across the network
// calls, so a superseding activation is free to overtake this one.
func (c *Controller) Activate(ctx context.Context, marker types.Marker) (types.ContentPanel, error) {
	ctx, span := otel.Tracer("SelectionController").Start(ctx, "Activate")
	defer span.End()
	span.SetAttributes(
		attribute.String("marker.id", marker.ID.String()),
		attribute.String("marker.title", marker.Title),
	)

	c.mu.Lock()
	m := marker
	c.current = &m
	c.mu.Unlock()

	c.setState(StateFetchingDetails, marker.ID)
	details, err := c.svc.FetchDetails(ctx, marker.PlaceID)
	if err != nil {
		panel := c.displayError(marker.ID, err)
		c.setState(StateErrorDisplayed, marker.ID)
		c.setState(StateIdle, marker.ID)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Details stage failed")
		return panel, err
	}

	c.setState(StateFetchingVenues, marker.ID)
	venues, err := c.svc.FetchVenues(ctx, details.Latitude, details.Longitude)
	if err != nil {
		panel := c.displayError(marker.ID, err)
		c.setState(StateErrorDisplayed, marker.ID)
		c.setState(StateIdle, marker.ID)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Venues stage failed")
		return panel, err
	}

	content := c.svc.Compose(marker, details, venues)
	panel := types.ContentPanel{
		MarkerID: marker.ID,
		Body:     composeContentBody(*content),
	}
	c.surface.OpenPanel(panel)
	c.setState(StateContentDisplayed, marker.ID)
	c.setState(StateIdle, marker.ID)
	span.SetStatus(codes.Ok, "Content displayed")
	return panel, nil
}

func (c *Controller) displayError(markerID uuid.UUID, err error) types.ContentPanel {
	panel := types.ContentPanel{
		MarkerID: markerID,
		Body:     composeErrorBody(err),
		Error:    true,
	}
	c.surface.OpenPanel(panel)
	return panel
}
