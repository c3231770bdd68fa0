package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/FACorreiaa/nyc-restroom-finder/internal/domain/locations"
	"github.com/FACorreiaa/nyc-restroom-finder/internal/domain/markers"
	"github.com/FACorreiaa/nyc-restroom-finder/internal/domain/selection"
	"github.com/FACorreiaa/nyc-restroom-finder/internal/types"
)

// Handler exposes the registry, filter/search and activation operations
// over JSON.
type Handler struct {
	locations  locations.Service
	registry   *markers.Registry
	surface    *markers.InMemorySurface
	controller *selection.Controller
	logger     *slog.Logger
}

func NewHandler(
	locationSvc locations.Service,
	registry *markers.Registry,
	surface *markers.InMemorySurface,
	controller *selection.Controller,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		locations:  locationSvc,
		registry:   registry,
		surface:    surface,
		controller: controller,
		logger:     logger,
	}
}

type applyFilterRequest struct {
	Filter string `json:"filter"`
}

type searchRequest struct {
	Text string `json:"text"`
	Mode string `json:"mode"`
}

type filtersResponse struct {
	Filters []types.Filter `json:"filters"`
	Active  string         `json:"active"`
}

type markersResponse struct {
	Markers []types.Marker `json:"markers"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// GetLocations returns the full restroom dataset.
func (h *Handler) GetLocations(w http.ResponseWriter, r *http.Request) {
	locs, err := h.locations.GetAllLocations(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to load locations")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"locations": locs})
}

// GetMarkers returns every marker with its visibility flag.
func (h *Handler) GetMarkers(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, markersResponse{Markers: h.registry.Markers()})
}

// GetVisibleMarkers returns the markers currently attached to the map
// surface.
func (h *Handler) GetVisibleMarkers(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, markersResponse{Markers: h.registry.VisibleMarkers()})
}

// GetFilters returns the fixed filter list and the active one.
func (h *Handler) GetFilters(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, filtersResponse{
		Filters: h.registry.Filters(),
		Active:  h.registry.ActiveFilter(),
	})
}

// ApplyFilter activates a borough filter (or "All") and re-renders.
func (h *Handler) ApplyFilter(w http.ResponseWriter, r *http.Request) {
	var req applyFilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.registry.ApplyFilter(req.Filter); err != nil {
		h.writeError(w, http.StatusBadRequest, "unknown filter: "+req.Filter)
		return
	}
	h.writeJSON(w, http.StatusOK, markersResponse{Markers: h.registry.VisibleMarkers()})
}

// Search narrows marker visibility by title text. Mode "auto" (the
// default) recomputes from the full registry; mode "manual" narrows
// only among currently visible markers.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch req.Mode {
	case "", "auto":
		h.registry.SearchAuto(req.Text)
	case "manual":
		h.registry.SearchLocation(req.Text)
	default:
		h.writeError(w, http.StatusBadRequest, "unknown search mode: "+req.Mode)
		return
	}
	h.writeJSON(w, http.StatusOK, markersResponse{Markers: h.registry.VisibleMarkers()})
}

// ActivateMarker runs the two-stage enrichment sequence for one marker
// and returns the resulting content panel. Lookup failures still return
// 200 with the error panel, mirroring the on-map behavior.
func (h *Handler) ActivateMarker(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid marker id")
		return
	}

	marker, err := h.registry.GetMarker(id)
	if errors.Is(err, types.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "marker not found")
		return
	}
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to load marker")
		return
	}

	panel, err := h.controller.Activate(r.Context(), marker)
	if err != nil {
		h.logger.WarnContext(r.Context(), "activation sequence failed",
			slog.String("marker_id", id.String()),
			slog.Any("error", err))
	}
	h.writeJSON(w, http.StatusOK, panel)
}

// GetPanel returns the currently open content panel, if any.
func (h *Handler) GetPanel(w http.ResponseWriter, _ *http.Request) {
	panel := h.surface.Panel()
	if panel == nil {
		h.writeError(w, http.StatusNotFound, "no panel open")
		return
	}
	h.writeJSON(w, http.StatusOK, panel)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}
