package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/nyc-restroom-finder/internal/domain/enrichment"
	"github.com/FACorreiaa/nyc-restroom-finder/internal/domain/markers"
	"github.com/FACorreiaa/nyc-restroom-finder/internal/domain/selection"
	"github.com/FACorreiaa/nyc-restroom-finder/internal/types"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

type stubLocationService struct {
	locations []types.Location
	err       error
}

func (s *stubLocationService) GetAllLocations(_ context.Context) ([]types.Location, error) {
	return s.locations, s.err
}

func (s *stubLocationService) GetLocationByPlaceID(_ context.Context, placeID string) (*types.Location, error) {
	for i := range s.locations {
		if s.locations[i].PlaceID == placeID {
			return &s.locations[i], nil
		}
	}
	return nil, types.ErrNotFound
}

type stubDetailsProvider struct {
	details *types.PlaceDetails
	err     error
}

func (s *stubDetailsProvider) GetDetails(_ context.Context, _ string) (*types.PlaceDetails, error) {
	return s.details, s.err
}

type stubVenuesProvider struct {
	venues []types.Venue
	err    error
}

func (s *stubVenuesProvider) ExploreNearby(_ context.Context, _, _ float64) ([]types.Venue, error) {
	return s.venues, s.err
}

func testDataset() []types.Location {
	return []types.Location{
		{Name: "Central Park", Borough: types.BoroughManhattan, PlaceID: "p1"},
		{Name: "Central Park", Borough: types.BoroughBrooklyn, PlaceID: "p2"},
		{Name: "City Hall", Borough: types.BoroughManhattan, PlaceID: "p3"},
	}
}

func newTestServer(t *testing.T, details *stubDetailsProvider, venuesProv *stubVenuesProvider) (*httptest.Server, *markers.Registry) {
	t.Helper()
	logger := newTestLogger()

	surface := markers.NewInMemorySurface()
	registry := markers.NewRegistry(surface, logger)
	registry.Build(testDataset())
	registry.Render()

	enrichSvc := enrichment.NewEnrichmentService(details, venuesProv, logger)
	controller := selection.NewController(enrichSvc, surface, logger)
	h := NewHandler(&stubLocationService{locations: testDataset()}, registry, surface, controller, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/locations", h.GetLocations)
	mux.HandleFunc("GET /v1/markers", h.GetMarkers)
	mux.HandleFunc("GET /v1/markers/visible", h.GetVisibleMarkers)
	mux.HandleFunc("GET /v1/filters", h.GetFilters)
	mux.HandleFunc("POST /v1/filters/apply", h.ApplyFilter)
	mux.HandleFunc("POST /v1/search", h.Search)
	mux.HandleFunc("POST /v1/markers/{id}/activate", h.ActivateMarker)
	mux.HandleFunc("GET /v1/panel", h.GetPanel)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, registry
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func decodeMarkers(t *testing.T, resp *http.Response) []types.Marker {
	t.Helper()
	defer resp.Body.Close()
	var out markersResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out.Markers
}

func TestGetFilters_ReturnsFixedListWithAllActive(t *testing.T) {
	server, _ := newTestServer(t, &stubDetailsProvider{}, &stubVenuesProvider{})

	resp, err := http.Get(server.URL + "/v1/filters")
	require.NoError(t, err)
	defer resp.Body.Close()

	var out filtersResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Filters, 6)
	assert.Equal(t, types.FilterAll, out.Active)
	assert.Equal(t, types.FilterAll, out.Filters[0].Name)
	assert.True(t, out.Filters[0].Active)
}

func TestApplyFilter_NarrowsVisibleMarkers(t *testing.T) {
	server, _ := newTestServer(t, &stubDetailsProvider{}, &stubVenuesProvider{})

	resp := postJSON(t, server.URL+"/v1/filters/apply", applyFilterRequest{Filter: "Manhattan"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	visible := decodeMarkers(t, resp)
	require.Len(t, visible, 2)
	for _, m := range visible {
		assert.Equal(t, types.BoroughManhattan, m.Borough)
	}
}

func TestApplyFilter_UnknownFilterIsBadRequest(t *testing.T) {
	server, _ := newTestServer(t, &stubDetailsProvider{}, &stubVenuesProvider{})

	resp := postJSON(t, server.URL+"/v1/filters/apply", applyFilterRequest{Filter: "Hoboken"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSearch_AutoModeComposesWithFilter(t *testing.T) {
	server, _ := newTestServer(t, &stubDetailsProvider{}, &stubVenuesProvider{})

	resp := postJSON(t, server.URL+"/v1/filters/apply", applyFilterRequest{Filter: "Manhattan"})
	resp.Body.Close()

	resp = postJSON(t, server.URL+"/v1/search", searchRequest{Text: "Park", Mode: "auto"})
	visible := decodeMarkers(t, resp)

	require.Len(t, visible, 1)
	assert.Equal(t, "Central Park", visible[0].Title)
	assert.Equal(t, types.BoroughManhattan, visible[0].Borough)
}

func TestSearch_ManualModeOnlyNarrows(t *testing.T) {
	server, _ := newTestServer(t, &stubDetailsProvider{}, &stubVenuesProvider{})

	resp := postJSON(t, server.URL+"/v1/search", searchRequest{Text: "city", Mode: "manual"})
	visible := decodeMarkers(t, resp)
	require.Len(t, visible, 1)

	// A second manual search for a previously hidden title finds nothing.
	resp = postJSON(t, server.URL+"/v1/search", searchRequest{Text: "central", Mode: "manual"})
	assert.Empty(t, decodeMarkers(t, resp))
}

func TestSearch_UnknownModeIsBadRequest(t *testing.T) {
	server, _ := newTestServer(t, &stubDetailsProvider{}, &stubVenuesProvider{})

	resp := postJSON(t, server.URL+"/v1/search", searchRequest{Text: "x", Mode: "fuzzy"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestActivateMarker_ReturnsComposedPanel(t *testing.T) {
	details := &stubDetailsProvider{details: &types.PlaceDetails{
		Status:  types.StatusOK,
		Address: "Mid-Park at 79th St",
	}}
	venuesProv := &stubVenuesProvider{venues: []types.Venue{{Name: "Le Pain Quotidien", Category: "Bakery"}}}
	server, registry := newTestServer(t, details, venuesProv)

	marker := registry.Markers()[0]
	resp := postJSON(t, fmt.Sprintf("%s/v1/markers/%s/activate", server.URL, marker.ID), nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var panel types.ContentPanel
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&panel))
	assert.False(t, panel.Error)
	assert.Equal(t, marker.ID, panel.MarkerID)
	assert.Contains(t, panel.Body, marker.Title)
	assert.Contains(t, panel.Body, "Mid-Park at 79th St")
	assert.Contains(t, panel.Body, "Le Pain Quotidien")

	// The panel endpoint serves the same panel afterwards.
	getResp, err := http.Get(server.URL + "/v1/panel")
	require.NoError(t, err)
	defer getResp.Body.Close()
	assert.Equal(t, http.StatusOK, getResp.StatusCode)
}

func TestActivateMarker_DetailsFailureStillReturnsPanel(t *testing.T) {
	details := &stubDetailsProvider{err: &types.DetailsLookupError{Status: "ERROR"}}
	server, registry := newTestServer(t, details, &stubVenuesProvider{})

	marker := registry.Markers()[0]
	resp := postJSON(t, fmt.Sprintf("%s/v1/markers/%s/activate", server.URL, marker.ID), nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var panel types.ContentPanel
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&panel))
	assert.True(t, panel.Error)
	assert.Contains(t, panel.Body, "ERROR")
}

func TestActivateMarker_UnknownIDIsNotFound(t *testing.T) {
	server, _ := newTestServer(t, &stubDetailsProvider{}, &stubVenuesProvider{})

	resp := postJSON(t, server.URL+"/v1/markers/1f7a4fd2-29c7-4b19-8a12-3c6ad1c6a000/activate", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetPanel_NotFoundBeforeFirstActivation(t *testing.T) {
	server, _ := newTestServer(t, &stubDetailsProvider{}, &stubVenuesProvider{})

	resp, err := http.Get(server.URL + "/v1/panel")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetLocations_ServiceErrorIsInternal(t *testing.T) {
	logger := newTestLogger()
	surface := markers.NewInMemorySurface()
	registry := markers.NewRegistry(surface, logger)
	enrichSvc := enrichment.NewEnrichmentService(&stubDetailsProvider{}, &stubVenuesProvider{}, logger)
	controller := selection.NewController(enrichSvc, surface, logger)
	h := NewHandler(&stubLocationService{err: fmt.Errorf("boom")}, registry, surface, controller, logger)

	rec := httptest.NewRecorder()
	h.GetLocations(rec, httptest.NewRequest(http.MethodGet, "/v1/locations", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
