package places

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/nyc-restroom-finder/internal/types"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestGetDetails_ParsesSuccessResponse(t *testing.T) {
	var gotPlaceID, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPlaceID = r.URL.Query().Get("place_id")
		gotKey = r.URL.Query().Get("key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "OK",
			"result": {
				"formatted_address": "New York, NY 10018",
				"photos": [{"url": "https://example.com/a.jpg"}, {"url": "https://example.com/b.jpg"}],
				"geometry": {"location": {"lat": 40.7536, "lng": -73.9832}}
			}
		}`))
	}))
	t.Cleanup(server.Close)

	c := NewClient(server.URL, "test-key", newTestLogger())
	details, err := c.GetDetails(context.Background(), "place-1")
	require.NoError(t, err)

	assert.Equal(t, "place-1", gotPlaceID)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, types.StatusOK, details.Status)
	assert.Equal(t, "New York, NY 10018", details.Address)
	assert.Len(t, details.PhotoURLs, 2)
	assert.InDelta(t, 40.7536, details.Latitude, 1e-9)
	assert.InDelta(t, -73.9832, details.Longitude, 1e-9)
}

func TestGetDetails_NonOKStatusCarriesProviderStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status": "ZERO_RESULTS"}`))
	}))
	t.Cleanup(server.Close)

	c := NewClient(server.URL, "k", newTestLogger())
	_, err := c.GetDetails(context.Background(), "missing")
	require.Error(t, err)

	var lookupErr *types.DetailsLookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, "ZERO_RESULTS", lookupErr.Status)
}

func TestGetDetails_HTTPErrorBecomesLookupError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	c := NewClient(server.URL, "k", newTestLogger())
	_, err := c.GetDetails(context.Background(), "p")
	require.Error(t, err)

	var lookupErr *types.DetailsLookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, "HTTP_500", lookupErr.Status)
}

func TestGetDetails_MalformedBodyBecomesLookupError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))
	t.Cleanup(server.Close)

	c := NewClient(server.URL, "k", newTestLogger())
	_, err := c.GetDetails(context.Background(), "p")

	var lookupErr *types.DetailsLookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, statusUnknown, lookupErr.Status)
}
