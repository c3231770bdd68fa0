package venues

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/nyc-restroom-finder/internal/types"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

const exploreBody = `{
	"meta": {"code": 200},
	"response": {
		"groups": [{
			"items": [
				{"venue": {
					"name": "Joe's Pizza",
					"categories": [{"name": "Pizza Place"}],
					"location": {"formattedAddress": ["7 Carmine St", "New York, NY 10014"]},
					"contact": {"formattedPhone": "(212) 366-1182"}
				}},
				{"venue": {
					"name": "Blue Bottle",
					"url": "https://bluebottlecoffee.com",
					"categories": [{"name": "Coffee Shop"}],
					"location": {"formattedAddress": ["54 W 40th St"]},
					"contact": {}
				}}
			]
		}]
	}
}`

func TestExploreNearby_ParsesVenuesInOrder(t *testing.T) {
	var query url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(exploreBody))
	}))
	t.Cleanup(server.Close)

	c := NewClient(server.URL, "id", "secret", newTestLogger())
	got, err := c.ExploreNearby(context.Background(), 40.7536, -73.9832)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "Joe's Pizza", got[0].Name)
	assert.Equal(t, "Pizza Place", got[0].Category)
	assert.Equal(t, []string{"7 Carmine St", "New York, NY 10014"}, got[0].AddressLines)
	assert.Equal(t, "(212) 366-1182", got[0].Phone)
	assert.Empty(t, got[0].URL)

	assert.Equal(t, "Blue Bottle", got[1].Name)
	assert.Equal(t, "https://bluebottlecoffee.com", got[1].URL)
	assert.Empty(t, got[1].Phone)

	// Request carries credentials, the fixed version date, the result
	// bound and the category sections.
	assert.Equal(t, "id", query.Get("client_id"))
	assert.Equal(t, "secret", query.Get("client_secret"))
	assert.Equal(t, versionDate, query.Get("v"))
	assert.Equal(t, "5", query.Get("limit"))
	assert.Equal(t, exploreSections, query.Get("section"))
}

func TestExploreNearby_TruncatesToLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{
			"meta": {"code": 200},
			"response": {"groups": [{"items": [
				{"venue": {"name": "a"}}, {"venue": {"name": "b"}},
				{"venue": {"name": "c"}}, {"venue": {"name": "d"}},
				{"venue": {"name": "e"}}, {"venue": {"name": "f"}}
			]}]}
		}`))
	}))
	t.Cleanup(server.Close)

	c := NewClient(server.URL, "id", "secret", newTestLogger())
	got, err := c.ExploreNearby(context.Background(), 0, 0)
	require.NoError(t, err)

	require.Len(t, got, exploreLimit)
	assert.Equal(t, "e", got[4].Name)
}

func TestExploreNearby_MetaErrorCarriesDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"meta": {"code": 401, "errorDetail": "invalid credentials"}}`))
	}))
	t.Cleanup(server.Close)

	c := NewClient(server.URL, "bad", "creds", newTestLogger())
	_, err := c.ExploreNearby(context.Background(), 0, 0)
	require.Error(t, err)

	var lookupErr *types.VenuesLookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, "invalid credentials", lookupErr.Reason)
}

func TestExploreNearby_MalformedBodyBecomesLookupError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>nope</html>"))
	}))
	t.Cleanup(server.Close)

	c := NewClient(server.URL, "id", "secret", newTestLogger())
	_, err := c.ExploreNearby(context.Background(), 0, 0)

	var lookupErr *types.VenuesLookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, "malformed provider response", lookupErr.Reason)
}

func TestExploreNearby_EmptyGroupsYieldsEmptyList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"meta": {"code": 200}, "response": {"groups": []}}`))
	}))
	t.Cleanup(server.Close)

	c := NewClient(server.URL, "id", "secret", newTestLogger())
	got, err := c.ExploreNearby(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
