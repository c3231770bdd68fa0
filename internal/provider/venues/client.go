package venues

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/FACorreiaa/nyc-restroom-finder/internal/types"
)

const (
	// versionDate is the fixed protocol-version parameter the venue
	// provider requires on every request.
	versionDate = "20180323"

	// exploreLimit bounds the result set; the content panel never shows
	// more than this many venues.
	exploreLimit = 5

	// exploreSections narrows results to food/drink/shopping venues.
	exploreSections = "food,drinks,coffee,shops"
)

// Client queries the venue provider's explore endpoint for points of
// interest near a coordinate. Failures surface as
// *types.VenuesLookupError; no retries, no per-call timeout.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	client       *http.Client
	logger       *slog.Logger
}

func NewClient(baseURL, clientID, clientSecret string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		client:       &http.Client{},
		logger:       logger,
	}
}

type exploreResponse struct {
	Meta struct {
		Code        int    `json:"code"`
		ErrorDetail string `json:"errorDetail"`
	} `json:"meta"`
	Response struct {
		Groups []struct {
			Items []struct {
				Venue struct {
					Name       string `json:"name"`
					URL        string `json:"url"`
					Categories []struct {
						Name string `json:"name"`
					} `json:"categories"`
					Location struct {
						FormattedAddress []string `json:"formattedAddress"`
					} `json:"location"`
					Contact struct {
						FormattedPhone string `json:"formattedPhone"`
					} `json:"contact"`
				} `json:"venue"`
			} `json:"items"`
		} `json:"groups"`
	} `json:"response"`
}

// ExploreNearby returns up to five food/drink/shopping venues around the
// given coordinate, in provider-returned order.
func (c *Client) ExploreNearby(ctx context.Context, lat, lng float64) ([]types.Venue, error) {
	params := url.Values{}
	params.Set("ll", fmt.Sprintf("%f,%f", lat, lng))
	params.Set("limit", strconv.Itoa(exploreLimit))
	params.Set("section", exploreSections)
	params.Set("client_id", c.clientID)
	params.Set("client_secret", c.clientSecret)
	params.Set("v", versionDate)

	endpoint := fmt.Sprintf("%s/venues/explore?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &types.VenuesLookupError{Reason: err.Error()}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "venues request failed", slog.Any("error", err))
		return nil, &types.VenuesLookupError{Reason: err.Error()}
	}
	defer resp.Body.Close()

	var body exploreResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.logger.ErrorContext(ctx, "failed to decode venues response", slog.Any("error", err))
		return nil, &types.VenuesLookupError{Reason: "malformed provider response"}
	}

	if resp.StatusCode != http.StatusOK || (body.Meta.Code != 0 && body.Meta.Code != http.StatusOK) {
		reason := body.Meta.ErrorDetail
		if reason == "" {
			reason = fmt.Sprintf("provider returned HTTP %d", resp.StatusCode)
		}
		c.logger.ErrorContext(ctx, "venues request rejected", slog.String("reason", reason))
		return nil, &types.VenuesLookupError{Reason: reason}
	}

	var out []types.Venue
	for _, group := range body.Response.Groups {
		for _, item := range group.Items {
			v := types.Venue{
				Name:         item.Venue.Name,
				AddressLines: item.Venue.Location.FormattedAddress,
				Phone:        item.Venue.Contact.FormattedPhone,
				URL:          item.Venue.URL,
			}
			if len(item.Venue.Categories) > 0 {
				v.Category = item.Venue.Categories[0].Name
			}
			out = append(out, v)
		}
	}
	if len(out) > exploreLimit {
		out = out[:exploreLimit]
	}
	return out, nil
}
