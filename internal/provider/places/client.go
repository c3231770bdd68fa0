package places

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/FACorreiaa/nyc-restroom-finder/internal/types"
)

// statusUnknown mirrors the mapping provider's catch-all failure status
// and is used when the request never produced a provider status at all.
const statusUnknown = "UNKNOWN_ERROR"

// Client resolves place identifiers to address and photo metadata via
// the mapping provider's details endpoint. Every failure surfaces as a
// *types.DetailsLookupError carrying the provider status; there are no
// retries and no per-call timeout.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *slog.Logger
}

func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{},
		logger:  logger,
	}
}

type detailsResponse struct {
	Status string `json:"status"`
	Result struct {
		FormattedAddress string `json:"formatted_address"`
		Photos           []struct {
			URL string `json:"url"`
		} `json:"photos"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"result"`
}

// GetDetails fetches details for one place identifier. A provider
// status other than "OK" is a details failure carrying that status
// verbatim.
func (c *Client) GetDetails(ctx context.Context, placeID string) (*types.PlaceDetails, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("key", c.apiKey)

	endpoint := fmt.Sprintf("%s/details/json?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &types.DetailsLookupError{Status: statusUnknown}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "details request failed", slog.Any("error", err))
		return nil, &types.DetailsLookupError{Status: statusUnknown}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.ErrorContext(ctx, "details request rejected", slog.Int("status_code", resp.StatusCode))
		return nil, &types.DetailsLookupError{Status: fmt.Sprintf("HTTP_%d", resp.StatusCode)}
	}

	var body detailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.logger.ErrorContext(ctx, "failed to decode details response", slog.Any("error", err))
		return nil, &types.DetailsLookupError{Status: statusUnknown}
	}

	if body.Status != types.StatusOK {
		return nil, &types.DetailsLookupError{Status: body.Status}
	}

	details := &types.PlaceDetails{
		Status:    body.Status,
		Address:   body.Result.FormattedAddress,
		Latitude:  body.Result.Geometry.Location.Lat,
		Longitude: body.Result.Geometry.Location.Lng,
	}
	for _, p := range body.Result.Photos {
		details.PhotoURLs = append(details.PhotoURLs, p.URL)
	}
	return details, nil
}
