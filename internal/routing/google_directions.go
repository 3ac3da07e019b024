package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Kilat-Pet-Delivery/service-estimate/internal/domain/quote"
	"go.uber.org/zap"
)

// DefaultDirectionsURL is the Google Directions JSON endpoint.
const DefaultDirectionsURL = "https://maps.googleapis.com/maps/api/directions/json"

// directionsResponse mirrors the subset of the Directions API response we read.
type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		Legs []struct {
			StartAddress string `json:"start_address"`
			EndAddress   string `json:"end_address"`
			Distance     *struct {
				Value int `json:"value"`
			} `json:"distance"`
			Duration *struct {
				Value int `json:"value"`
			} `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

// GoogleDirectionsProvider resolves driving routes with the Google Directions API.
type GoogleDirectionsProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	region  string
	logger  *zap.Logger
}

// NewGoogleDirectionsProvider creates a new GoogleDirectionsProvider.
// An empty baseURL selects DefaultDirectionsURL.
func NewGoogleDirectionsProvider(baseURL, apiKey, region string, logger *zap.Logger) *GoogleDirectionsProvider {
	if baseURL == "" {
		baseURL = DefaultDirectionsURL
	}
	return &GoogleDirectionsProvider{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
		region:  region,
		logger:  logger,
	}
}

// Route returns the first leg of the first driving route between origin and destination.
func (p *GoogleDirectionsProvider) Route(ctx context.Context, origin, destination string) (quote.RouteResult, error) {
	q := url.Values{}
	q.Set("origin", origin)
	q.Set("destination", destination)
	q.Set("mode", "driving")
	q.Set("key", p.apiKey)
	if p.region != "" {
		q.Set("region", p.region)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return quote.RouteResult{}, fmt.Errorf("failed to build directions request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return quote.RouteResult{}, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return quote.RouteResult{}, fmt.Errorf("directions request returned HTTP %d", resp.StatusCode)
	}

	var body directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return quote.RouteResult{}, fmt.Errorf("failed to decode directions response: %w", err)
	}

	if body.Status != "OK" {
		p.logger.Warn("directions lookup returned non-OK status",
			zap.String("status", body.Status),
			zap.String("error_message", body.ErrorMessage),
		)
		return quote.RouteResult{}, fmt.Errorf("%w: status %s", quote.ErrRouteNotFound, body.Status)
	}
	if len(body.Routes) == 0 || len(body.Routes[0].Legs) == 0 {
		return quote.RouteResult{}, fmt.Errorf("%w: response has no route legs", quote.ErrRouteNotFound)
	}

	leg := body.Routes[0].Legs[0]
	result := quote.RouteResult{
		OriginLabel:      leg.StartAddress,
		DestinationLabel: leg.EndAddress,
	}
	// Missing metrics degrade to zero rather than failing the lookup.
	if leg.Distance != nil {
		result.OneWayDistanceKm = float64(leg.Distance.Value) / 1000
	}
	if leg.Duration != nil {
		result.OneWayDurationSeconds = leg.Duration.Value
	}
	return result, nil
}
