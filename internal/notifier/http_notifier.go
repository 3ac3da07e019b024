package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Kilat-Pet-Delivery/service-estimate/internal/domain/quote"
)

// HTTPNotifier posts quote notices to a remote notification endpoint.
type HTTPNotifier struct {
	client   *http.Client
	endpoint string
}

// NewHTTPNotifier creates a new HTTPNotifier.
func NewHTTPNotifier(endpoint string) *HTTPNotifier {
	return &HTTPNotifier{
		client:   &http.Client{Timeout: 30 * time.Second},
		endpoint: endpoint,
	}
}

// Notify posts the notice; any non-2xx status is a failure.
func (n *HTTPNotifier) Notify(ctx context.Context, notice quote.Notice) error {
	payload, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("failed to encode notice: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build notify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("notify request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("notify endpoint returned HTTP %d", resp.StatusCode)
	}
	return nil
}

// Reachable reports whether the endpoint is a network URL. Endpoints opened
// from local storage (file: or a bare path) cannot be posted to.
func (n *HTTPNotifier) Reachable() bool {
	return IsNetworkEndpoint(n.endpoint)
}

// IsNetworkEndpoint reports whether endpoint uses http or https.
func IsNetworkEndpoint(endpoint string) bool {
	u, err := url.Parse(endpoint)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
