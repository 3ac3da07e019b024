package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Kilat-Pet-Delivery/service-estimate/internal/domain/notification"
)

// DefaultResendURL is the Resend send-email endpoint.
const DefaultResendURL = "https://api.resend.com/emails"

// maxErrorBody bounds how much of a failure response is kept as diagnostic text.
const maxErrorBody = 4096

// ResendSender delivers messages through the Resend HTTP API.
type ResendSender struct {
	client   *http.Client
	endpoint string
	apiKey   string
}

// NewResendSender creates a new ResendSender. An empty endpoint selects DefaultResendURL.
func NewResendSender(endpoint, apiKey string) *ResendSender {
	if endpoint == "" {
		endpoint = DefaultResendURL
	}
	return &ResendSender{
		client:   &http.Client{Timeout: 15 * time.Second},
		endpoint: endpoint,
		apiKey:   apiKey,
	}
}

// Send implements notification.Sender. A non-2xx response is returned as an
// error whose text is the raw response body.
func (s *ResendSender) Send(ctx context.Context, msg notification.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("email request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &ProviderError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// ProviderError carries the provider's raw failure response.
type ProviderError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return e.Body
}
