package aramex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tournevent/aramexbridge/pkg/shipper"
)

// Aramex hosts. The environment flag of the credentials picks one per client.
const (
	TestBaseURL       = "https://ws.dev.aramex.net"
	ProductionBaseURL = "https://ws.aramex.net"
)

const (
	endpointCalculateRate   = "ShippingAPI.V2/RateCalculator/CalculateRate"
	endpointCreateShipments = "ShippingAPI.V2/Shipping/CreateShipments"
	endpointPrintLabel      = "ShippingAPI.V2/Shipping/PrintLabel"
	endpointTrackShipments  = "ShippingAPI.V2/Tracking/TrackShipments"

	successCode    = "000"
	mediaType      = "application/json"
	defaultTimeout = 30 * time.Second
	maxBodySize    = 10 << 20
)

// HTTPAPIClient is the production implementation of APIClient.
type HTTPAPIClient struct {
	baseURL    string
	httpClient *http.Client
}

// HTTPAPIClientConfig holds configuration for the HTTP client.
type HTTPAPIClientConfig struct {
	BaseURL  string // Overrides the host selected by TestMode
	TestMode bool
	Timeout  time.Duration
}

// BaseURL returns the Aramex host for the environment.
func BaseURL(testMode bool) string {
	if testMode {
		return TestBaseURL
	}
	return ProductionBaseURL
}

// NewHTTPAPIClient creates a new HTTP-based API client for production use.
func NewHTTPAPIClient(cfg HTTPAPIClientConfig) *HTTPAPIClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = BaseURL(cfg.TestMode)
	}

	return &HTTPAPIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CalculateRate prices a shipment.
func (c *HTTPAPIClient) CalculateRate(ctx context.Context, req *RateRequest) (*RateResponse, error) {
	var result RateResponse
	if err := c.call(ctx, endpointCalculateRate, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateShipments books shipments.
func (c *HTTPAPIClient) CreateShipments(ctx context.Context, req *CreateShipmentsRequest) (*CreateShipmentsResponse, error) {
	var result CreateShipmentsResponse
	if err := c.call(ctx, endpointCreateShipments, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// PrintLabel renders a label.
func (c *HTTPAPIClient) PrintLabel(ctx context.Context, req *PrintLabelRequest) (*PrintLabelResponse, error) {
	var result PrintLabelResponse
	if err := c.call(ctx, endpointPrintLabel, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// TrackShipments fetches tracking history.
func (c *HTTPAPIClient) TrackShipments(ctx context.Context, req *TrackShipmentsRequest) (*TrackShipmentsResponse, error) {
	var result TrackShipmentsResponse
	if err := c.call(ctx, endpointTrackShipments, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// call posts payload to endpoint and decodes the reply into out.
//
// Failures are classified in order: transport errors and non-2xx statuses are
// network errors, a body flagged HasErrors with at least one notification whose
// code is not "000" is a carrier API error. A flagged body that only carries
// success notifications is returned as a success.
func (c *HTTPAPIClient) call(ctx context.Context, endpoint string, payload, out any) error {
	resp, err := c.doRequest(ctx, endpoint, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return shipper.NewNetworkError(carrierName, "failed to read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return shipper.NewNetworkError(carrierName, fmt.Sprintf("HTTP %d from %s", resp.StatusCode, endpoint), nil).
			WithStatusCode(resp.StatusCode)
	}

	var envelope Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return shipper.NewNetworkError(carrierName, "failed to decode response", err).
			WithStatusCode(resp.StatusCode).
			WithRetryable(false)
	}

	if envelope.HasErrors {
		if apiErr := notificationsError(envelope.Notifications); apiErr != nil {
			return apiErr.WithStatusCode(resp.StatusCode)
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return shipper.NewNetworkError(carrierName, "failed to decode response", err).
			WithStatusCode(resp.StatusCode).
			WithRetryable(false)
	}
	return nil
}

// notificationsError returns nil when no notification reports a failure.
func notificationsError(notifications []Notification) *shipper.Error {
	var (
		code     string
		messages []string
	)
	for _, n := range notifications {
		if n.Code == successCode {
			continue
		}
		if code == "" {
			code = n.Code
		}
		msg := n.Message
		if msg == "" {
			msg = "Unknown error"
		}
		messages = append(messages, msg)
	}
	if len(messages) == 0 {
		return nil
	}
	return shipper.NewCarrierAPIError(carrierName, code, messages)
}

// doRequest performs a JSON POST against the configured host.
func (c *HTTPAPIClient) doRequest(ctx context.Context, endpoint string, payload any) (*http.Response, error) {
	url := c.baseURL + "/" + endpoint

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, shipper.NewError(shipper.ErrBuild, carrierName, "MARSHAL", "failed to marshal request body").WithCause(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, shipper.NewError(shipper.ErrBuild, carrierName, "REQUEST", "failed to create request").WithCause(err)
	}

	req.Header.Set("Content-Type", mediaType)
	req.Header.Set("Accept", mediaType)
	req.Header.Set("User-Agent", "aramexbridge/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, shipper.NewNetworkError(carrierName, "request to "+endpoint+" failed", err)
	}
	return resp, nil
}

// Ensure HTTPAPIClient implements APIClient interface
var _ APIClient = (*HTTPAPIClient)(nil)
