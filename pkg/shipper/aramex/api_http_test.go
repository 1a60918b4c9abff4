package aramex_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/aramexbridge/pkg/shipper"
	"github.com/tournevent/aramexbridge/pkg/shipper/aramex"
)

type captured struct {
	mu     sync.Mutex
	method string
	path   string
	header http.Header
	body   []byte
}

func (c *captured) get() (string, string, http.Header, []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.method, c.path, c.header, c.body
}

func newServer(t *testing.T, status int, body string) (*httptest.Server, *captured) {
	t.Helper()
	rec := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		rec.mu.Lock()
		rec.method, rec.path, rec.header, rec.body = r.Method, r.URL.Path, r.Header.Clone(), data
		rec.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestBaseURL(t *testing.T) {
	assert.Equal(t, "https://ws.dev.aramex.net", aramex.BaseURL(true))
	assert.Equal(t, "https://ws.aramex.net", aramex.BaseURL(false))
}

func TestHTTPAPIClient_CalculateRate_Success(t *testing.T) {
	srv, rec := newServer(t, http.StatusOK,
		`{"HasErrors": false, "Notifications": [], "TotalAmount": {"Value": 25.50, "CurrencyCode": "AED"}}`)
	client := aramex.NewHTTPAPIClient(aramex.HTTPAPIClientConfig{BaseURL: srv.URL})

	resp, err := client.CalculateRate(context.Background(), &aramex.RateRequest{})

	require.NoError(t, err)
	require.NotNil(t, resp.TotalAmount)
	assert.Equal(t, 25.50, resp.TotalAmount.Value)
	assert.Equal(t, "AED", resp.TotalAmount.CurrencyCode)

	method, path, header, _ := rec.get()
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/ShippingAPI.V2/RateCalculator/CalculateRate", path)
	assert.Equal(t, "application/json", header.Get("Content-Type"))
	assert.Equal(t, "application/json", header.Get("Accept"))
}

func TestHTTPAPIClient_Endpoints(t *testing.T) {
	tests := []struct {
		name string
		path string
		call func(c *aramex.HTTPAPIClient) error
	}{
		{"create", "/ShippingAPI.V2/Shipping/CreateShipments", func(c *aramex.HTTPAPIClient) error {
			_, err := c.CreateShipments(context.Background(), &aramex.CreateShipmentsRequest{})
			return err
		}},
		{"label", "/ShippingAPI.V2/Shipping/PrintLabel", func(c *aramex.HTTPAPIClient) error {
			_, err := c.PrintLabel(context.Background(), &aramex.PrintLabelRequest{})
			return err
		}},
		{"track", "/ShippingAPI.V2/Tracking/TrackShipments", func(c *aramex.HTTPAPIClient) error {
			_, err := c.TrackShipments(context.Background(), &aramex.TrackShipmentsRequest{})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, rec := newServer(t, http.StatusOK, `{"HasErrors": false}`)
			client := aramex.NewHTTPAPIClient(aramex.HTTPAPIClientConfig{BaseURL: srv.URL + "/"})

			require.NoError(t, tt.call(client))
			_, path, _, _ := rec.get()
			assert.Equal(t, tt.path, path)
		})
	}
}

func TestHTTPAPIClient_SendsPayload(t *testing.T) {
	srv, rec := newServer(t, http.StatusOK, `{"HasErrors": false}`)
	client := aramex.NewHTTPAPIClient(aramex.HTTPAPIClientConfig{BaseURL: srv.URL})

	_, err := client.TrackShipments(context.Background(), &aramex.TrackShipmentsRequest{
		Shipments: []string{"123"},
	})
	require.NoError(t, err)

	_, _, _, body := rec.get()
	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, []any{"123"}, got["Shipments"])
	assert.Equal(t, false, got["GetLastTrackingUpdateOnly"])
}

func TestHTTPAPIClient_CarrierError(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK,
		`{"HasErrors": true, "Notifications": [{"Code": "001", "Message": "Test error message"}]}`)
	client := aramex.NewHTTPAPIClient(aramex.HTTPAPIClientConfig{BaseURL: srv.URL})

	_, err := client.CalculateRate(context.Background(), &aramex.RateRequest{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, shipper.ErrCarrierAPI))
	assert.Contains(t, err.Error(), "Test error message")
	assert.False(t, shipper.IsRetryable(err))
}

func TestHTTPAPIClient_CarrierError_JoinsFailuresOnly(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"HasErrors": true, "Notifications": [
		{"Code": "000", "Message": "ok"},
		{"Code": "ERR01", "Message": "Invalid city"},
		{"Code": "ERR02", "Message": ""}
	]}`)
	client := aramex.NewHTTPAPIClient(aramex.HTTPAPIClientConfig{BaseURL: srv.URL})

	_, err := client.CreateShipments(context.Background(), &aramex.CreateShipmentsRequest{})

	var shipErr *shipper.Error
	require.True(t, errors.As(err, &shipErr))
	assert.Equal(t, "Invalid city; Unknown error", shipErr.Message)
	assert.Equal(t, "ERR01", shipErr.Code)
}

func TestHTTPAPIClient_ErrorFlagWithOnlySuccessCodes(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK,
		`{"HasErrors": true, "Notifications": [{"Code": "000", "Message": "Success"}], "TotalAmount": {"Value": 10, "CurrencyCode": "AED"}}`)
	client := aramex.NewHTTPAPIClient(aramex.HTTPAPIClientConfig{BaseURL: srv.URL})

	resp, err := client.CalculateRate(context.Background(), &aramex.RateRequest{})

	require.NoError(t, err)
	assert.True(t, resp.HasErrors)
	assert.Equal(t, 10.0, resp.TotalAmount.Value)
}

func TestHTTPAPIClient_HTTPStatusIsNetworkError(t *testing.T) {
	srv, _ := newServer(t, http.StatusInternalServerError, `{"HasErrors": true}`)
	client := aramex.NewHTTPAPIClient(aramex.HTTPAPIClientConfig{BaseURL: srv.URL})

	_, err := client.PrintLabel(context.Background(), &aramex.PrintLabelRequest{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, shipper.ErrNetwork))
	assert.True(t, shipper.IsRetryable(err))

	var shipErr *shipper.Error
	require.True(t, errors.As(err, &shipErr))
	assert.Equal(t, http.StatusInternalServerError, shipErr.StatusCode)
}

func TestHTTPAPIClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := aramex.NewHTTPAPIClient(aramex.HTTPAPIClientConfig{BaseURL: url})
	_, err := client.TrackShipments(context.Background(), &aramex.TrackShipmentsRequest{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, shipper.ErrNetwork))
	assert.True(t, shipper.IsRetryable(err))
}

func TestHTTPAPIClient_UndecodableBody(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `<html>maintenance</html>`)
	client := aramex.NewHTTPAPIClient(aramex.HTTPAPIClientConfig{BaseURL: srv.URL})

	_, err := client.CalculateRate(context.Background(), &aramex.RateRequest{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, shipper.ErrNetwork))
}

func TestHTTPAPIClient_ContextCancelled(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"HasErrors": false}`)
	client := aramex.NewHTTPAPIClient(aramex.HTTPAPIClientConfig{BaseURL: srv.URL})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.CalculateRate(ctx, &aramex.RateRequest{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
