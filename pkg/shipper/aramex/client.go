// Package aramex provides integration with the Aramex Shipping API V2.
package aramex

import (
	"context"
	"time"

	"github.com/tournevent/aramexbridge/pkg/shipper"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

const carrierName = "aramex"

// Config holds Aramex client configuration. Account credentials come from the
// SettingsProvider.
type Config struct {
	BaseURL string // Overrides the host chosen from the credentials' test mode
	Timeout time.Duration
	UseMock bool // When true, uses mock API client
}

// Client is the Aramex shipper client.
// It implements the shipper.Shipper interface and delegates
// API calls to the underlying APIClient (mock or HTTP).
type Client struct {
	creds     shipper.Credentials
	apiClient APIClient
	logger    *otelzap.Logger
	tracer    trace.Tracer
}

// New creates a new Aramex client. Credentials are read from settings once.
func New(cfg Config, settings SettingsProvider, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	creds := credentialsOf(settings)

	var apiClient APIClient
	if cfg.UseMock {
		apiClient = NewMockAPIClient()
	} else {
		apiClient = NewHTTPAPIClient(HTTPAPIClientConfig{
			BaseURL:  cfg.BaseURL,
			TestMode: creds.TestMode,
			Timeout:  cfg.Timeout,
		})
	}

	return newClient(creds, apiClient, logger, tracer)
}

// NewWithAPIClient creates a new Aramex client with a custom API client.
// This is useful for injecting mock clients in tests.
func NewWithAPIClient(settings SettingsProvider, apiClient APIClient, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	return newClient(credentialsOf(settings), apiClient, logger, tracer)
}

func newClient(creds shipper.Credentials, apiClient APIClient, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer(carrierName)
	}
	return &Client{
		creds:     creds,
		apiClient: apiClient,
		logger:    logger,
		tracer:    tracer,
	}
}

func credentialsOf(settings SettingsProvider) shipper.Credentials {
	if settings == nil {
		return shipper.Credentials{}
	}
	return settings.Get()
}

// Name returns the carrier name.
func (c *Client) Name() string {
	return carrierName
}

// GetQuote prices the shipment.
func (c *Client) GetQuote(ctx context.Context, req *shipper.ShipmentRequest) ([]shipper.Quote, error) {
	ctx, span := c.tracer.Start(ctx, "aramex.GetQuote", trace.WithAttributes(
		attribute.String("shipment.reference", req.Reference),
		attribute.String("shipment.origin_country", req.Origin.CountryCode),
		attribute.String("shipment.destination_country", req.Destination.CountryCode),
	))
	defer span.End()

	c.logger.Ctx(ctx).Info("Getting Aramex rates",
		zap.String("reference", req.Reference),
		zap.String("origin_city", req.Origin.City),
		zap.String("destination_city", req.Destination.City),
	)

	apiReq, err := BuildRatePayload(ApplyDefaults(req, ModeRate), c.creds)
	if err != nil {
		return nil, c.fail(ctx, span, err)
	}

	apiResp, err := c.apiClient.CalculateRate(ctx, apiReq)
	if err != nil {
		return nil, c.fail(ctx, span, err)
	}

	quotes := mapRates(apiResp)
	span.SetAttributes(attribute.Int("aramex.quotes", len(quotes)))
	return quotes, nil
}

// CreateShipment books the shipment.
func (c *Client) CreateShipment(ctx context.Context, req *shipper.ShipmentRequest) (*shipper.CreatedShipment, error) {
	ctx, span := c.tracer.Start(ctx, "aramex.CreateShipment", trace.WithAttributes(
		attribute.String("shipment.reference", req.Reference),
	))
	defer span.End()

	c.logger.Ctx(ctx).Info("Creating Aramex shipment",
		zap.String("reference", req.Reference),
		zap.String("consignee", req.Consignee.Name),
	)

	apiReq, err := BuildCreatePayload(ApplyDefaults(req, ModeCreate), c.creds)
	if err != nil {
		return nil, c.fail(ctx, span, err)
	}

	apiResp, err := c.apiClient.CreateShipments(ctx, apiReq)
	if err != nil {
		return nil, c.fail(ctx, span, err)
	}

	created, err := mapCreated(apiResp)
	if err != nil {
		return nil, c.fail(ctx, span, err)
	}

	span.SetAttributes(attribute.String("aramex.shipment_id", created.ShipmentID))
	return created, nil
}

// GetLabel fetches the label URL of a shipment.
func (c *Client) GetLabel(ctx context.Context, shipmentID string) (*shipper.Label, error) {
	ctx, span := c.tracer.Start(ctx, "aramex.GetLabel", trace.WithAttributes(
		attribute.String("aramex.shipment_id", shipmentID),
	))
	defer span.End()

	c.logger.Ctx(ctx).Info("Getting Aramex label", zap.String("shipment_id", shipmentID))

	apiReq, err := BuildLabelPayload(shipmentID, c.creds)
	if err != nil {
		return nil, c.fail(ctx, span, err)
	}

	apiResp, err := c.apiClient.PrintLabel(ctx, apiReq)
	if err != nil {
		return nil, c.fail(ctx, span, err)
	}

	label, err := mapLabel(shipmentID, apiResp)
	if err != nil {
		return nil, c.fail(ctx, span, err)
	}
	return label, nil
}

// Track returns the full tracking history of a shipment.
func (c *Client) Track(ctx context.Context, shipmentID string) ([]shipper.TrackingRecord, error) {
	ctx, span := c.tracer.Start(ctx, "aramex.Track", trace.WithAttributes(
		attribute.String("aramex.shipment_id", shipmentID),
	))
	defer span.End()

	c.logger.Ctx(ctx).Info("Tracking Aramex shipment", zap.String("shipment_id", shipmentID))

	apiReq, err := BuildTrackPayload(shipmentID, c.creds)
	if err != nil {
		return nil, c.fail(ctx, span, err)
	}

	apiResp, err := c.apiClient.TrackShipments(ctx, apiReq)
	if err != nil {
		return nil, c.fail(ctx, span, err)
	}

	return mapTracking(apiResp), nil
}

func (c *Client) fail(ctx context.Context, span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	c.logger.Ctx(ctx).Error("Aramex API error", zap.Error(err))
	return err
}

var _ shipper.Shipper = (*Client)(nil)
