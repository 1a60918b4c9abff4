// Package mock provides a mock shipper implementation for testing.
package mock

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"
	"github.com/tournevent/aramexbridge/pkg/shipper"
)

// Client is a mock shipper for testing. Responses are deterministic so repeated
// calls yield identical payloads. Setting an Err field makes that operation fail.
type Client struct {
	name string

	QuoteErr  error
	CreateErr error
	LabelErr  error
	TrackErr  error

	// Tracking overrides the default tracking history per shipment ID.
	Tracking map[string][]shipper.TrackingRecord

	calls atomic.Int64
	seq   atomic.Int64

	mu   sync.Mutex
	last *shipper.ShipmentRequest
}

// New creates a new mock shipper.
func New(name string) *Client {
	return &Client{name: name}
}

// Name returns the carrier name.
func (c *Client) Name() string {
	return c.name
}

// Calls returns the number of carrier operations invoked.
func (c *Client) Calls() int {
	return int(c.calls.Load())
}

// LastRequest returns the last shipment request seen by GetQuote or CreateShipment.
func (c *Client) LastRequest() *shipper.ShipmentRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

func (c *Client) record(req *shipper.ShipmentRequest) {
	c.calls.Add(1)
	if req == nil {
		return
	}
	c.mu.Lock()
	c.last = req
	c.mu.Unlock()
}

// GetQuote returns a single fixed quote.
func (c *Client) GetQuote(ctx context.Context, req *shipper.ShipmentRequest) ([]shipper.Quote, error) {
	c.record(req)
	if c.QuoteErr != nil {
		return nil, c.QuoteErr
	}

	return []shipper.Quote{
		{
			ServiceType: "Standard",
			ServiceName: fmt.Sprintf("%s Standard", c.name),
			Amount:      decimal.RequireFromString("25.50"),
			Currency:    "AED",
		},
	}, nil
}

// CreateShipment returns sequential shipment IDs.
func (c *Client) CreateShipment(ctx context.Context, req *shipper.ShipmentRequest) (*shipper.CreatedShipment, error) {
	c.record(req)
	if c.CreateErr != nil {
		return nil, c.CreateErr
	}

	id := fmt.Sprintf("%d", 44000000000+c.seq.Add(1))
	return &shipper.CreatedShipment{
		ShipmentID:     id,
		Reference:      req.Reference,
		ForeignWaybill: "FH" + id,
		LabelURL:       fmt.Sprintf("https://labels.%s.mock/%s.pdf", c.name, id),
	}, nil
}

// GetLabel returns a label URL derived from the shipment ID.
func (c *Client) GetLabel(ctx context.Context, shipmentID string) (*shipper.Label, error) {
	c.record(nil)
	if c.LabelErr != nil {
		return nil, c.LabelErr
	}

	return &shipper.Label{
		ShipmentID: shipmentID,
		URL:        fmt.Sprintf("https://labels.%s.mock/%s.pdf", c.name, shipmentID),
	}, nil
}

// Track returns the configured history, or a fixed in-transit history.
func (c *Client) Track(ctx context.Context, shipmentID string) ([]shipper.TrackingRecord, error) {
	c.record(nil)
	if c.TrackErr != nil {
		return nil, c.TrackErr
	}

	if records, ok := c.Tracking[shipmentID]; ok {
		return records, nil
	}

	return []shipper.TrackingRecord{
		{
			WaybillNumber: shipmentID,
			Status:        "SH003",
			GrossWeight:   1.5,
			ChargedWeight: 2,
			Events: []shipper.TrackingEvent{
				{Date: "2024-01-15T09:30:00", Location: "Dubai", Status: "Record created"},
				{Date: "2024-01-15T18:10:00", Location: "Dubai", Status: "Departed facility"},
			},
		},
	}, nil
}

var _ shipper.Shipper = (*Client)(nil)
