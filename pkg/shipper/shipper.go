// Package shipper provides the carrier-neutral shipment model, input validation
// and error taxonomy shared by carrier integrations.
package shipper

import (
	"context"
)

// Shipper defines the operations a carrier integration must implement.
type Shipper interface {
	// Name returns the carrier identifier (e.g., "aramex").
	Name() string

	// GetQuote returns shipping rate quotes for a shipment.
	GetQuote(ctx context.Context, req *ShipmentRequest) ([]Quote, error)

	// CreateShipment books a new shipment with the carrier.
	CreateShipment(ctx context.Context, req *ShipmentRequest) (*CreatedShipment, error)

	// GetLabel retrieves the printable label of an existing shipment.
	GetLabel(ctx context.Context, shipmentID string) (*Label, error)

	// Track returns the full tracking history of a shipment.
	Track(ctx context.Context, shipmentID string) ([]TrackingRecord, error)
}
