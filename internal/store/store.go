// Package store keeps the local record of shipments booked with the carrier.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned when no record matches a lookup.
var ErrNotFound = errors.New("shipment record not found")

// Record is the durable row of one shipment, keyed by its internal reference.
type Record struct {
	ID                 string          `json:"id"`
	Reference          string          `json:"reference"`
	CarrierShipmentID  string          `json:"carrier_shipment_id"`
	ForeignWaybill     string          `json:"foreign_hawb,omitempty"`
	ShipperName        string          `json:"shipper_name,omitempty"`
	ShipperCompany     string          `json:"shipper_company,omitempty"`
	ConsigneeName      string          `json:"consignee_name,omitempty"`
	ConsigneeCompany   string          `json:"consignee_company,omitempty"`
	Weight             float64         `json:"weight,omitempty"`
	Dimensions         string          `json:"dimensions,omitempty"`
	Description        string          `json:"description,omitempty"`
	Status             string          `json:"status"`
	LabelURL           string          `json:"label_url,omitempty"`
	ShipmentData       json.RawMessage `json:"shipment_data,omitempty"`
	TrackingData       json.RawMessage `json:"tracking_data,omitempty"`
	LastTrackingUpdate *time.Time      `json:"last_tracking_update,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// Fields is a partial update of a Record. Empty strings, zero weight and nil
// values leave the stored column unchanged.
type Fields struct {
	CarrierShipmentID  string
	ForeignWaybill     string
	ShipperName        string
	ShipperCompany     string
	ConsigneeName      string
	ConsigneeCompany   string
	Weight             float64
	Dimensions         string
	Description        string
	Status             string
	LabelURL           string
	ShipmentData       json.RawMessage
	TrackingData       json.RawMessage
	LastTrackingUpdate *time.Time
}

// Store defines the persistence collaborator of the shipping service.
// Implementations must be safe for concurrent use; concurrent upserts of the
// same reference resolve as last writer wins.
type Store interface {
	// Upsert inserts the record for reference or merges f into the existing one.
	Upsert(ctx context.Context, reference string, f Fields) (*Record, error)

	// FindByCarrierShipmentID returns the newest record for a carrier shipment ID.
	FindByCarrierShipmentID(ctx context.Context, id string) (*Record, error)

	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int) ([]Record, error)
}

// apply merges f into r following the Fields rules.
func (f Fields) apply(r *Record) {
	setString(&r.CarrierShipmentID, f.CarrierShipmentID)
	setString(&r.ForeignWaybill, f.ForeignWaybill)
	setString(&r.ShipperName, f.ShipperName)
	setString(&r.ShipperCompany, f.ShipperCompany)
	setString(&r.ConsigneeName, f.ConsigneeName)
	setString(&r.ConsigneeCompany, f.ConsigneeCompany)
	setString(&r.Dimensions, f.Dimensions)
	setString(&r.Description, f.Description)
	setString(&r.Status, f.Status)
	setString(&r.LabelURL, f.LabelURL)
	if f.Weight > 0 {
		r.Weight = f.Weight
	}
	if len(f.ShipmentData) > 0 {
		r.ShipmentData = append(json.RawMessage(nil), f.ShipmentData...)
	}
	if len(f.TrackingData) > 0 {
		r.TrackingData = append(json.RawMessage(nil), f.TrackingData...)
	}
	if f.LastTrackingUpdate != nil {
		t := *f.LastTrackingUpdate
		r.LastTrackingUpdate = &t
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
