package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tournevent/aramexbridge/internal/events"
	"github.com/tournevent/aramexbridge/internal/store"
	"github.com/tournevent/aramexbridge/pkg/shipper"
	"github.com/tournevent/aramexbridge/pkg/shipper/aramex"
	"golang.org/x/sync/errgroup"
)

// Operation names used in logs and metrics.
const (
	OpQuote         = "quote"
	OpCreate        = "create_shipment"
	OpLabel         = "print_label"
	OpTrack         = "track_shipment"
	OpHistory       = "shipment_history"
	OpConfiguration = "configuration"
)

func shipmentIDRequired() *shipper.Error {
	return shipper.NewError(shipper.ErrValidation, "", "SHIPMENT_ID_REQUIRED", "Shipment ID is required").
		WithCause(shipper.ErrShipmentIDRequired)
}

// Quote returns the carrier's rates for req. Only the fields needed for pricing
// are validated.
func (s *Service) Quote(ctx context.Context, req *shipper.ShipmentRequest) (res Result[[]shipper.Quote]) {
	start := time.Now()
	if req == nil {
		req = &shipper.ShipmentRequest{}
	}
	key := req.Reference
	defer func() { s.observe(ctx, OpQuote, key, start, res.Success, res.Message, res.Err) }()

	res.Data = []shipper.Quote{}
	if problems := shipper.ValidateRateRequest(req); len(problems) > 0 {
		res.Err = &shipper.ValidationError{Problems: problems}
		res.Message = res.Err.Error()
		return res
	}

	r := aramex.ApplyDefaults(req, aramex.ModeRate)
	if r.Reference == "" {
		r.Reference = s.reference("RATE_")
	}
	key = r.Reference

	quotes, err := s.carrier.GetQuote(ctx, r)
	if err != nil {
		res.Err = err
		res.Message = "Error retrieving shipping rates: " + shipper.Message(err)
		return res
	}

	res.Success = true
	res.Message = "Shipping rates retrieved successfully"
	if quotes != nil {
		res.Data = quotes
	}
	return res
}

// Create books a shipment and saves the local record. A failed save keeps the
// successful result and sets Warning.
func (s *Service) Create(ctx context.Context, req *shipper.ShipmentRequest) (res Result[*shipper.CreatedShipment]) {
	start := time.Now()
	if req == nil {
		req = &shipper.ShipmentRequest{}
	}
	key := req.Reference
	defer func() { s.observe(ctx, OpCreate, key, start, res.Success, res.Message, res.Err) }()

	if problems := shipper.ValidateShipment(req); len(problems) > 0 {
		res.Err = &shipper.ValidationError{Problems: problems}
		res.Message = res.Err.Error()
		return res
	}

	r := aramex.ApplyDefaults(req, aramex.ModeCreate)
	if r.Reference == "" {
		r.Reference = s.reference("SHIP_")
	}
	key = r.Reference

	created, err := s.carrier.CreateShipment(ctx, r)
	if err != nil {
		res.Err = err
		res.Message = "Error creating shipment: " + shipper.Message(err)
		return res
	}
	if created.Reference == "" {
		created.Reference = r.Reference
	}

	res.Success = true
	res.Message = "Shipment created successfully"
	res.Data = created

	rec, err := s.saveCreated(ctx, r, created)
	if err != nil {
		s.persistenceFailed(ctx, OpCreate, key, err)
		res.warn("Shipment created but failed to save")
	} else {
		created.RecordID = rec.ID
	}

	if !s.publish(ctx, events.Event{
		Type:       events.TypeShipmentCreated,
		Reference:  r.Reference,
		ShipmentID: created.ShipmentID,
		Data:       created,
	}) {
		res.warn("Failed to publish shipment event")
	}
	return res
}

func (s *Service) saveCreated(ctx context.Context, r *shipper.ShipmentRequest, created *shipper.CreatedShipment) (*store.Record, error) {
	snapshot, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encoding shipment data: %w", err)
	}
	weight, _ := r.Package.Weight.Float()

	rec, err := s.store.Upsert(ctx, r.Reference, store.Fields{
		CarrierShipmentID: created.ShipmentID,
		ForeignWaybill:    created.ForeignWaybill,
		ShipperName:       r.Shipper.Name,
		ShipperCompany:    r.Shipper.Company,
		ConsigneeName:     r.Consignee.Name,
		ConsigneeCompany:  r.Consignee.Company,
		Weight:            weight,
		Dimensions:        dimensions(r.Package),
		Description:       r.Package.Description,
		Status:            "Created",
		LabelURL:          created.LabelURL,
		ShipmentData:      snapshot,
	})
	if err != nil {
		return nil, shipper.NewError(shipper.ErrPersistence, "", "SAVE", "failed to save shipment").WithCause(err)
	}
	return rec, nil
}

func dimensions(p shipper.Package) string {
	return fmt.Sprintf("%sx%sx%s %s", p.Length, p.Width, p.Height, p.DimensionUnit)
}

// Label fetches the label of a booked shipment and stores its URL on the
// matching record.
func (s *Service) Label(ctx context.Context, shipmentID string) (res Result[*shipper.Label]) {
	start := time.Now()
	shipmentID = strings.TrimSpace(shipmentID)
	defer func() { s.observe(ctx, OpLabel, shipmentID, start, res.Success, res.Message, res.Err) }()

	if shipmentID == "" {
		res.Err = shipmentIDRequired()
		res.Message = "Shipment ID is required"
		return res
	}

	label, err := s.carrier.GetLabel(ctx, shipmentID)
	if err != nil {
		res.Err = err
		res.Message = "Error generating shipping label: " + shipper.Message(err)
		return res
	}

	res.Success = true
	res.Message = "Shipping label generated successfully"
	res.Data = label

	if err := s.updateRecord(ctx, shipmentID, store.Fields{LabelURL: label.URL}); err != nil {
		s.persistenceFailed(ctx, OpLabel, shipmentID, err)
		res.warn("Label generated but failed to update shipment record")
	}
	return res
}

// Track fetches the tracking history of a shipment and refreshes the status and
// tracking snapshot of the matching record.
func (s *Service) Track(ctx context.Context, shipmentID string) (res Result[[]shipper.TrackingRecord]) {
	start := time.Now()
	shipmentID = strings.TrimSpace(shipmentID)
	defer func() { s.observe(ctx, OpTrack, shipmentID, start, res.Success, res.Message, res.Err) }()

	res.Data = []shipper.TrackingRecord{}
	if shipmentID == "" {
		res.Err = shipmentIDRequired()
		res.Message = "Shipment ID is required"
		return res
	}

	records, err := s.carrier.Track(ctx, shipmentID)
	if err != nil {
		res.Err = err
		res.Message = "Error tracking shipment: " + shipper.Message(err)
		return res
	}

	res.Success = true
	res.Message = "Tracking information retrieved successfully"
	if records != nil {
		res.Data = records
	}
	if len(records) == 0 {
		return res
	}

	status := records[0].Status
	if status == "" {
		status = "Unknown"
	}
	snapshot, err := json.Marshal(records)
	if err == nil {
		now := s.now()
		err = s.updateRecord(ctx, shipmentID, store.Fields{
			Status:             status,
			TrackingData:       snapshot,
			LastTrackingUpdate: &now,
		})
	}
	if err != nil {
		s.persistenceFailed(ctx, OpTrack, shipmentID, err)
		res.warn("Tracking retrieved but failed to update shipment record")
	}

	if !s.publish(ctx, events.Event{
		Type:       events.TypeTrackingUpdated,
		ShipmentID: shipmentID,
		Data:       records[0],
	}) {
		res.warn("Failed to publish tracking event")
	}
	return res
}

// TrackMany tracks several shipments concurrently. Results are returned in the
// order of ids and are independent of each other.
func (s *Service) TrackMany(ctx context.Context, ids []string) []Result[[]shipper.TrackingRecord] {
	results := make([]Result[[]shipper.TrackingRecord], len(ids))

	g := new(errgroup.Group)
	g.SetLimit(s.trackConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			results[i] = s.Track(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// updateRecord merges f into the record of shipmentID. Shipments without a
// local record are left alone.
func (s *Service) updateRecord(ctx context.Context, shipmentID string, f store.Fields) error {
	rec, err := s.store.FindByCarrierShipmentID(ctx, shipmentID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return shipper.NewError(shipper.ErrPersistence, "", "FIND", "failed to load shipment record").WithCause(err)
	}
	if _, err := s.store.Upsert(ctx, rec.Reference, f); err != nil {
		return shipper.NewError(shipper.ErrPersistence, "", "SAVE", "failed to update shipment record").WithCause(err)
	}
	return nil
}

// History lists the most recent shipment records, newest first.
func (s *Service) History(ctx context.Context, limit int) (res Result[[]store.Record]) {
	start := time.Now()
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	defer func() { s.observe(ctx, OpHistory, fmt.Sprint(limit), start, res.Success, res.Message, res.Err) }()

	res.Data = []store.Record{}
	records, err := s.store.List(ctx, limit)
	if err != nil {
		res.Err = shipper.NewError(shipper.ErrPersistence, "", "LIST", "failed to list shipments").WithCause(err)
		res.Message = "Error retrieving shipment history: " + err.Error()
		return res
	}

	res.Success = true
	res.Message = fmt.Sprintf("Retrieved %d shipment records", len(records))
	if records != nil {
		res.Data = records
	}
	return res
}

// Configuration returns the supported shipping options.
func (s *Service) Configuration(ctx context.Context) Result[shipper.Options] {
	return Result[shipper.Options]{
		Success: true,
		Message: "Configuration retrieved successfully",
		Data:    shipper.Configuration(),
	}
}
