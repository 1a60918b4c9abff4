package aramex

import (
	"github.com/shopspring/decimal"
	"github.com/tournevent/aramexbridge/pkg/shipper"
)

const (
	standardServiceType = "Standard"
	standardServiceName = "Standard"
	standardServiceDesc = "Standard Aramex shipping service"
)

// ============================================================================
// Conversion helpers: API models -> Shipper models
// ============================================================================

// mapRates yields one quote when the carrier priced the shipment and none otherwise.
func mapRates(resp *RateResponse) []shipper.Quote {
	quotes := []shipper.Quote{}
	if resp == nil || resp.TotalAmount == nil {
		return quotes
	}

	currency := resp.TotalAmount.CurrencyCode
	if currency == "" {
		currency = defaultCurrency
	}

	return append(quotes, shipper.Quote{
		ServiceType: standardServiceType,
		ServiceName: standardServiceName,
		Amount:      decimal.NewFromFloat(resp.TotalAmount.Value),
		Currency:    currency,
		Description: standardServiceDesc,
	})
}

func mapCreated(resp *CreateShipmentsResponse) (*shipper.CreatedShipment, error) {
	if resp == nil || len(resp.Shipments) == 0 {
		return nil, shipper.NewError(shipper.ErrCarrierAPI, carrierName, "NO_SHIPMENT",
			"Failed to create shipment - no shipment data returned").WithCause(shipper.ErrNoShipmentReturned)
	}

	s := resp.Shipments[0]
	if s.HasErrors {
		if err := notificationsError(s.Notifications); err != nil {
			return nil, err
		}
	}

	created := &shipper.CreatedShipment{
		ShipmentID:     s.ID,
		Reference:      s.Reference1,
		ForeignWaybill: s.ForeignHAWB,
	}
	if s.ShipmentLabel != nil {
		created.LabelURL = s.ShipmentLabel.LabelURL
	}
	return created, nil
}

func mapLabel(shipmentID string, resp *PrintLabelResponse) (*shipper.Label, error) {
	if resp == nil || resp.ShipmentLabel == nil {
		return nil, shipper.NewError(shipper.ErrCarrierAPI, carrierName, "NO_LABEL",
			"Failed to generate shipping label").WithCause(shipper.ErrLabelNotAvailable)
	}

	return &shipper.Label{
		ShipmentID: shipmentID,
		URL:        resp.ShipmentLabel.LabelURL,
	}, nil
}

func mapTracking(resp *TrackShipmentsResponse) []shipper.TrackingRecord {
	records := []shipper.TrackingRecord{}
	if resp == nil {
		return records
	}

	for _, r := range resp.TrackingResults {
		events := make([]shipper.TrackingEvent, len(r.TrackingUpdateEvents))
		for i, e := range r.TrackingUpdateEvents {
			events[i] = shipper.TrackingEvent{
				Date:     e.UpdateDateTime,
				Location: e.UpdateLocation,
				Status:   e.UpdateDescription,
				Comments: e.Comments,
			}
		}

		// Unparseable weights are reported as zero.
		gross, _ := r.GrossWeight.Float()
		charged, _ := r.ChargedWeight.Float()

		records = append(records, shipper.TrackingRecord{
			WaybillNumber: r.WaybillNumber,
			Reference:     r.Reference,
			Status:        r.UpdateCode,
			ProblemCode:   r.ProblemCode,
			GrossWeight:   gross,
			ChargedWeight: charged,
			Events:        events,
		})
	}
	return records
}
