package service

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/tournevent/aramexbridge/pkg/shipper"
)

const invalidJSONMessage = "Invalid JSON data provided"

// ShipmentIDDocument is the input document of the label and tracking operations.
type ShipmentIDDocument struct {
	ShipmentID string `json:"shipment_id"`
}

// DecodeDocument decodes a JSON document into v. A document that is itself a
// JSON string is decoded once more, so double-encoded input is accepted.
func DecodeDocument(raw []byte, v any) error {
	data := bytes.TrimSpace(raw)
	if len(data) > 0 && data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return invalidInput(err)
		}
		data = bytes.TrimSpace([]byte(inner))
	}
	if err := json.Unmarshal(data, v); err != nil {
		return invalidInput(err)
	}
	return nil
}

func invalidInput(cause error) *shipper.Error {
	return shipper.NewError(shipper.ErrInvalidInput, "", "INVALID_JSON", invalidJSONMessage).WithCause(cause)
}

func rejected[T any](ctx context.Context, s *Service, operation string, data T, err error) Result[T] {
	res := Result[T]{Message: invalidJSONMessage, Data: data, Err: err}
	s.observe(ctx, operation, "", time.Now(), false, res.Message, err)
	return res
}

// QuoteJSON runs Quote on a raw request document.
func (s *Service) QuoteJSON(ctx context.Context, raw []byte) Result[[]shipper.Quote] {
	var req shipper.ShipmentRequest
	if err := DecodeDocument(raw, &req); err != nil {
		return rejected(ctx, s, OpQuote, []shipper.Quote{}, err)
	}
	return s.Quote(ctx, &req)
}

// CreateJSON runs Create on a raw request document.
func (s *Service) CreateJSON(ctx context.Context, raw []byte) Result[*shipper.CreatedShipment] {
	var req shipper.ShipmentRequest
	if err := DecodeDocument(raw, &req); err != nil {
		return rejected[*shipper.CreatedShipment](ctx, s, OpCreate, nil, err)
	}
	return s.Create(ctx, &req)
}

// LabelJSON runs Label on a {"shipment_id": ...} document.
func (s *Service) LabelJSON(ctx context.Context, raw []byte) Result[*shipper.Label] {
	var doc ShipmentIDDocument
	if err := DecodeDocument(raw, &doc); err != nil {
		return rejected[*shipper.Label](ctx, s, OpLabel, nil, err)
	}
	return s.Label(ctx, doc.ShipmentID)
}

// TrackJSON runs Track on a {"shipment_id": ...} document.
func (s *Service) TrackJSON(ctx context.Context, raw []byte) Result[[]shipper.TrackingRecord] {
	var doc ShipmentIDDocument
	if err := DecodeDocument(raw, &doc); err != nil {
		return rejected(ctx, s, OpTrack, []shipper.TrackingRecord{}, err)
	}
	return s.Track(ctx, doc.ShipmentID)
}
