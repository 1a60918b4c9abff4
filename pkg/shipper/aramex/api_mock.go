package aramex

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/tournevent/aramexbridge/pkg/shipper"
)

// MockAPIClient is a mock implementation of APIClient for testing.
type MockAPIClient struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	OnCalculateRate   func(ctx context.Context, req *RateRequest) (*RateResponse, error)
	OnCreateShipments func(ctx context.Context, req *CreateShipmentsRequest) (*CreateShipmentsResponse, error)
	OnPrintLabel      func(ctx context.Context, req *PrintLabelRequest) (*PrintLabelResponse, error)
	OnTrackShipments  func(ctx context.Context, req *TrackShipmentsRequest) (*TrackShipmentsResponse, error)

	calls atomic.Int64
}

// NewMockAPIClient creates a new mock API client with default behavior.
func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{}
}

// Calls returns how many API calls the mock has received.
func (m *MockAPIClient) Calls() int {
	return int(m.calls.Load())
}

func (m *MockAPIClient) begin() error {
	m.calls.Add(1)

	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}

	if m.SimulateErrors {
		return shipper.NewCarrierAPIError(carrierName, "MOCK_ERROR", []string{"Simulated API error"})
	}
	return nil
}

// CalculateRate returns a mock rate.
func (m *MockAPIClient) CalculateRate(ctx context.Context, req *RateRequest) (*RateResponse, error) {
	if err := m.begin(); err != nil {
		return nil, err
	}

	if m.OnCalculateRate != nil {
		return m.OnCalculateRate(ctx, req)
	}

	currency := req.PreferredCurrencyCode
	if currency == "" {
		currency = defaultCurrency
	}

	return &RateResponse{
		Envelope: Envelope{
			Transaction: &req.Transaction,
		},
		TotalAmount: &Money{
			Value:        25.50,
			CurrencyCode: currency,
		},
	}, nil
}

// CreateShipments books mock shipments.
func (m *MockAPIClient) CreateShipments(ctx context.Context, req *CreateShipmentsRequest) (*CreateShipmentsResponse, error) {
	if err := m.begin(); err != nil {
		return nil, err
	}

	if m.OnCreateShipments != nil {
		return m.OnCreateShipments(ctx, req)
	}

	shipments := make([]ProcessedShipment, len(req.Shipments))
	for i, s := range req.Shipments {
		waybill := fmt.Sprintf("%d", 40000000000+time.Now().UnixNano()%9000000000)
		shipments[i] = ProcessedShipment{
			ID:          waybill,
			Reference1:  s.Reference1,
			ForeignHAWB: "FH-" + uuid.New().String()[:8],
			ShipmentLabel: &ShipmentLabel{
				LabelURL: fmt.Sprintf("%s/content/rpt_cache/%s.pdf", TestBaseURL, waybill),
			},
		}
	}

	return &CreateShipmentsResponse{
		Envelope: Envelope{
			Transaction: &req.Transaction,
		},
		Shipments: shipments,
	}, nil
}

// PrintLabel returns a mock label URL.
func (m *MockAPIClient) PrintLabel(ctx context.Context, req *PrintLabelRequest) (*PrintLabelResponse, error) {
	if err := m.begin(); err != nil {
		return nil, err
	}

	if m.OnPrintLabel != nil {
		return m.OnPrintLabel(ctx, req)
	}

	return &PrintLabelResponse{
		ShipmentNumber: req.ShipmentNumber,
		ShipmentLabel: &ShipmentLabel{
			LabelURL: fmt.Sprintf("%s/content/rpt_cache/%s.pdf", TestBaseURL, req.ShipmentNumber),
		},
	}, nil
}

// TrackShipments returns a fixed mock history for every waybill.
func (m *MockAPIClient) TrackShipments(ctx context.Context, req *TrackShipmentsRequest) (*TrackShipmentsResponse, error) {
	if err := m.begin(); err != nil {
		return nil, err
	}

	if m.OnTrackShipments != nil {
		return m.OnTrackShipments(ctx, req)
	}

	results := make([]TrackingResult, len(req.Shipments))
	for i, waybill := range req.Shipments {
		results[i] = TrackingResult{
			WaybillNumber: waybill,
			UpdateCode:    "SH003",
			GrossWeight:   "1.5",
			ChargedWeight: "2",
			TrackingUpdateEvents: []TrackingUpdateEvent{
				{
					UpdateDateTime:    "2024-01-15T09:30:00",
					UpdateLocation:    "Dubai, United Arab Emirates",
					UpdateDescription: "Record created",
				},
				{
					UpdateDateTime:    "2024-01-15T18:10:00",
					UpdateLocation:    "Dubai, United Arab Emirates",
					UpdateDescription: "Departed facility",
				},
			},
		}
	}

	return &TrackShipmentsResponse{
		TrackingResults: results,
	}, nil
}

var _ APIClient = (*MockAPIClient)(nil)
