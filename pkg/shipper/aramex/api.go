package aramex

import (
	"context"

	"github.com/tournevent/aramexbridge/pkg/shipper"
)

// APIClient defines the Aramex Shipping API V2 operations used by the bridge.
// HTTPAPIClient talks to the real service, MockAPIClient stands in for it in tests
// and local runs.
type APIClient interface {
	// CalculateRate prices a proposed shipment.
	CalculateRate(ctx context.Context, req *RateRequest) (*RateResponse, error)

	// CreateShipments books one or more shipments and returns their waybills.
	CreateShipments(ctx context.Context, req *CreateShipmentsRequest) (*CreateShipmentsResponse, error)

	// PrintLabel renders the label of an existing shipment.
	PrintLabel(ctx context.Context, req *PrintLabelRequest) (*PrintLabelResponse, error)

	// TrackShipments returns the tracking history of the given waybills.
	TrackShipments(ctx context.Context, req *TrackShipmentsRequest) (*TrackShipmentsResponse, error)
}

// ============================================================================
// Request types (match the Aramex JSON schema; string keys are never omitted)
// ============================================================================

// ClientInfo authenticates every request.
type ClientInfo struct {
	UserName           string `json:"UserName"`
	Password           string `json:"Password"`
	Version            string `json:"Version"`
	AccountNumber      string `json:"AccountNumber"`
	AccountPin         string `json:"AccountPin"`
	AccountEntity      string `json:"AccountEntity"`
	AccountCountryCode string `json:"AccountCountryCode"`
	Source             int    `json:"Source"`
}

// Transaction carries caller references echoed back by the carrier.
type Transaction struct {
	Reference1 string `json:"Reference1"`
	Reference2 string `json:"Reference2"`
	Reference3 string `json:"Reference3"`
	Reference4 string `json:"Reference4"`
	Reference5 string `json:"Reference5"`
}

// Address is the carrier's postal address block.
type Address struct {
	Line1               string `json:"Line1"`
	Line2               string `json:"Line2"`
	Line3               string `json:"Line3"`
	City                string `json:"City"`
	StateOrProvinceCode string `json:"StateOrProvinceCode"`
	PostCode            string `json:"PostCode"`
	CountryCode         string `json:"CountryCode"`
}

// Dimensions of a package.
type Dimensions struct {
	Length float64 `json:"Length"`
	Width  float64 `json:"Width"`
	Height float64 `json:"Height"`
	Unit   string  `json:"Unit"`
}

// Weight of a package.
type Weight struct {
	Value float64 `json:"Value"`
	Unit  string  `json:"Unit"`
}

// Money is an amount in a currency.
type Money struct {
	Value        float64 `json:"Value"`
	CurrencyCode string  `json:"CurrencyCode"`
}

// ShipmentDetails describes the goods and the requested product.
type ShipmentDetails struct {
	Dimensions           Dimensions `json:"Dimensions"`
	ActualWeight         Weight     `json:"ActualWeight"`
	ProductGroup         string     `json:"ProductGroup"`
	ProductType          string     `json:"ProductType"`
	PaymentType          string     `json:"PaymentType"`
	PaymentOptions       string     `json:"PaymentOptions"`
	Services             string     `json:"Services"`
	NumberOfPieces       int        `json:"NumberOfPieces"`
	DescriptionOfGoods   string     `json:"DescriptionOfGoods"`
	GoodsOriginCountry   string     `json:"GoodsOriginCountry"`
	CashOnDeliveryAmount *Money     `json:"CashOnDeliveryAmount,omitempty"` // Create only
	InsuranceAmount      *Money     `json:"InsuranceAmount,omitempty"`      // Create only
	CollectAmount        *Money     `json:"CollectAmount,omitempty"`        // Create only
}

// Contact is a person reachable for the shipment.
type Contact struct {
	Department      string `json:"Department"`
	PersonName      string `json:"PersonName"`
	Title           string `json:"Title"`
	CompanyName     string `json:"CompanyName"`
	PhoneNumber1    string `json:"PhoneNumber1"`
	PhoneNumber1Ext string `json:"PhoneNumber1Ext"`
	PhoneNumber2    string `json:"PhoneNumber2"`
	PhoneNumber2Ext string `json:"PhoneNumber2Ext"`
	FaxNumber       string `json:"FaxNumber"`
	CellPhone       string `json:"CellPhone"`
	EmailAddress    string `json:"EmailAddress"`
	Type            string `json:"Type"`
}

// Party is the shipper or consignee of a shipment.
type Party struct {
	Reference1    string  `json:"Reference1"`
	Reference2    string  `json:"Reference2"`
	AccountNumber string  `json:"AccountNumber"`
	PartyAddress  Address `json:"PartyAddress"`
	Contact       Contact `json:"Contact"`
}

// Shipment is one shipment to book.
type Shipment struct {
	Reference1      string          `json:"Reference1"`
	Reference2      string          `json:"Reference2"`
	Reference3      string          `json:"Reference3"`
	Shipper         Party           `json:"Shipper"`
	Consignee       Party           `json:"Consignee"`
	ShipmentDetails ShipmentDetails `json:"ShipmentDetails"`
}

// LabelInfo selects the label report and how it is delivered.
type LabelInfo struct {
	ReportID   int    `json:"ReportID"`
	ReportType string `json:"ReportType"`
}

// RateRequest is the body of CalculateRate.
type RateRequest struct {
	ClientInfo            ClientInfo      `json:"ClientInfo"`
	Transaction           Transaction     `json:"Transaction"`
	OriginAddress         Address         `json:"OriginAddress"`
	DestinationAddress    Address         `json:"DestinationAddress"`
	ShipmentDetails       ShipmentDetails `json:"ShipmentDetails"`
	PreferredCurrencyCode string          `json:"PreferredCurrencyCode"`
}

// CreateShipmentsRequest is the body of CreateShipments.
type CreateShipmentsRequest struct {
	ClientInfo  ClientInfo  `json:"ClientInfo"`
	Transaction Transaction `json:"Transaction"`
	Shipments   []Shipment  `json:"Shipments"`
	LabelInfo   LabelInfo   `json:"LabelInfo"`
}

// PrintLabelRequest is the body of PrintLabel.
type PrintLabelRequest struct {
	ClientInfo     ClientInfo  `json:"ClientInfo"`
	Transaction    Transaction `json:"Transaction"`
	ShipmentNumber string      `json:"ShipmentNumber"`
	LabelInfo      LabelInfo   `json:"LabelInfo"`
}

// TrackShipmentsRequest is the body of TrackShipments.
type TrackShipmentsRequest struct {
	ClientInfo                ClientInfo  `json:"ClientInfo"`
	Transaction               Transaction `json:"Transaction"`
	Shipments                 []string    `json:"Shipments"`
	GetLastTrackingUpdateOnly bool        `json:"GetLastTrackingUpdateOnly"`
}

// ============================================================================
// Response types
// ============================================================================

// Notification is a coded message attached to a response.
type Notification struct {
	Code    string `json:"Code"`
	Message string `json:"Message"`
}

// Envelope is the part shared by every response.
type Envelope struct {
	Transaction   *Transaction   `json:"Transaction,omitempty"`
	Notifications []Notification `json:"Notifications"`
	HasErrors     bool           `json:"HasErrors"`
}

// RateResponse is the reply to CalculateRate.
type RateResponse struct {
	Envelope
	TotalAmount *Money `json:"TotalAmount,omitempty"`
}

// ShipmentLabel locates a rendered label.
type ShipmentLabel struct {
	LabelURL string `json:"LabelURL"`
}

// ProcessedShipment is one booked shipment.
type ProcessedShipment struct {
	ID            string         `json:"ID"`
	Reference1    string         `json:"Reference1"`
	Reference2    string         `json:"Reference2"`
	Reference3    string         `json:"Reference3"`
	ForeignHAWB   string         `json:"ForeignHAWB"`
	HasErrors     bool           `json:"HasErrors"`
	Notifications []Notification `json:"Notifications"`
	ShipmentLabel *ShipmentLabel `json:"ShipmentLabel,omitempty"`
}

// CreateShipmentsResponse is the reply to CreateShipments.
type CreateShipmentsResponse struct {
	Envelope
	Shipments []ProcessedShipment `json:"Shipments"`
}

// PrintLabelResponse is the reply to PrintLabel.
type PrintLabelResponse struct {
	Envelope
	ShipmentNumber string         `json:"ShipmentNumber"`
	ShipmentLabel  *ShipmentLabel `json:"ShipmentLabel,omitempty"`
}

// TrackingUpdateEvent is one scan of a waybill.
type TrackingUpdateEvent struct {
	UpdateDateTime    string `json:"UpdateDateTime"`
	UpdateLocation    string `json:"UpdateLocation"`
	UpdateDescription string `json:"UpdateDescription"`
	Comments          string `json:"Comments"`
}

// TrackingResult is the tracking state of one waybill. Weights arrive either as
// numbers or as strings depending on the environment.
type TrackingResult struct {
	WaybillNumber        string                `json:"WaybillNumber"`
	Reference            string                `json:"Reference"`
	UpdateCode           string                `json:"UpdateCode"`
	ProblemCode          string                `json:"ProblemCode"`
	GrossWeight          shipper.Number        `json:"GrossWeight"`
	ChargedWeight        shipper.Number        `json:"ChargedWeight"`
	TrackingUpdateEvents []TrackingUpdateEvent `json:"TrackingUpdateEvents"`
}

// TrackShipmentsResponse is the reply to TrackShipments.
type TrackShipmentsResponse struct {
	Envelope
	TrackingResults     []TrackingResult `json:"TrackingResults"`
	NonExistingWaybills []string         `json:"NonExistingWaybills,omitempty"`
}
