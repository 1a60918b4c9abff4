package shipper

import (
	"github.com/shopspring/decimal"
)

// DimensionUnit represents dimension measurement unit.
type DimensionUnit string

const (
	DimensionCM DimensionUnit = "CM"
	DimensionIN DimensionUnit = "IN"
)

// WeightUnit represents weight measurement unit.
type WeightUnit string

const (
	WeightKG WeightUnit = "KG"
	WeightLB WeightUnit = "LB"
)

// ProductGroup is the carrier product family.
type ProductGroup string

const (
	ProductGroupExpress  ProductGroup = "EXP"
	ProductGroupDomestic ProductGroup = "DOM"
)

// ProductType is the carrier product within a group.
type ProductType string

const (
	ProductTypePriorityParcel ProductType = "PPX" // Prepaid express
	ProductTypeDeferredParcel ProductType = "PDX" // Prepaid deferred
	ProductTypeCashOnDelivery ProductType = "CDS"
)

// PaymentType identifies who pays for the shipment.
type PaymentType string

const (
	PaymentPrepaid    PaymentType = "P"
	PaymentCollect    PaymentType = "C"
	PaymentThirdParty PaymentType = "3"
)

// Address represents a postal address.
type Address struct {
	Line1       string `json:"line1"`
	Line2       string `json:"line2,omitempty"`
	Line3       string `json:"line3,omitempty"`
	City        string `json:"city"`
	State       string `json:"state,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"`
	CountryCode string `json:"country_code"` // ISO 3166-1 alpha-2, e.g., "AE", "SA"
}

// Party represents the shipper or consignee of a shipment.
type Party struct {
	Address
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	Phone   string `json:"phone"`
	Mobile  string `json:"mobile,omitempty"`
	Email   string `json:"email"`
}

// Package describes the physical goods being shipped.
type Package struct {
	Length             Number        `json:"length"`
	Width              Number        `json:"width"`
	Height             Number        `json:"height"`
	DimensionUnit      DimensionUnit `json:"dimension_unit,omitempty"`
	Weight             Number        `json:"weight"`
	WeightUnit         WeightUnit    `json:"weight_unit,omitempty"`
	Pieces             Number        `json:"number_of_pieces"`
	Description        string        `json:"description"`
	GoodsOriginCountry string        `json:"goods_origin_country,omitempty"`
}

// Commercial holds product, payment and monetary options.
// Nil amounts are treated as zero.
type Commercial struct {
	ProductGroup    ProductGroup     `json:"product_group,omitempty"`
	ProductType     ProductType      `json:"product_type,omitempty"`
	PaymentType     PaymentType      `json:"payment_type,omitempty"`
	PaymentOptions  string           `json:"payment_options,omitempty"`
	Services        string           `json:"services,omitempty"`
	Currency        string           `json:"currency_code,omitempty"`
	CODAmount       *decimal.Decimal `json:"cod_amount,omitempty"`
	InsuranceAmount *decimal.Decimal `json:"insurance_amount,omitempty"`
	CollectAmount   *decimal.Decimal `json:"collect_amount,omitempty"`
}

// ShipmentRequest is the canonical description of one shipment to be quoted or created.
type ShipmentRequest struct {
	Reference   string     `json:"reference,omitempty"`
	Origin      Address    `json:"origin"`
	Destination Address    `json:"destination"`
	Shipper     Party      `json:"shipper"`
	Consignee   Party      `json:"consignee"`
	Package     Package    `json:"package"`
	Commercial  Commercial `json:"commercial"`
}

// Credentials identifies the carrier account used for every remote call.
type Credentials struct {
	Username           string `json:"username" yaml:"username"`
	Password           string `json:"-" yaml:"password"`
	AccountNumber      string `json:"account_number" yaml:"account_number"`
	AccountPin         string `json:"-" yaml:"account_pin"`
	AccountEntity      string `json:"account_entity" yaml:"account_entity"`
	AccountCountryCode string `json:"account_country_code" yaml:"account_country_code"`
	TestMode           bool   `json:"test_mode" yaml:"test_mode"`
}

// Quote represents a priced shipping service option.
type Quote struct {
	ServiceType string          `json:"service_type"`
	ServiceName string          `json:"service_name"`
	Amount      decimal.Decimal `json:"total_amount"`
	Currency    string          `json:"currency"`
	TransitTime string          `json:"transit_time,omitempty"` // Empty when the carrier gives no estimate
	Description string          `json:"description,omitempty"`
}

// CreatedShipment holds the identifiers assigned by the carrier to a new shipment.
type CreatedShipment struct {
	ShipmentID     string `json:"shipment_id"`
	Reference      string `json:"reference"`
	ForeignWaybill string `json:"foreign_hawb"`
	LabelURL       string `json:"label_url"`
	RecordID       string `json:"record_id,omitempty"`
}

// Label represents a printable shipping label hosted by the carrier.
type Label struct {
	ShipmentID string `json:"shipment_id"`
	URL        string `json:"label_url"`
}

// TrackingEvent represents a single tracking update.
type TrackingEvent struct {
	Date     string `json:"date"`
	Location string `json:"location"`
	Status   string `json:"status"`
	Comments string `json:"comments"`
}

// TrackingRecord is the tracking state of one waybill.
type TrackingRecord struct {
	WaybillNumber string          `json:"waybill_number"`
	Reference     string          `json:"reference"`
	Status        string          `json:"status"`
	ProblemCode   string          `json:"problem_code"`
	GrossWeight   float64         `json:"gross_weight"`
	ChargedWeight float64         `json:"charged_weight"`
	Events        []TrackingEvent `json:"events"`
}
