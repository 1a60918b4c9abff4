package aramex

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tournevent/aramexbridge/pkg/shipper"
)

// Mode selects the defaulting rules of an operation.
type Mode int

const (
	ModeRate Mode = iota
	ModeCreate
)

const (
	clientVersion = "v1.0"
	clientSource  = 24

	labelReportID   = 9201
	labelReportType = "URL"

	defaultCurrency    = "AED"
	defaultCountry     = "AE"
	defaultDescription = "General Goods"
)

// ApplyDefaults returns a copy of req with every optional field the carrier
// needs filled in. The input is not modified.
func ApplyDefaults(req *shipper.ShipmentRequest, mode Mode) *shipper.ShipmentRequest {
	out := *req

	pkg := &out.Package
	if pkg.DimensionUnit == "" {
		pkg.DimensionUnit = shipper.DimensionCM
	}
	if pkg.WeightUnit == "" {
		pkg.WeightUnit = shipper.WeightKG
	}

	com := &out.Commercial
	if com.Currency == "" {
		com.Currency = defaultCurrency
	}
	if com.ProductGroup == "" {
		com.ProductGroup = shipper.ProductGroupExpress
	}
	if com.ProductType == "" {
		com.ProductType = shipper.ProductTypePriorityParcel
	}
	if com.PaymentType == "" {
		com.PaymentType = shipper.PaymentPrepaid
	}
	com.CODAmount = zeroIfNil(com.CODAmount)
	com.InsuranceAmount = zeroIfNil(com.InsuranceAmount)
	com.CollectAmount = zeroIfNil(com.CollectAmount)

	switch mode {
	case ModeCreate:
		if pkg.GoodsOriginCountry == "" {
			pkg.GoodsOriginCountry = out.Shipper.CountryCode
		}
	default:
		if pkg.GoodsOriginCountry == "" {
			pkg.GoodsOriginCountry = defaultCountry
		}
		if out.Origin.CountryCode == "" {
			out.Origin.CountryCode = defaultCountry
		}
		if out.Destination.CountryCode == "" {
			out.Destination.CountryCode = defaultCountry
		}
		if pkg.Pieces == "" {
			pkg.Pieces = "1"
		}
		if pkg.Description == "" {
			pkg.Description = defaultDescription
		}
	}

	return &out
}

func zeroIfNil(d *decimal.Decimal) *decimal.Decimal {
	if d != nil {
		return d
	}
	z := decimal.Zero
	return &z
}

// BuildRatePayload builds the CalculateRate body.
func BuildRatePayload(req *shipper.ShipmentRequest, creds shipper.Credentials) (*RateRequest, error) {
	details, err := buildShipmentDetails(req)
	if err != nil {
		return nil, err
	}

	return &RateRequest{
		ClientInfo:            buildClientInfo(creds),
		Transaction:           buildTransaction(req.Reference),
		OriginAddress:         buildAddress(req.Origin),
		DestinationAddress:    buildAddress(req.Destination),
		ShipmentDetails:       details,
		PreferredCurrencyCode: req.Commercial.Currency,
	}, nil
}

// BuildCreatePayload builds the CreateShipments body for a single shipment.
func BuildCreatePayload(req *shipper.ShipmentRequest, creds shipper.Credentials) (*CreateShipmentsRequest, error) {
	details, err := buildShipmentDetails(req)
	if err != nil {
		return nil, err
	}

	currency := req.Commercial.Currency
	details.CashOnDeliveryAmount = buildMoney(req.Commercial.CODAmount, currency)
	details.InsuranceAmount = buildMoney(req.Commercial.InsuranceAmount, currency)
	details.CollectAmount = buildMoney(req.Commercial.CollectAmount, currency)

	shipperParty := buildParty(req.Shipper)
	shipperParty.AccountNumber = creds.AccountNumber

	return &CreateShipmentsRequest{
		ClientInfo:  buildClientInfo(creds),
		Transaction: buildTransaction(req.Reference),
		Shipments: []Shipment{
			{
				Reference1:      req.Reference,
				Shipper:         shipperParty,
				Consignee:       buildParty(req.Consignee),
				ShipmentDetails: details,
			},
		},
		LabelInfo: buildLabelInfo(),
	}, nil
}

// BuildLabelPayload builds the PrintLabel body.
func BuildLabelPayload(shipmentID string, creds shipper.Credentials) (*PrintLabelRequest, error) {
	if shipmentID == "" {
		return nil, shipper.NewError(shipper.ErrBuild, carrierName, "SHIPMENT_ID", "Shipment ID is required").
			WithCause(shipper.ErrShipmentIDRequired)
	}

	return &PrintLabelRequest{
		ClientInfo:     buildClientInfo(creds),
		Transaction:    buildTransaction(""),
		ShipmentNumber: shipmentID,
		LabelInfo:      buildLabelInfo(),
	}, nil
}

// BuildTrackPayload builds the TrackShipments body requesting the full history.
func BuildTrackPayload(shipmentID string, creds shipper.Credentials) (*TrackShipmentsRequest, error) {
	if shipmentID == "" {
		return nil, shipper.NewError(shipper.ErrBuild, carrierName, "SHIPMENT_ID", "Shipment ID is required").
			WithCause(shipper.ErrShipmentIDRequired)
	}

	return &TrackShipmentsRequest{
		ClientInfo:                buildClientInfo(creds),
		Transaction:               buildTransaction(""),
		Shipments:                 []string{shipmentID},
		GetLastTrackingUpdateOnly: false,
	}, nil
}

// ============================================================================
// Conversion helpers: Shipper models -> API models
// ============================================================================

func buildClientInfo(c shipper.Credentials) ClientInfo {
	return ClientInfo{
		UserName:           c.Username,
		Password:           c.Password,
		Version:            clientVersion,
		AccountNumber:      c.AccountNumber,
		AccountPin:         c.AccountPin,
		AccountEntity:      c.AccountEntity,
		AccountCountryCode: c.AccountCountryCode,
		Source:             clientSource,
	}
}

func buildTransaction(reference string) Transaction {
	return Transaction{Reference1: reference}
}

func buildAddress(a shipper.Address) Address {
	return Address{
		Line1:               a.Line1,
		Line2:               a.Line2,
		Line3:               a.Line3,
		City:                a.City,
		StateOrProvinceCode: a.State,
		PostCode:            a.PostalCode,
		CountryCode:         a.CountryCode,
	}
}

func buildParty(p shipper.Party) Party {
	return Party{
		PartyAddress: buildAddress(p.Address),
		Contact: Contact{
			PersonName:   p.Name,
			CompanyName:  p.Company,
			PhoneNumber1: p.Phone,
			CellPhone:    p.Mobile,
			EmailAddress: p.Email,
		},
	}
}

func buildLabelInfo() LabelInfo {
	return LabelInfo{
		ReportID:   labelReportID,
		ReportType: labelReportType,
	}
}

func buildMoney(amount *decimal.Decimal, currency string) *Money {
	m := &Money{CurrencyCode: currency}
	if amount != nil {
		m.Value = amount.InexactFloat64()
	}
	return m
}

func buildShipmentDetails(req *shipper.ShipmentRequest) (ShipmentDetails, error) {
	pkg := req.Package

	floats := []struct {
		field string
		value shipper.Number
		dst   *float64
	}{
		{"length", pkg.Length, new(float64)},
		{"width", pkg.Width, new(float64)},
		{"height", pkg.Height, new(float64)},
		{"weight", pkg.Weight, new(float64)},
	}
	for _, f := range floats {
		v, err := f.value.Float()
		if err != nil {
			return ShipmentDetails{}, coercionError(f.field, f.value, err)
		}
		*f.dst = v
	}

	pieces, err := pkg.Pieces.Int()
	if err != nil {
		return ShipmentDetails{}, coercionError("number_of_pieces", pkg.Pieces, err)
	}

	return ShipmentDetails{
		Dimensions: Dimensions{
			Length: *floats[0].dst,
			Width:  *floats[1].dst,
			Height: *floats[2].dst,
			Unit:   string(pkg.DimensionUnit),
		},
		ActualWeight: Weight{
			Value: *floats[3].dst,
			Unit:  string(pkg.WeightUnit),
		},
		ProductGroup:       string(req.Commercial.ProductGroup),
		ProductType:        string(req.Commercial.ProductType),
		PaymentType:        string(req.Commercial.PaymentType),
		PaymentOptions:     req.Commercial.PaymentOptions,
		Services:           req.Commercial.Services,
		NumberOfPieces:     pieces,
		DescriptionOfGoods: pkg.Description,
		GoodsOriginCountry: pkg.GoodsOriginCountry,
	}, nil
}

func coercionError(field string, value shipper.Number, cause error) *shipper.Error {
	return shipper.NewError(shipper.ErrBuild, carrierName, "COERCION",
		fmt.Sprintf("%s %q is not a valid number", field, string(value))).WithCause(cause)
}
