package shipper

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Role names a party in validation messages.
type Role string

const (
	RoleShipper   Role = "Shipper"
	RoleConsignee Role = "Consignee"
)

// ValidateParty checks a party's contact and location fields. Every violation is
// reported; an empty result means the party is valid.
func ValidateParty(p Party, role Role) []string {
	var errs []string

	required := []struct {
		field string
		value string
	}{
		{"name", p.Name},
		{"address line1", p.Line1},
		{"city", p.City},
		{"country code", p.CountryCode},
		{"phone", p.Phone},
		{"email", p.Email},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, string(role)+" "+r.field+" is required")
		}
	}

	if p.Email != "" && !strings.Contains(p.Email, "@") {
		errs = append(errs, string(role)+" email format is invalid")
	}
	if p.CountryCode != "" && len(p.CountryCode) != 2 {
		errs = append(errs, string(role)+" country code must be 2 characters")
	}

	return errs
}

// ValidateShipment checks everything needed to book a shipment.
func ValidateShipment(req *ShipmentRequest) []string {
	var errs []string

	errs = append(errs, ValidateParty(req.Shipper, RoleShipper)...)
	errs = append(errs, ValidateParty(req.Consignee, RoleConsignee)...)

	pkg := req.Package
	length, errL := pkg.Length.Float()
	width, errW := pkg.Width.Float()
	height, errH := pkg.Height.Float()
	weight, errWt := pkg.Weight.Float()
	if errL != nil || errW != nil || errH != nil || errWt != nil {
		errs = append(errs, "Package dimensions and weight must be valid numbers")
	} else {
		if length <= 0 || width <= 0 || height <= 0 {
			errs = append(errs, "Package dimensions must be greater than 0")
		}
		if weight <= 0 {
			errs = append(errs, "Package weight must be greater than 0")
		}
	}

	if pieces, err := pkg.Pieces.Int(); err != nil {
		errs = append(errs, "Number of pieces must be a valid number")
	} else if pieces <= 0 {
		errs = append(errs, "Number of pieces must be greater than 0")
	}

	if strings.TrimSpace(pkg.Description) == "" {
		errs = append(errs, "Package description is required")
	}

	amounts := []struct {
		name  string
		value *decimal.Decimal
	}{
		{"Cash on delivery amount", req.Commercial.CODAmount},
		{"Insurance amount", req.Commercial.InsuranceAmount},
		{"Collect amount", req.Commercial.CollectAmount},
	}
	for _, a := range amounts {
		if a.value != nil && a.value.IsNegative() {
			errs = append(errs, a.name+" must not be negative")
		}
	}

	return errs
}

// ValidateRateRequest checks the smaller set of fields needed to quote a rate.
func ValidateRateRequest(req *ShipmentRequest) []string {
	var errs []string

	required := []struct {
		field   string
		missing bool
	}{
		{"Origin City", strings.TrimSpace(req.Origin.City) == ""},
		{"Origin Country Code", strings.TrimSpace(req.Origin.CountryCode) == ""},
		{"Destination City", strings.TrimSpace(req.Destination.City) == ""},
		{"Destination Country Code", strings.TrimSpace(req.Destination.CountryCode) == ""},
		{"Weight", req.Package.Weight.IsZero()},
		{"Length", req.Package.Length.IsZero()},
		{"Width", req.Package.Width.IsZero()},
		{"Height", req.Package.Height.IsZero()},
	}
	for _, r := range required {
		if r.missing {
			errs = append(errs, r.field+" is required")
		}
	}

	numeric := []struct {
		field string
		value Number
	}{
		{"Weight", req.Package.Weight},
		{"Length", req.Package.Length},
		{"Width", req.Package.Width},
		{"Height", req.Package.Height},
	}
	for _, n := range numeric {
		if _, err := n.value.Float(); err != nil {
			errs = append(errs, n.field+" must be a valid number")
		}
	}

	return errs
}
