package shipper

// Option is a selectable code with a display name.
type Option struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Options lists the values accepted by shipment requests.
type Options struct {
	CountryCodes   []Option `json:"country_codes"`
	DimensionUnits []Option `json:"dimension_units"`
	WeightUnits    []Option `json:"weight_units"`
	CurrencyCodes  []Option `json:"currency_codes"`
	ProductGroups  []Option `json:"product_groups"`
	ProductTypes   []Option `json:"product_types"`
}

// Configuration returns the supported shipping options.
func Configuration() Options {
	return Options{
		CountryCodes: []Option{
			{"AE", "United Arab Emirates"},
			{"SA", "Saudi Arabia"},
			{"KW", "Kuwait"},
			{"QA", "Qatar"},
			{"BH", "Bahrain"},
			{"OM", "Oman"},
			{"JO", "Jordan"},
			{"LB", "Lebanon"},
			{"EG", "Egypt"},
			{"US", "United States"},
			{"GB", "United Kingdom"},
			{"DE", "Germany"},
			{"FR", "France"},
			{"IN", "India"},
			{"PK", "Pakistan"},
			{"BD", "Bangladesh"},
			{"LK", "Sri Lanka"},
			{"PH", "Philippines"},
			{"MY", "Malaysia"},
			{"SG", "Singapore"},
			{"TH", "Thailand"},
			{"CN", "China"},
			{"JP", "Japan"},
			{"KR", "South Korea"},
			{"AU", "Australia"},
			{"CA", "Canada"},
		},
		DimensionUnits: []Option{
			{string(DimensionCM), "Centimeters"},
			{string(DimensionIN), "Inches"},
		},
		WeightUnits: []Option{
			{string(WeightKG), "Kilograms"},
			{string(WeightLB), "Pounds"},
		},
		CurrencyCodes: []Option{
			{"AED", "UAE Dirham"},
			{"USD", "US Dollar"},
			{"EUR", "Euro"},
			{"GBP", "British Pound"},
			{"SAR", "Saudi Riyal"},
		},
		ProductGroups: []Option{
			{string(ProductGroupExpress), "Express"},
			{string(ProductGroupDomestic), "Domestic"},
		},
		ProductTypes: []Option{
			{string(ProductTypePriorityParcel), "Prepaid Express"},
			{string(ProductTypeDeferredParcel), "Prepaid Deferred"},
			{string(ProductTypeCashOnDelivery), "Cash on Delivery"},
		},
	}
}
