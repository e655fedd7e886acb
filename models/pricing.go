package models

// PackageOption is a purchasable credit bundle offered by a service category.
type PackageOption struct {
	ID       string  `bson:"id" json:"id"`
	Name     string  `bson:"name" json:"name"`
	Sessions int     `bson:"sessions" json:"sessions"`
	Price    float64 `bson:"price" json:"price"`
}

// SurchargeConfig declares the surcharges applied after the base computation.
// Each surcharge is computed from the base amount unless Compound is set, in
// which case later surcharges include the earlier ones in their basis.
type SurchargeConfig struct {
	UrgencyPercent    float64 `bson:"urgencyPercent,omitempty" json:"urgencyPercent,omitempty"`
	WeekendMultiplier float64 `bson:"weekendMultiplier,omitempty" json:"weekendMultiplier,omitempty"`
	HolidayMultiplier float64 `bson:"holidayMultiplier,omitempty" json:"holidayMultiplier,omitempty"`
	TravelSurcharge   float64 `bson:"travelSurcharge,omitempty" json:"travelSurcharge,omitempty"`
	Compound          bool    `bson:"compound,omitempty" json:"compound,omitempty"`
}

// PricingConfig carries the strategy-specific parameters for a pricing model.
// Only the fields relevant to the selected model are consulted.
type PricingConfig struct {
	// fixed
	Price float64 `bson:"price,omitempty" json:"price,omitempty"`

	// hourly and hourly_minimum
	HourlyRate    float64            `bson:"hourlyRate,omitempty" json:"hourlyRate,omitempty"`
	MinimumHours  float64            `bson:"minimumHours,omitempty" json:"minimumHours,omitempty"`
	TypologyRates map[string]float64 `bson:"typologyRates,omitempty" json:"typologyRates,omitempty"`

	// per_unit: VolumeDiscounts maps closed tier ranges ("1", "2-3", "6+")
	// to discount percentages off BasePrice.
	BasePrice       float64            `bson:"basePrice,omitempty" json:"basePrice,omitempty"`
	VolumeDiscounts map[string]float64 `bson:"volumeDiscounts,omitempty" json:"volumeDiscounts,omitempty"`

	// typology_based: Rates is the flat typology table; RateTable keys a
	// table per sub-variant (e.g. "general" vs "deratization").
	Rates     map[string]float64            `bson:"rates,omitempty" json:"rates,omitempty"`
	RateTable map[string]map[string]float64 `bson:"rateTable,omitempty" json:"rateTable,omitempty"`

	// package
	Packages []PackageOption `bson:"packages,omitempty" json:"packages,omitempty"`

	Currency             string          `bson:"currency,omitempty" json:"currency,omitempty"`
	Surcharges           SurchargeConfig `bson:"surcharges,omitempty" json:"surcharges,omitempty"`
	BookingFee           float64         `bson:"bookingFee,omitempty" json:"bookingFee,omitempty"`
	MinimumBookingAmount float64         `bson:"minimumBookingAmount,omitempty" json:"minimumBookingAmount,omitempty"`
}

// BookingFacts are the booking inputs a pricing strategy may require.
// Pointer fields distinguish "absent" from zero.
type BookingFacts struct {
	Hours      *float64 `json:"hours,omitempty"`
	UnitCount  *int     `json:"unitCount,omitempty"`
	Typology   string   `json:"typology,omitempty"`
	SubVariant string   `json:"subVariant,omitempty"`
	PackageRef string   `json:"packageRef,omitempty"`
	Urgent     bool     `json:"urgent,omitempty"`
	Weekend    bool     `json:"weekend,omitempty"`
	Holiday    bool     `json:"holiday,omitempty"`
}

// SurchargeLine is one labeled surcharge in a price decomposition.
type SurchargeLine struct {
	Label  string  `bson:"label" json:"label"`
	Amount float64 `bson:"amount" json:"amount"`
}

// PricingResult is the price decomposition for a booking. It is a pure
// function of config plus facts.
type PricingResult struct {
	Model       PricingModel    `bson:"model" json:"model"`
	BaseAmount  float64         `bson:"baseAmount" json:"baseAmount"`
	Surcharges  []SurchargeLine `bson:"surcharges,omitempty" json:"surcharges,omitempty"`
	TotalAmount float64         `bson:"totalAmount" json:"totalAmount"`
	Currency    string          `bson:"currency" json:"currency"`

	// CreditValue is the nominal value of a consumed package credit
	// (purchase amount over total credits). Reporting only; it never
	// contributes to TotalAmount.
	CreditValue float64 `bson:"creditValue,omitempty" json:"creditValue,omitempty"`
}
