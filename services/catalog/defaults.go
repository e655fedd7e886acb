package catalog

import "zela/models"

// slugAliases maps the short URL slugs the frontend uses to catalog slugs.
var slugAliases = map[string]string{
	"indoor":  "indoor-cleaning",
	"outdoor": "outdoor-cleaning",
	"office":  "office-cleaning",
	"express": "express-cleaning",
	"laundry": "laundry-ironing",
}

// ResolveSlug maps an inbound service identifier to its catalog slug.
func ResolveSlug(slug string) string {
	if canonical, ok := slugAliases[slug]; ok {
		return canonical
	}
	return slug
}

// DefaultConfig returns the built-in flow configuration for a service
// category. These cover every launch category so a half-seeded services
// collection still books.
func DefaultConfig(slug string) (*models.FlowConfig, bool) {
	cfg, ok := defaultConfigs[slug]
	if !ok {
		return nil, false
	}
	out := cfg
	out.ServiceSlug = slug
	return &out, true
}

// StandardConfig is the generic fallback flow for categories without a
// dedicated configuration.
func StandardConfig(slug string) *models.FlowConfig {
	return &models.FlowConfig{
		ServiceSlug:  slug,
		FlowType:     models.FlowStandard,
		PricingModel: models.PricingFixed,
		PricingConfig: models.PricingConfig{
			Currency: "AOA",
		},
	}
}

var standardSurcharges = models.SurchargeConfig{
	WeekendMultiplier: 1.2,
	HolidayMultiplier: 1.5,
}

var defaultConfigs = map[string]models.FlowConfig{
	"indoor-cleaning": {
		FlowType: models.FlowCustom,
		RequiredScreens: []models.ScreenSpec{
			{Name: "address", Component: "screen-1-address-capture"},
			{Name: "property_typology", Component: "screen-2-property-typology"},
			{Name: "duration_tasks", Component: "screen-8-booking-details"},
			{Name: "worker", Component: "screen-choose-worker"},
			{Name: "payment", Component: "screen-13-payment-method"},
		},
		PricingModel: models.PricingHourlyMinimum,
		PricingConfig: models.PricingConfig{
			HourlyRate:           4900,
			MinimumHours:         3.5,
			Currency:             "AOA",
			Surcharges:           standardSurcharges,
			BookingFee:           500,
			MinimumBookingAmount: 5000,
		},
		Validations: map[string]interface{}{
			"require_property_type": true,
			"min_duration":          3.5,
			"max_duration":          10,
		},
	},
	"office-cleaning": {
		FlowType: models.FlowCustom,
		RequiredScreens: []models.ScreenSpec{
			{Name: "address", Component: "screen-1-address-capture"},
			{Name: "property_typology", Component: "screen-2-property-typology"},
			{Name: "duration_tasks", Component: "screen-8-booking-details"},
			{Name: "worker", Component: "screen-choose-worker"},
			{Name: "payment", Component: "screen-13-payment-method"},
		},
		PricingModel: models.PricingHourlyMinimum,
		PricingConfig: models.PricingConfig{
			HourlyRate:           4900,
			MinimumHours:         2,
			Currency:             "AOA",
			Surcharges:           standardSurcharges,
			BookingFee:           500,
			MinimumBookingAmount: 5000,
		},
		Validations: map[string]interface{}{
			"require_property_type": true,
			"min_duration":          2,
			"max_duration":          8,
		},
	},
	"outdoor-cleaning": {
		FlowType: models.FlowCustom,
		RequiredScreens: []models.ScreenSpec{
			{Name: "address", Component: "screen-1-address-capture"},
			{Name: "garden_area", Component: "screen-generic-selection"},
			{Name: "service_type", Component: "screen-generic-selection"},
			{Name: "worker", Component: "screen-choose-worker"},
			{Name: "payment", Component: "screen-13-payment-method"},
		},
		PricingModel: models.PricingHourly,
		PricingConfig: models.PricingConfig{
			HourlyRate:           4900,
			Currency:             "AOA",
			Surcharges:           standardSurcharges,
			MinimumBookingAmount: 9000,
		},
		Validations: map[string]interface{}{
			"require_area_size": true,
		},
	},
	"moving": {
		FlowType: models.FlowCustom,
		RequiredScreens: []models.ScreenSpec{
			{Name: "address", Component: "screen-1-address-capture"},
			{Name: "property_typology", Component: "screen-2-property-typology"},
			{Name: "move_type", Component: "screen-generic-selection"},
			{Name: "worker", Component: "screen-choose-worker"},
			{Name: "payment", Component: "screen-13-payment-method"},
		},
		PricingModel: models.PricingFixed,
		PricingConfig: models.PricingConfig{
			Price:                25000,
			Currency:             "AOA",
			Surcharges:           standardSurcharges,
			BookingFee:           500,
			MinimumBookingAmount: 5000,
		},
		Validations: map[string]interface{}{
			"require_property_type": true,
		},
	},
	"express-cleaning": {
		FlowType: models.FlowCustom,
		RequiredScreens: []models.ScreenSpec{
			{Name: "address", Component: "screen-1-address-capture"},
			{Name: "duration", Component: "screen-generic-duration"},
			{Name: "worker", Component: "screen-choose-worker"},
			{Name: "payment", Component: "screen-13-payment-method"},
		},
		PricingModel: models.PricingHourly,
		PricingConfig: models.PricingConfig{
			HourlyRate:           4900,
			Currency:             "AOA",
			Surcharges:           standardSurcharges,
			MinimumBookingAmount: 5000,
		},
		Validations: map[string]interface{}{
			"min_duration": 2,
			"max_duration": 4,
		},
	},
	"laundry-ironing": {
		FlowType: models.FlowCustom,
		RequiredScreens: []models.ScreenSpec{
			{Name: "address", Component: "screen-1-address-capture"},
			{Name: "items_weight", Component: "screen-generic-units"},
			{Name: "service_options", Component: "screen-generic-selection"},
			{Name: "worker", Component: "screen-choose-worker"},
			{Name: "payment", Component: "screen-13-payment-method"},
		},
		PricingModel: models.PricingPerUnit,
		PricingConfig: models.PricingConfig{
			BasePrice: 3000,
			VolumeDiscounts: map[string]float64{
				"1":   0,
				"2-3": 10,
				"4-5": 15,
				"6+":  20,
			},
			Currency:             "AOA",
			Surcharges:           standardSurcharges,
			MinimumBookingAmount: 5000,
		},
		Validations: map[string]interface{}{
			"require_items_count": true,
		},
	},
	"electrician": {
		FlowType: models.FlowCustom,
		RequiredScreens: []models.ScreenSpec{
			{Name: "address", Component: "screen-1-address-capture"},
			{Name: "property_typology", Component: "screen-2-property-typology"},
			{Name: "service_config", Component: "screen-4-electrician-config"},
			{Name: "worker", Component: "screen-choose-worker"},
			{Name: "payment", Component: "screen-13-payment-method"},
		},
		PricingModel: models.PricingHourlyMinimum,
		PricingConfig: models.PricingConfig{
			MinimumHours: 2,
			TypologyRates: map[string]float64{
				"T1":  8000,
				"T2":  9000,
				"T3":  10000,
				"T4+": 12000,
			},
			Currency: "AOA",
			Surcharges: models.SurchargeConfig{
				UrgencyPercent:    25,
				WeekendMultiplier: 1.2,
				HolidayMultiplier: 1.5,
			},
		},
		Validations: map[string]interface{}{
			"require_property_type": true,
			"min_hours":             2,
		},
	},
	"ac-repair": {
		FlowType: models.FlowCustom,
		RequiredScreens: []models.ScreenSpec{
			{Name: "address", Component: "screen-1-address-capture"},
			{Name: "unit_count", Component: "screen-3-ac-units"},
			{Name: "worker", Component: "screen-choose-worker"},
			{Name: "payment", Component: "screen-13-payment-method"},
		},
		PricingModel: models.PricingPerUnit,
		PricingConfig: models.PricingConfig{
			BasePrice: 16000,
			VolumeDiscounts: map[string]float64{
				"1":   0,
				"2-3": 10,
				"4-5": 15,
				"6+":  20,
			},
			Currency:   "AOA",
			Surcharges: standardSurcharges,
		},
		Validations: map[string]interface{}{
			"require_unit_count": true,
		},
	},
	"pest-control": {
		FlowType: models.FlowCustom,
		RequiredScreens: []models.ScreenSpec{
			{Name: "address", Component: "screen-1-address-capture"},
			{Name: "property_typology", Component: "screen-2-property-typology"},
			{Name: "pest_config", Component: "screen-5-pest-control-config"},
			{Name: "worker", Component: "screen-choose-worker"},
			{Name: "payment", Component: "screen-13-payment-method"},
		},
		PricingModel: models.PricingTypologyBased,
		PricingConfig: models.PricingConfig{
			RateTable: map[string]map[string]float64{
				"general": {
					"T1":  10000,
					"T2":  20000,
					"T3":  35000,
					"T4+": 40000,
				},
				"deratization": {
					"T1":  18000,
					"T2":  28000,
					"T3":  38000,
					"T4+": 50000,
				},
			},
			Currency:   "AOA",
			Surcharges: standardSurcharges,
		},
		Validations: map[string]interface{}{
			"require_property_type": true,
			"require_pest_type":     true,
		},
	},
	"dog-trainer": {
		FlowType: models.FlowCustom,
		RequiredScreens: []models.ScreenSpec{
			{Name: "address", Component: "screen-1-address-capture"},
			{Name: "package_selection", Component: "screen-6-dog-trainer-packages"},
			{Name: "worker", Component: "screen-choose-worker"},
			{Name: "payment", Component: "screen-13-payment-method"},
		},
		PricingModel: models.PricingPackage,
		PricingConfig: models.PricingConfig{
			Packages: []models.PackageOption{
				{ID: "evaluation", Name: "Sessão de Avaliação", Sessions: 1, Price: 15000},
				{ID: "single", Name: "Sessão Avulsa", Sessions: 1, Price: 20000},
				{ID: "pack5", Name: "Pacote 5 Sessões", Sessions: 5, Price: 90000},
				{ID: "pack10", Name: "Pacote 10 Sessões", Sessions: 10, Price: 160000},
			},
			Currency: "AOA",
		},
		Validations: map[string]interface{}{
			"require_package_selection": true,
		},
	},
}
