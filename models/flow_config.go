package models

// FlowType names a screen-order template used as the starting point for a
// service category's booking sequence.
type FlowType string

const (
	FlowStandard      FlowType = "standard"
	FlowPropertyBased FlowType = "property_based"
	FlowUnitBased     FlowType = "unit_based"
	FlowTimeBased     FlowType = "time_based"
	FlowPackageBased  FlowType = "package_based"
	FlowCustom        FlowType = "custom"
)

// PricingModel selects the pricing strategy for a service category.
type PricingModel string

const (
	PricingFixed         PricingModel = "fixed"
	PricingHourly        PricingModel = "hourly"
	PricingHourlyMinimum PricingModel = "hourly_minimum"
	PricingPerUnit       PricingModel = "per_unit"
	PricingPackage       PricingModel = "package"
	PricingTypologyBased PricingModel = "typology_based"
)

// Condition operators. Anything else evaluates to false.
const (
	OpEquals    = "equals"
	OpNotEquals = "not_equals"
	OpIn        = "in"
	OpNotIn     = "not_in"
	OpExists    = "exists"
	OpNotExists = "not_exists"
)

// Condition is a predicate over accumulated booking data. The structured
// Field/Operator/Value form is the only one that survives serialization.
type Condition struct {
	Field    string      `bson:"field" json:"field"`
	Operator string      `bson:"operator" json:"operator"`
	Value    interface{} `bson:"value,omitempty" json:"value,omitempty"`

	// Eval is an opaque evaluator reserved for flows composed in code.
	// Configs loaded from storage can only carry the structured form.
	Eval func(data map[string]interface{}) bool `bson:"-" json:"-"`
}

// ScreenPosition pins a screen immediately before or after an existing one.
type ScreenPosition struct {
	Before string `bson:"before,omitempty" json:"before,omitempty"`
	After  string `bson:"after,omitempty" json:"after,omitempty"`
}

// Explicit reports whether the position actually names an anchor.
func (p *ScreenPosition) Explicit() bool {
	return p != nil && (p.Before != "" || p.After != "")
}

// ScreenSpec declares one screen in a flow configuration.
type ScreenSpec struct {
	Name      string          `bson:"name" json:"name"`
	Component string          `bson:"component,omitempty" json:"component,omitempty"`
	Position  *ScreenPosition `bson:"position,omitempty" json:"position,omitempty"`
	Condition *Condition      `bson:"condition,omitempty" json:"condition,omitempty"`
}

// FlowConfig is the immutable per-service booking flow configuration.
type FlowConfig struct {
	ServiceSlug     string               `bson:"slug" json:"slug"`
	FlowType        FlowType             `bson:"flowType" json:"flowType"`
	BaseScreens     []string             `bson:"baseScreens,omitempty" json:"baseScreens,omitempty"`
	RequiredScreens []ScreenSpec         `bson:"requiredScreens,omitempty" json:"requiredScreens,omitempty"`
	OptionalScreens []ScreenSpec         `bson:"optionalScreens,omitempty" json:"optionalScreens,omitempty"`
	SkipConditions  map[string]Condition `bson:"skipConditions,omitempty" json:"skipConditions,omitempty"`
	PricingModel    PricingModel         `bson:"pricingModel" json:"pricingModel"`
	PricingConfig   PricingConfig        `bson:"pricingConfig" json:"pricingConfig"`

	// Validations are authoring hints for the form layer (min/max duration
	// and the like). The core never enforces them.
	Validations map[string]interface{} `bson:"validations,omitempty" json:"validations,omitempty"`

	// UnplacedOptional lists optional screens that declared no position and
	// were therefore not inserted into the sequence. Populated by the
	// catalog store; authors are expected to fix these.
	UnplacedOptional []string `bson:"-" json:"unplacedOptional,omitempty"`
}
