package booking

import (
	"fmt"

	"zela/models"
)

// InvalidFactsError reports a pricing computation missing a required fact.
// The caller re-prompts the relevant screen; the engine never silently
// prices at zero.
type InvalidFactsError struct {
	Model models.PricingModel
	Fact  string
}

func (e *InvalidFactsError) Error() string {
	return fmt.Sprintf("pricing model %q requires fact %q", e.Model, e.Fact)
}

// NewInvalidFactsError builds an InvalidFactsError for the given model/fact.
func NewInvalidFactsError(model models.PricingModel, fact string) error {
	return &InvalidFactsError{Model: model, Fact: fact}
}

// FlowError covers session-level failures in the orchestrator (missing or
// expired sessions, submissions against the wrong screen).
type FlowError struct {
	Code    string
	Message string
}

func (e *FlowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewFlowError(code, msg string) error {
	return &FlowError{Code: code, Message: msg}
}
