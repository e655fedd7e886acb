package payment

import (
	"context"
	"errors"

	"zela/models"
)

// Gateway is the opaque charge capability. The booking core decides how
// much and whether to charge; everything gateway-specific stays behind this
// interface.
type Gateway interface {
	Charge(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error)
}

func validateRequest(req models.PaymentRequest) error {
	if req.Amount <= 0 {
		return errors.New("invalid payment amount")
	}
	if req.UserID == "" {
		return errors.New("missing user ID")
	}
	if req.Method != models.PaymentMethodCard && req.Method != models.PaymentMethodCash {
		return errors.New("unsupported method")
	}
	return nil
}
