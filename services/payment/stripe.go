package payment

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"zela/models"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// StripeGateway charges cards through Stripe PaymentIntents. Cash payments
// are recorded as pending invoices and settled offline.
type StripeGateway struct {
	logger *zap.Logger
}

func NewStripeGateway(apiKey string, logger *zap.Logger) *StripeGateway {
	stripe.Key = apiKey
	return &StripeGateway{logger: logger}
}

func (g *StripeGateway) Charge(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error) {
	if err := validateRequest(req); err != nil {
		return nil, fmt.Errorf("invalid payment request: %w", err)
	}

	inv := &models.Invoice{
		InvoiceID: uuid.New().String(),
		UserID:    req.UserID,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Method:    req.Method,
		Status:    models.InvoicePending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	switch req.Method {
	case models.PaymentMethodCard:
		return g.chargeCard(ctx, req, inv)
	case models.PaymentMethodCash:
		// Cash stays pending until the worker confirms collection.
		g.logger.Info("Cash payment recorded", zap.String("invoice", inv.InvoiceID))
		return inv, nil
	default:
		return nil, fmt.Errorf("unsupported payment method: %s", req.Method)
	}
}

func (g *StripeGateway) chargeCard(ctx context.Context, req models.PaymentRequest, inv *models.Invoice) (*models.Invoice, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(int64(math.Round(req.Amount * 100))),
		Currency:    stripe.String(strings.ToLower(req.Currency)),
		Description: stripe.String(req.Description),
		Confirm:     stripe.Bool(true),
	}
	if req.PaymentMethodID != "" {
		params.PaymentMethod = stripe.String(req.PaymentMethodID)
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		inv.Status = models.InvoiceFailed
		inv.UpdatedAt = time.Now()
		return nil, fmt.Errorf("card charge failed: %w", err)
	}

	inv.PaymentID = pi.ID
	inv.UpdatedAt = time.Now()
	if pi.Status == stripe.PaymentIntentStatusSucceeded {
		inv.Status = models.InvoicePaid
	} else {
		inv.Status = models.InvoiceProcessing
	}

	g.logger.Info("Card payment processed",
		zap.String("invoice", inv.InvoiceID),
		zap.String("paymentIntent", pi.ID),
		zap.String("status", inv.Status))
	return inv, nil
}
