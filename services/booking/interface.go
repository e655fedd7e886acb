package booking

import (
	"context"

	bookingRepo "zela/database/repository/booking"
	"zela/models"
	"zela/services/ledger"
	"zela/services/notification"
	"zela/services/payment"

	"go.uber.org/zap"
)

// CatalogStore supplies validated flow configurations per service category.
type CatalogStore interface {
	Get(ctx context.Context, serviceSlug string) (*models.FlowConfig, error)
}

// ConfirmRequest carries the payment choice for a confirmation.
type ConfirmRequest struct {
	PaymentMethod   string `json:"paymentMethod"`
	PaymentMethodID string `json:"paymentMethodId,omitempty"`
}

// ScreenView is what the client needs to render the current step.
type ScreenView struct {
	SessionID string `json:"sessionId"`
	Screen    string `json:"screen,omitempty"`
	Index     int    `json:"index"`
	Progress  int    `json:"progress"`
	IsLast    bool   `json:"isLast"`
}

// BookingSessionService defines the interface for driving a booking flow
// screen by screen.
type BookingSessionService interface {
	StartFlow(ctx context.Context, serviceSlug, userID string) (*models.BookingSession, error)
	GetSession(ctx context.Context, sessionID string) (*models.BookingSession, error)
	SubmitScreen(ctx context.Context, sessionID, screen string, data map[string]interface{}) (*models.BookingSession, error)
	Back(ctx context.Context, sessionID string) (*models.BookingSession, error)
	Jump(ctx context.Context, sessionID, screen string) (*models.BookingSession, error)
	SelectWorker(ctx context.Context, sessionID, workerID string) (*models.BookingSession, error)
	SelectPackage(ctx context.Context, sessionID, packageID string) (*models.BookingSession, error)
	Quote(ctx context.Context, sessionID string) (*models.PricingResult, error)
	Confirm(ctx context.Context, sessionID string, req ConfirmRequest) (*models.Booking, error)
	Cancel(ctx context.Context, sessionID string) error
}

// DefaultBookingSessionService implements BookingSessionService.
type DefaultBookingSessionService struct {
	Catalog  CatalogStore
	Sessions SessionStore
	Ledger   ledger.CreditLedger
	Gateway  payment.Gateway
	Bookings bookingRepo.Repository
	Notifier notification.Service
	Logger   *zap.Logger
}
