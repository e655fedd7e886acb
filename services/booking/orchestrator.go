package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"zela/models"
	"zela/services/ledger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxConsumeRetries bounds the transparent retries on ledger CAS conflicts
// before the failure is surfaced as transient.
const maxConsumeRetries = 3

// StartFlow creates a new booking session for a service category.
func (s *DefaultBookingSessionService) StartFlow(ctx context.Context, serviceSlug, userID string) (*models.BookingSession, error) {
	cfg, err := s.Catalog.Get(ctx, serviceSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to load flow config for %q: %w", serviceSlug, err)
	}

	now := time.Now()
	session := &models.BookingSession{
		SessionID:   uuid.New().String(),
		UserID:      userID,
		ServiceSlug: cfg.ServiceSlug,
		Config:      *cfg,
		Flow:        NewFlowState(BuildSequence(*cfg)),
		Data:        make(map[string]map[string]interface{}),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	s.Logger.Info("booking flow started",
		zap.String("sessionId", session.SessionID),
		zap.String("service", session.ServiceSlug),
		zap.Strings("sequence", session.Flow.Sequence))
	return session, nil
}

// GetSession returns the live session.
func (s *DefaultBookingSessionService) GetSession(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	return s.Sessions.Get(ctx, sessionID)
}

// SubmitScreen records the submitted values under the current screen and
// advances to the next non-skipped screen. Submitting for a screen other
// than the current one is rejected; use Jump first.
func (s *DefaultBookingSessionService) SubmitScreen(ctx context.Context, sessionID, screen string, data map[string]interface{}) (*models.BookingSession, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	current := Current(session.Flow)
	if current == "" {
		return nil, NewFlowError("emptyFlow", "booking flow has no screens")
	}
	if screen != "" && screen != current {
		return nil, NewFlowError("wrongScreen",
			fmt.Sprintf("submitted screen %q but current screen is %q", screen, current))
	}

	if session.Data == nil {
		session.Data = make(map[string]map[string]interface{})
	}
	session.Data[current] = data

	// Worker and package selections ride along with their screens.
	if v, ok := data["workerId"].(string); ok && v != "" {
		session.SelectedWorker = v
	}
	if v, ok := data["packageId"].(string); ok && v != "" {
		session.SelectedPackage = v
	}

	session.Flow, _ = Advance(session.Flow, session.Config, session.FlatData())
	session.UpdatedAt = time.Now()

	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Back moves to the previous non-skipped screen.
func (s *DefaultBookingSessionService) Back(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Flow, _ = Retreat(session.Flow, session.Config, session.FlatData())
	session.UpdatedAt = time.Now()
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Jump navigates straight to a named screen. An unknown screen is a no-op,
// never an error.
func (s *DefaultBookingSessionService) Jump(ctx context.Context, sessionID, screen string) (*models.BookingSession, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Flow, _ = JumpTo(session.Flow, screen)
	session.UpdatedAt = time.Now()
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SelectWorker records the chosen worker on the session.
func (s *DefaultBookingSessionService) SelectWorker(ctx context.Context, sessionID, workerID string) (*models.BookingSession, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.SelectedWorker = workerID
	session.UpdatedAt = time.Now()
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SelectPackage records the prepaid package to book against.
func (s *DefaultBookingSessionService) SelectPackage(ctx context.Context, sessionID, packageID string) (*models.BookingSession, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.SelectedPackage = packageID
	session.UpdatedAt = time.Now()
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Quote prices the session from its accumulated data.
func (s *DefaultBookingSessionService) Quote(ctx context.Context, sessionID string) (*models.PricingResult, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return Price(session.Config.PricingModel, session.Config.PricingConfig, factsFromSession(session))
}

// Confirm turns the session into a persisted booking. Credit consumption,
// charging, and persistence form one logical unit: a consumed credit is
// refunded if the booking cannot be persisted afterwards. Notification
// failures never roll anything back.
func (s *DefaultBookingSessionService) Confirm(ctx context.Context, sessionID string, req ConfirmRequest) (*models.Booking, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	price, err := Price(session.Config.PricingModel, session.Config.PricingConfig, factsFromSession(session))
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ID:            uuid.New().String(),
		UserID:        session.UserID,
		WorkerID:      session.SelectedWorker,
		ServiceSlug:   session.ServiceSlug,
		Screens:       session.Data,
		Pricing:       *price,
		PaymentMethod: req.PaymentMethod,
		Status:        models.BookingConfirmed,
		CreatedAt:     time.Now(),
	}

	var consumedPackage string
	if session.Config.PricingModel == models.PricingPackage {
		pkg, err := s.consumeWithRetry(ctx, session.SelectedPackage, 1)
		if err != nil {
			return nil, err
		}
		consumedPackage = pkg.ID
		booking.PackageID = pkg.ID
		booking.Pricing.CreditValue = pkg.CreditValue()
	} else if price.TotalAmount > 0 {
		inv, err := s.Gateway.Charge(ctx, models.PaymentRequest{
			UserID:          session.UserID,
			Amount:          price.TotalAmount,
			Currency:        price.Currency,
			Method:          req.PaymentMethod,
			PaymentMethodID: req.PaymentMethodID,
			Description:     fmt.Sprintf("Booking %s (%s)", booking.ID, booking.ServiceSlug),
		})
		if err != nil {
			return nil, fmt.Errorf("payment failed: %w", err)
		}
		booking.InvoiceID = inv.InvoiceID
	}

	if err := s.Bookings.Create(ctx, booking); err != nil {
		// Compensating action: a consumed credit must never dangle.
		if consumedPackage != "" {
			if _, rerr := s.Ledger.Refund(ctx, consumedPackage, 1); rerr != nil {
				s.Logger.Error("failed to refund credit after persist failure",
					zap.String("packageId", consumedPackage),
					zap.Error(rerr))
			}
		}
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	if s.Notifier != nil {
		if nerr := s.Notifier.BookingConfirmed(ctx, booking); nerr != nil {
			s.Logger.Warn("booking confirmed notification failed",
				zap.String("bookingId", booking.ID),
				zap.Error(nerr))
		}
	}

	if derr := s.Sessions.Delete(ctx, sessionID); derr != nil {
		s.Logger.Warn("failed to drop confirmed session",
			zap.String("sessionId", sessionID),
			zap.Error(derr))
	}

	s.Logger.Info("booking confirmed",
		zap.String("bookingId", booking.ID),
		zap.String("service", booking.ServiceSlug),
		zap.Float64("total", booking.Pricing.TotalAmount))
	return booking, nil
}

// Cancel abandons the session. No credits were consumed and no charge was
// attempted before confirmation, so dropping the session is the whole job.
func (s *DefaultBookingSessionService) Cancel(ctx context.Context, sessionID string) error {
	return s.Sessions.Delete(ctx, sessionID)
}

func (s *DefaultBookingSessionService) consumeWithRetry(ctx context.Context, packageID string, count int) (*models.ServicePackage, error) {
	if packageID == "" {
		return nil, NewInvalidFactsError(models.PricingPackage, "packageRef")
	}

	var lastErr error
	for attempt := 1; attempt <= maxConsumeRetries; attempt++ {
		pkg, err := s.Ledger.Consume(ctx, packageID, count)
		if err == nil {
			return pkg, nil
		}
		var conflict *ledger.ConcurrencyConflictError
		if !errors.As(err, &conflict) {
			return nil, err
		}
		lastErr = err
		s.Logger.Debug("credit consume conflict, retrying",
			zap.String("packageId", packageID),
			zap.Int("attempt", attempt))
	}
	return nil, fmt.Errorf("credit consume kept conflicting: %w", lastErr)
}
