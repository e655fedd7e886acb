package notification

import (
	"context"

	"zela/models"

	"go.uber.org/zap"
)

// Task type names used on the notification queue.
const TaskBookingConfirmed = "notification:booking_confirmed"

// Service publishes booking lifecycle events. Publishing is fire-and-forget
// from the orchestrator's point of view: a failure here never rolls back a
// confirmed booking.
type Service interface {
	BookingConfirmed(ctx context.Context, b *models.Booking) error
}

// Sender delivers a queued event to its recipient. Actual delivery (push,
// email, SMS) belongs to an external collaborator; LogSender is the built-in
// stand-in.
type Sender interface {
	Send(ctx context.Context, payload models.BookingConfirmedPayload) error
}

// LogSender writes events to the log instead of delivering them.
type LogSender struct {
	Logger *zap.Logger
}

func (s *LogSender) Send(_ context.Context, p models.BookingConfirmedPayload) error {
	s.Logger.Info("booking confirmed notification",
		zap.String("target", p.Target),
		zap.String("recipientId", p.RecipientID),
		zap.String("bookingId", p.BookingID),
		zap.String("serviceSlug", p.ServiceSlug))
	return nil
}
