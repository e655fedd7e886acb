package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"zela/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// QueueService enqueues notification tasks on the asynq queue; the worker in
// cron/worker.go consumes them.
type QueueService struct {
	client *asynq.Client
	logger *zap.Logger
}

func NewQueueService(redisOpt asynq.RedisClientOpt, logger *zap.Logger) *QueueService {
	return &QueueService{
		client: asynq.NewClient(redisOpt),
		logger: logger,
	}
}

// BookingConfirmed queues a confirmed event for the customer and, when one
// was selected, the worker.
func (s *QueueService) BookingConfirmed(ctx context.Context, b *models.Booking) error {
	payloads := []models.BookingConfirmedPayload{
		{
			Target:      models.NotifyTargetUser,
			RecipientID: b.UserID,
			BookingID:   b.ID,
			ServiceSlug: b.ServiceSlug,
			Amount:      b.Pricing.TotalAmount,
			Currency:    b.Pricing.Currency,
		},
	}
	if b.WorkerID != "" {
		payloads = append(payloads, models.BookingConfirmedPayload{
			Target:      models.NotifyTargetWorker,
			RecipientID: b.WorkerID,
			BookingID:   b.ID,
			ServiceSlug: b.ServiceSlug,
			Amount:      b.Pricing.TotalAmount,
			Currency:    b.Pricing.Currency,
		})
	}

	var firstErr error
	for _, p := range payloads {
		raw, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to marshal notification payload: %w", err)
		}
		task := asynq.NewTask(TaskBookingConfirmed, raw)
		if _, err := s.client.EnqueueContext(ctx, task, asynq.MaxRetry(3), asynq.Timeout(30*time.Second)); err != nil {
			s.logger.Warn("failed to enqueue notification",
				zap.String("target", p.Target),
				zap.String("bookingId", p.BookingID),
				zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Close releases the underlying queue client.
func (s *QueueService) Close() error {
	return s.client.Close()
}
