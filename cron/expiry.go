package cron

import (
	"context"
	"time"

	packageRepo "zela/database/repository/servicepackage"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartExpirySweep schedules the daily sweep that transitions active
// packages past their expiry time to expired. The ledger applies the same
// rule lazily on consume; the sweep keeps listings honest in between.
func StartExpirySweep(repo packageRepo.Repository, logger *zap.Logger) *cron.Cron {
	c := cron.New()
	c.AddFunc("@daily", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := repo.MarkExpired(ctx, time.Now())
		if err != nil {
			logger.Error("package expiry sweep failed", zap.Error(err))
			return
		}
		if n > 0 {
			logger.Info("package expiry sweep", zap.Int64("expired", n))
		}
	})
	c.Start()
	return c
}
