package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	helperAuth "prisonsphere_backend/internals/helpers/auth"
	"prisonsphere_backend/internals/helpers/jobs"
)

const DefaultSchedule = "@daily"

// Register adds the blacklist cleanup to c.
func Register(c *cron.Cron, db *gorm.DB, schedule string) (cron.EntryID, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	return c.AddFunc(schedule, func() { RunCleanup(db, time.Now().UTC()) })
}

// RunCleanup drops blacklist entries that expired before now.
func RunCleanup(db *gorm.DB, now time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), jobs.DefaultTimeout)
	defer cancel()

	n, err := helperAuth.PurgeExpired(ctx, db, now)
	if err != nil {
		zap.L().Error("token blacklist cleanup failed", zap.Error(err))
		return
	}
	zap.L().Info("token blacklist cleanup done", zap.Int64("deleted", n))
}
