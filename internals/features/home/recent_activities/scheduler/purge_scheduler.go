package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"prisonsphere_backend/internals/features/home/recent_activities/service"
	"prisonsphere_backend/internals/helpers/jobs"
)

const DefaultSchedule = "@daily"

// Register adds the daily feed purge to c.
func Register(c *cron.Cron, db *gorm.DB, schedule string) (cron.EntryID, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	return c.AddFunc(schedule, func() { RunPurge(db, time.Now().UTC()) })
}

// RunPurge removes feed rows older than 24h relative to now. Failures are logged only.
func RunPurge(db *gorm.DB, now time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), jobs.DefaultTimeout)
	defer cancel()

	n, err := service.Purge(db.WithContext(ctx), now)
	if err != nil {
		zap.L().Error("recent activity purge failed", zap.Error(err))
		return
	}
	zap.L().Info("recent activity purge done", zap.Int64("deleted", n))
}
