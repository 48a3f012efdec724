package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"prisonsphere_backend/internals/features/programs/work_programs/service"
	"prisonsphere_backend/internals/helpers/jobs"
)

const DefaultSchedule = "@daily"

// Register adds the enrollment auto-completion sweep to c.
func Register(c *cron.Cron, db *gorm.DB, schedule string) (cron.EntryID, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	return c.AddFunc(schedule, func() { RunCompletion(db, time.Now().UTC()) })
}

// RunCompletion completes enrollments whose end date has passed. Failures are
// logged, never returned.
func RunCompletion(db *gorm.DB, now time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), jobs.DefaultTimeout)
	defer cancel()

	n, err := service.CompleteExpired(ctx, db, now)
	if err != nil {
		zap.L().Error("work program auto-completion failed", zap.Error(err))
		return
	}
	zap.L().Info("work program auto-completion done", zap.Int("completed", n))
}
