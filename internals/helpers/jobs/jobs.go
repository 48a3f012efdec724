// Package jobs builds the process-wide cron runner used by background sweeps.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single sweep run.
const DefaultTimeout = 4 * time.Minute

type zapCronLogger struct {
	l *zap.SugaredLogger
}

func (z zapCronLogger) Info(msg string, keysAndValues ...interface{}) {
	z.l.Debugw(msg, keysAndValues...)
}

func (z zapCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	z.l.Errorw(msg, append(keysAndValues, "error", err)...)
}

// New returns a cron runner that recovers panics and skips a run while the previous
// one is still going. The caller owns Start/Stop.
func New() *cron.Cron {
	lg := zapCronLogger{l: zap.S().Named("cron")}
	return cron.New(
		cron.WithLogger(lg),
		cron.WithChain(cron.Recover(lg), cron.SkipIfStillRunning(lg)),
	)
}

// Stop halts scheduling and waits for running jobs, at most until ctx is done.
func Stop(ctx context.Context, c *cron.Cron) {
	done := c.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		zap.L().Warn("cron jobs still running at shutdown")
	}
}
