package jobs

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestStopWaitsForRunningJobs(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := New()
	var finished atomic.Bool
	started := make(chan struct{}, 1)

	_, err := c.AddFunc("@every 1s", func() {
		select {
		case started <- struct{}{}:
		default:
		}
		time.Sleep(50 * time.Millisecond)
		finished.Store(true)
	})
	require.NoError(t, err)

	c.Start()
	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("job never ran")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	Stop(ctx, c)
	assert.True(t, finished.Load())
}

func TestInvalidSpecIsRejected(t *testing.T) {
	c := New()
	_, err := c.AddFunc("not a schedule", func() {})
	assert.Error(t, err)
}
