package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerRunOnce(t *testing.T) {
	scheduler := NewScheduler()

	var ran, failed atomic.Int32
	scheduler.AddJob("counting", time.Hour, func(ctx context.Context) error {
		ran.Add(1)
		return nil
	})
	scheduler.AddJob("failing", time.Hour, func(ctx context.Context) error {
		failed.Add(1)
		return errors.New("boom")
	})

	scheduler.RunOnce(context.Background())
	scheduler.RunOnce(context.Background())

	assert.Equal(t, int32(2), ran.Load())
	// A failing job is logged, not fatal, and keeps running.
	assert.Equal(t, int32(2), failed.Load())
}

func TestSchedulerStartRunsImmediately(t *testing.T) {
	scheduler := NewScheduler()

	executed := make(chan struct{}, 1)
	scheduler.AddJob("immediate", time.Hour, func(ctx context.Context) error {
		select {
		case executed <- struct{}{}:
		default:
		}
		return nil
	})

	scheduler.Start()
	defer scheduler.Stop()

	select {
	case <-executed:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on scheduler start")
	}
}
