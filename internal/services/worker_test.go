package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestWorkerRunsJobs(t *testing.T) {
	w := NewWorker(2, 10, zap.NewNop())
	w.Start(context.Background())
	defer w.Stop()

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		ok := w.EnqueueJob(Job{Name: "count", Run: func(context.Context) { ran.Add(1) }})
		assert.True(t, ok)
	}

	assert.Eventually(t, func() bool { return ran.Load() == 5 }, time.Second, 5*time.Millisecond)
}

func TestWorkerSurvivesPanickingJob(t *testing.T) {
	w := NewWorker(1, 10, zap.NewNop())
	w.Start(context.Background())
	defer w.Stop()

	done := make(chan struct{})
	w.EnqueueJob(Job{Name: "panic", Run: func(context.Context) { panic("boom") }})
	w.EnqueueJob(Job{Name: "after", Run: func(context.Context) { close(done) }})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not run the job after a panic")
	}
}

func TestWorkerRejectsJobsAfterStop(t *testing.T) {
	w := NewWorker(1, 1, zap.NewNop())
	w.Start(context.Background())
	w.Stop()
	w.Stop()

	assert.False(t, w.EnqueueJob(Job{Name: "late", Run: func(context.Context) {}}))
}

func TestWorkerStopDropsQueuedJobs(t *testing.T) {
	w := NewWorker(1, 4, zap.NewNop()).(*worker)
	w.Start(context.Background())

	started := make(chan struct{})
	release := make(chan struct{})
	w.EnqueueJob(Job{Name: "busy", Run: func(context.Context) {
		close(started)
		<-release
	}})
	<-started

	var ran, dropped atomic.Int32
	for i := 0; i < 2; i++ {
		w.EnqueueJob(Job{
			Name: "queued",
			Run:  func(context.Context) { ran.Add(1) },
			Drop: func() { dropped.Add(1) },
		})
	}

	stopped := make(chan struct{})
	go func() {
		w.Stop()
		close(stopped)
	}()
	<-w.stopChan
	close(release)

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}

	assert.Equal(t, int32(0), ran.Load())
	assert.Equal(t, int32(2), dropped.Load())
}
