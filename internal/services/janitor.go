package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Janitor periodically ends sessions that have been idle longer than ttl.
type Janitor struct {
	orchestrator Orchestrator
	ttl          time.Duration
	interval     time.Duration
	logger       *zap.Logger

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewJanitor(orchestrator Orchestrator, ttl, interval time.Duration, logger *zap.Logger) *Janitor {
	return &Janitor{
		orchestrator: orchestrator,
		ttl:          ttl,
		interval:     interval,
		logger:       logger,
		stopChan:     make(chan struct{}),
	}
}

func (j *Janitor) Start(ctx context.Context) {
	j.wg.Add(1)
	go j.sweepIdleSessions(ctx)
}

func (j *Janitor) Stop() {
	j.stopOnce.Do(func() {
		close(j.stopChan)
		j.wg.Wait()
	})
}

func (j *Janitor) sweepIdleSessions(ctx context.Context) {
	defer j.wg.Done()
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.logger.Info("🔄 starting idle session sweeper", zap.Duration("ttl", j.ttl), zap.Duration("interval", j.interval))

	for {
		select {
		case <-j.stopChan:
			j.logger.Info("🔄 idle session sweeper stopped")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := j.orchestrator.EndIdleSessions(j.ttl); n > 0 {
				j.logger.Info("🧹 ended idle sessions", zap.Int("count", n))
			}
		}
	}
}
