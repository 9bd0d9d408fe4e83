package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingOrchestrator struct {
	Orchestrator
	sweeps atomic.Int32
	ttl    atomic.Int64
}

func (c *countingOrchestrator) EndIdleSessions(ttl time.Duration) int {
	c.ttl.Store(int64(ttl))
	c.sweeps.Add(1)
	return 0
}

func TestJanitorSweepsOnInterval(t *testing.T) {
	o := &countingOrchestrator{}
	j := NewJanitor(o, 15*time.Minute, 5*time.Millisecond, zap.NewNop())
	j.Start(context.Background())

	assert.Eventually(t, func() bool { return o.sweeps.Load() >= 2 }, time.Second, 5*time.Millisecond)
	j.Stop()
	j.Stop()

	after := o.sweeps.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, o.sweeps.Load())
	assert.Equal(t, int64(15*time.Minute), o.ttl.Load())
}
