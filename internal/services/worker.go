package services

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Job is one unit of background work, usually a flow run for a session.
// Drop, if set, releases the job's resources when it is discarded without
// running.
type Job struct {
	Name string
	Run  func(ctx context.Context)
	Drop func()
}

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(job Job) bool
}

type worker struct {
	jobQueue    chan Job
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
	mu          sync.RWMutex
	stopped     bool
	logger      *zap.Logger
}

func NewWorker(concurrency, queueSize int, logger *zap.Logger) Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &worker{
		jobQueue:    make(chan Job, queueSize),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
		logger:      logger,
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	w.logger.Info("🚀 starting worker", zap.Int("concurrency", w.concurrency))

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}
}

// Stop implements Worker. Jobs already running finish; queued jobs are
// dropped through their Drop hook.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		w.logger.Info("🛑 stopping worker")
		close(w.stopChan)

		w.mu.Lock()
		w.stopped = true
		w.mu.Unlock()

		w.wg.Wait()
		w.drain()
		w.logger.Info("✅ worker stopped")
	})
}

func (w *worker) drain() {
	for {
		select {
		case job := <-w.jobQueue:
			w.drop(job)
		default:
			return
		}
	}
}

func (w *worker) drop(job Job) {
	w.logger.Warn("⚠️ dropping queued job", zap.String("job", job.Name))
	if job.Drop != nil {
		job.Drop()
	}
}

func (w *worker) stopping() bool {
	select {
	case <-w.stopChan:
		return true
	default:
		return false
	}
}

// EnqueueJob implements Worker. It blocks while the queue is full and
// reports false once the worker is stopped.
func (w *worker) EnqueueJob(job Job) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.stopped {
		w.logger.Warn("⚠️ worker stopped, cannot enqueue job", zap.String("job", job.Name))
		return false
	}

	select {
	case w.jobQueue <- job:
		w.logger.Debug("📥 job enqueued", zap.String("job", job.Name))
		return true
	case <-w.stopChan:
		w.logger.Warn("⚠️ worker stopped, cannot enqueue job", zap.String("job", job.Name))
		return false
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			w.logger.Debug("👷 worker stopped", zap.Int("worker", workerID))
			return
		case <-ctx.Done():
			return
		case job := <-w.jobQueue:
			if w.stopping() {
				w.drop(job)
				continue
			}
			w.logger.Debug("👷 processing job", zap.Int("worker", workerID), zap.String("job", job.Name))
			w.run(ctx, workerID, job)
		}
	}
}

func (w *worker) run(ctx context.Context, workerID int, job Job) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("❌ job panicked", zap.Int("worker", workerID), zap.String("job", job.Name), zap.Any("panic", r))
		}
	}()
	job.Run(ctx)
}
