package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kisanmitra/farm-analytics-api/pkg/logger"
)

// ErrShutdown is returned when work is submitted after Shutdown
var ErrShutdown = errors.New("worker is shut down")

// Job represents a background task
type Job func(ctx context.Context) error

// Worker runs queued export jobs on a fixed pool and drives the periodic
// summary export schedule
type Worker struct {
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	queue   chan namedJob
	size    int
	stats   WorkerStats
	statsMu sync.RWMutex

	closeMu sync.RWMutex
	closed  bool
}

type namedJob struct {
	name string
	run  Job
}

// WorkerStats holds statistics about the worker. FinishedJobs counts every
// job that ran; FailedJobs is the subset that returned an error or panicked.
type WorkerStats struct {
	Workers       int   `json:"workers"`
	ActiveJobs    int   `json:"active_jobs"`
	FinishedJobs  int64 `json:"finished_jobs"`
	FailedJobs    int64 `json:"failed_jobs"`
	QueueLength   int   `json:"queue_length"`
	QueueCapacity int   `json:"queue_capacity"`
}

// NewWorker creates a worker with numWorkers concurrent processors and a
// queue of queueSize pending jobs
func NewWorker(numWorkers, queueSize int) *Worker {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if queueSize < 1 {
		queueSize = 100
	}
	ctx, cancel := context.WithCancel(context.Background())

	w := &Worker{
		ctx:    ctx,
		cancel: cancel,
		queue:  make(chan namedJob, queueSize),
		size:   numWorkers,
	}

	// Start worker goroutines
	for i := 0; i < numWorkers; i++ {
		w.wg.Add(1)
		go w.process(i)
	}

	return w
}

// Enqueue adds a job to the pool. A full queue is reported rather than
// blocking the HTTP request that submitted it.
func (w *Worker) Enqueue(name string, job Job) error {
	w.closeMu.RLock()
	defer w.closeMu.RUnlock()
	if w.closed {
		return ErrShutdown
	}

	select {
	case w.queue <- namedJob{name: name, run: job}:
		logger.Debug("[Worker] Job queued", "job", name)
		return nil
	default:
		return fmt.Errorf("queue full (%d pending), job %s rejected", cap(w.queue), name)
	}
}

// process handles jobs from the queue
func (w *Worker) process(workerID int) {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case job, ok := <-w.queue:
			if !ok {
				return
			}
			w.run(fmt.Sprintf("[Worker %d]", workerID), job)
		}
	}
}

// run executes one job with stats and panic recovery
func (w *Worker) run(prefix string, job namedJob) {
	w.trackJobStart()
	start := time.Now()
	failed := false
	defer func() {
		if r := recover(); r != nil {
			logger.Error(prefix+" Job panic", "job", job.name, "panic", fmt.Sprint(r))
			failed = true
		}
		w.trackJobEnd(failed)
	}()

	if err := job.run(w.ctx); err != nil {
		logger.Error(prefix+" Job error", "job", job.name, "error", err)
		failed = true
		return
	}
	logger.Info(prefix+" Job completed", "job", job.name, "elapsed", time.Since(start))
}

// ScheduleEvery runs a job at fixed intervals. The first run happens after the interval (not at startup).
func (w *Worker) ScheduleEvery(name string, interval time.Duration, job Job) {
	if interval <= 0 {
		logger.Warn("[Scheduler] Ignoring schedule with non-positive interval", "job", name)
		return
	}
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		nj := namedJob{name: name, run: job}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
				w.run("[Scheduler]", nj)
			}
		}
	}()
}

// Shutdown stops accepting work, cancels running jobs and waits for every
// goroutine to return
func (w *Worker) Shutdown() {
	w.closeMu.Lock()
	if w.closed {
		w.closeMu.Unlock()
		return
	}
	w.closed = true
	w.closeMu.Unlock()

	w.cancel()
	close(w.queue)
	w.wg.Wait()
}

// Context returns the worker's context for checking cancellation
func (w *Worker) Context() context.Context {
	return w.ctx
}

// GetStats returns the current worker statistics
func (w *Worker) GetStats() WorkerStats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()
	stats := w.stats
	stats.Workers = w.size
	stats.QueueLength = len(w.queue)
	stats.QueueCapacity = cap(w.queue)
	return stats
}

func (w *Worker) trackJobStart() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs++
}

func (w *Worker) trackJobEnd(failed bool) {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs--
	w.stats.FinishedJobs++
	if failed {
		w.stats.FailedJobs++
	}
}
