package ingest

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	processor "github.com/arjun-krishnan/docuverify/internal/pipeline"
)

// Job is a single document waiting to be processed.
type Job struct {
	Path        string
	SubmittedAt time.Time
}

// FileProcessor is the slice of the pipeline the queue needs.
type FileProcessor interface {
	ProcessFile(ctx context.Context, path, filename string) (*processor.Result, error)
}

// Queue fans jobs out to a fixed pool of pipeline workers.
type Queue struct {
	proc    FileProcessor
	logger  *slog.Logger
	workers int
	timeout time.Duration

	ch   chan Job
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool
}

type Option func(*Queue)

func WithWorkers(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.workers = n
		}
	}
}

func WithQueueSize(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}

func WithProcessTimeout(d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func NewQueue(proc FileProcessor, logger *slog.Logger, opts ...Option) *Queue {
	q := &Queue{
		proc:    proc,
		logger:  logger,
		workers: 2,
		timeout: 2 * time.Minute,
		ch:      make(chan Job, 64),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *Queue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Info("ingest.worker.started", "worker_id", workerID)

				for job := range q.ch {
					ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
					res, err := q.proc.ProcessFile(ctx, job.Path, filepath.Base(job.Path))
					cancel()

					if err != nil {
						q.logger.Error("ingest.process.failed", "worker_id", workerID, "path", job.Path, "error", err)
						continue
					}
					q.logger.Info("ingest.process.ok",
						"worker_id", workerID,
						"path", job.Path,
						"confidence", res.DocumentConfidence,
						"fallback_used", res.FallbackUsed)
				}

				q.logger.Info("ingest.worker.stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

// Enqueue blocks when the buffer is full. Jobs submitted after Shutdown
// are dropped.
func (q *Queue) Enqueue(job Job) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("ingest.enqueue.rejected", "path", job.Path)
		return
	}
	select {
	case q.ch <- job:
	default:
		q.logger.Warn("ingest.queue.full", "path", job.Path)
		q.ch <- job
	}
}

// Shutdown stops accepting jobs and waits for in-flight work, bounded by ctx.
func (q *Queue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("ingest.shutdown.interrupted")
	case <-done:
		q.logger.Info("ingest.shutdown.drained")
	}
}
