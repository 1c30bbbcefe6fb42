// Package ingest watches an inbox directory and feeds dropped documents
// through the extraction pipeline. It is optional; the server runs
// without it when no watch root is configured.
package ingest

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Ingestor connects the inbox watcher to the worker queue.
type Ingestor struct {
	cfg    WatchConfig
	queue  *Queue
	logger *slog.Logger
}

func NewIngestor(cfg WatchConfig, queue *Queue, logger *slog.Logger) *Ingestor {
	return &Ingestor{cfg: cfg, queue: queue, logger: logger}
}

// Run blocks until ctx is cancelled or the watcher fails to start.
func (i *Ingestor) Run(ctx context.Context) error {
	evCh, err := Watch(ctx, i.cfg, i.logger)
	if err != nil {
		return err
	}
	for path := range evCh {
		if !waitSettled(ctx, path) {
			i.logger.Warn("ingest.skip.unsettled", "path", path)
			continue
		}
		i.queue.Enqueue(Job{Path: path, SubmittedAt: time.Now().UTC()})
	}
	return nil
}

// waitSettled waits for the file size to stop changing so half-copied
// files are not fed to the pipeline.
func waitSettled(ctx context.Context, path string) bool {
	var last int64 = -1
	for attempt := 0; attempt < 20; attempt++ {
		fi, err := os.Stat(path)
		if err != nil {
			return false
		}
		if fi.Size() == last && fi.Size() > 0 {
			return true
		}
		last = fi.Size()
		select {
		case <-ctx.Done():
			return false
		case <-time.After(150 * time.Millisecond):
		}
	}
	return false
}
