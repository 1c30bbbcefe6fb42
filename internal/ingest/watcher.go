package ingest

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/arjun-krishnan/docuverify/constants"
)

// WatchConfig controls the inbox watcher.
type WatchConfig struct {
	Root        string        // directory to watch (recursive)
	InitialScan bool          // emit files already present under Root
	Debounce    time.Duration // coalesce rapid write/rename bursts
}

// Watch emits paths of supported documents appearing under cfg.Root until
// ctx is cancelled. The channel is closed on exit.
func Watch(ctx context.Context, cfg WatchConfig, logger *slog.Logger) (<-chan string, error) {
	if cfg.Root == "" {
		return nil, errors.New("ingest: no watch root provided")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	evCh := make(chan string, 256)

	emit := func(path string) {
		select {
		case evCh <- path:
		default:
			logger.Warn("ingest.watch.dropped", "path", path)
		}
	}

	// Watch the tree recursively; optionally emit what is already there.
	err = filepath.WalkDir(cfg.Root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return w.Add(path)
		}
		if cfg.InitialScan && constants.IsAllowedExtension(path) {
			emit(path)
		}
		return nil
	})
	if err != nil {
		_ = w.Close()
		return nil, err
	}

	logger.Info("ingest.watch.started", "root", cfg.Root, "initial_scan", cfg.InitialScan)

	go func() {
		defer close(evCh)
		defer func() { _ = w.Close() }()

		// pending is shared with the debounce timer goroutine.
		var (
			mu      sync.Mutex
			timer   *time.Timer
			pending = map[string]struct{}{}
		)

		flush := func() {
			mu.Lock()
			batch := make([]string, 0, len(pending))
			for p := range pending {
				batch = append(batch, p)
				delete(pending, p)
			}
			mu.Unlock()
			for _, p := range batch {
				emit(p)
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-w.Events:
				if !ok {
					return
				}
				if e.Op&fsnotify.Create != 0 {
					// New subdirectories need their own watch.
					if fi, err := os.Stat(e.Name); err == nil && fi.IsDir() {
						if err := w.Add(e.Name); err != nil {
							logger.Warn("ingest.watch.add_dir_failed", "path", e.Name, "error", err)
						}
						continue
					}
				}
				if !constants.IsAllowedExtension(e.Name) {
					continue
				}
				if e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
					continue
				}
				mu.Lock()
				pending[e.Name] = struct{}{}
				mu.Unlock()
				if cfg.Debounce <= 0 {
					flush()
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(cfg.Debounce, flush)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Error("ingest.watch.error", "error", err)
			}
		}
	}()

	return evCh, nil
}
