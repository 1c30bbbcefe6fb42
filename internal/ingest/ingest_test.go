package ingest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	processor "github.com/arjun-krishnan/docuverify/internal/pipeline"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeProcessor struct {
	mu    sync.Mutex
	names []string
	err   error
}

func (f *fakeProcessor) ProcessFile(_ context.Context, _, filename string) (*processor.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.names = append(f.names, filename)
	if f.err != nil {
		return nil, f.err
	}
	return &processor.Result{Filename: filename, DocumentConfidence: 0.9}, nil
}

func (f *fakeProcessor) processed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.names...)
}

func TestQueueProcessesJobs(t *testing.T) {
	fake := &fakeProcessor{}
	q := NewQueue(fake, discardLogger(), WithWorkers(2))

	for _, p := range []string{"/in/a.png", "/in/b.pdf", "/in/c.jpg"} {
		q.Enqueue(Job{Path: p, SubmittedAt: time.Now()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	got := fake.processed()
	if len(got) != 3 {
		t.Fatalf("processed %d jobs, want 3: %v", len(got), got)
	}
}

func TestQueueProcessorErrorDoesNotStopWorkers(t *testing.T) {
	fake := &fakeProcessor{err: errors.New("ocr failed")}
	q := NewQueue(fake, discardLogger(), WithWorkers(1))

	q.Enqueue(Job{Path: "/in/a.png"})
	q.Enqueue(Job{Path: "/in/b.png"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	if got := fake.processed(); len(got) != 2 {
		t.Fatalf("processed %d jobs, want 2", len(got))
	}
}

func TestQueueRejectsAfterShutdown(t *testing.T) {
	fake := &fakeProcessor{}
	q := NewQueue(fake, discardLogger(), WithWorkers(1))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	q.Enqueue(Job{Path: "/in/late.png"})
	if got := fake.processed(); len(got) != 0 {
		t.Fatalf("processed %d jobs after shutdown, want 0", len(got))
	}
}

func TestWaitSettled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.png")
	if err := os.WriteFile(path, []byte("stable contents"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !waitSettled(context.Background(), path) {
		t.Error("expected stable file to settle")
	}
	if waitSettled(context.Background(), filepath.Join(dir, "missing.png")) {
		t.Error("expected missing file not to settle")
	}
}

func TestWatchInitialScan(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.png"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, err := Watch(ctx, WatchConfig{Root: dir, InitialScan: true}, discardLogger())
	if err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-evCh:
		if filepath.Base(p) != "a.png" {
			t.Errorf("initial scan emitted %q, want a.png", p)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for initial scan event")
	}

	if err := os.WriteFile(filepath.Join(dir, "b.jpg"), []byte("y"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case p := <-evCh:
			if filepath.Base(p) == "b.jpg" {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for create event")
		}
	}
}

func TestWatchDebouncedEvents(t *testing.T) {
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, err := Watch(ctx, WatchConfig{Root: dir, Debounce: 20 * time.Millisecond}, discardLogger())
	if err != nil {
		t.Fatal(err)
	}

	// Two bursts spaced wider than the debounce window, so the second
	// arrives while a timer flush may still be in flight.
	waitFor := func(name string) {
		t.Helper()
		deadline := time.After(5 * time.Second)
		for {
			select {
			case p := <-evCh:
				if filepath.Base(p) == name {
					return
				}
			case <-deadline:
				t.Fatalf("timed out waiting for %s", name)
			}
		}
	}

	if err := os.WriteFile(filepath.Join(dir, "first.png"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor("first.png")

	time.Sleep(60 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "second.pdf"), []byte("y"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor("second.pdf")
}

func TestWatchRequiresRoot(t *testing.T) {
	if _, err := Watch(context.Background(), WatchConfig{}, discardLogger()); err == nil {
		t.Fatal("expected error for empty root")
	}
}
