package ocr

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Runner abstracts the external OCR binaries so tests can substitute canned
// output for tesseract and the poppler tools.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// stderr is clipped in logs so a chatty tesseract run cannot flood them.
const maxStderrLog = 8 << 10

// execRunner shells out via os/exec with both streams captured.
type execRunner struct {
	logger *slog.Logger
}

func (r execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	logger := r.logger
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		logger.Error("ocr.exec.failed",
			"bin", filepath.Base(name),
			"args", strings.Join(args, " "),
			"elapsed_ms", elapsed.Milliseconds(),
			"error", err,
			"stderr", clip(stderr.String(), maxStderrLog))
		return stdout.Bytes(), stderr.Bytes(), fmt.Errorf("%s: %w", filepath.Base(name), err)
	}

	logger.Debug("ocr.exec.done",
		"bin", filepath.Base(name),
		"args", strings.Join(args, " "),
		"elapsed_ms", elapsed.Milliseconds(),
		"stdout_bytes", stdout.Len(),
		"stderr_bytes", stderr.Len())
	return stdout.Bytes(), stderr.Bytes(), nil
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(clipped)"
}
