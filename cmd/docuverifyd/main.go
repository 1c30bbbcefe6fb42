// Command docuverifyd runs the document extraction and verification
// HTTP service.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/arjun-krishnan/docuverify/internal/common"
	"github.com/arjun-krishnan/docuverify/internal/export"
	"github.com/arjun-krishnan/docuverify/internal/fields"
	"github.com/arjun-krishnan/docuverify/internal/history"
	"github.com/arjun-krishnan/docuverify/internal/ingest"
	"github.com/arjun-krishnan/docuverify/internal/llm"
	"github.com/arjun-krishnan/docuverify/internal/llm/openrouter"
	"github.com/arjun-krishnan/docuverify/internal/ocr"
	processor "github.com/arjun-krishnan/docuverify/internal/pipeline"
	"github.com/arjun-krishnan/docuverify/internal/server"
	"github.com/arjun-krishnan/docuverify/internal/verify"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("main.fatal", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ocrx := ocr.NewExtractor(ocr.Config{
		Tesseract:   cfg.OCR.TesseractBin,
		Pdftotext:   cfg.OCR.PdftotextBin,
		Pdftoppm:    cfg.OCR.PdftoppmBin,
		Languages:   cfg.OCR.Languages,
		TessdataDir: cfg.OCR.TessdataDir,
		Timeout:     cfg.OCR.Timeout,
	}, logger)
	fx := fields.NewExtractor(logger)

	var fallback llm.FieldExtractor
	if cfg.FallbackEnabled() {
		fallback = openrouter.NewClient(openrouter.Config{
			APIKey:      cfg.Fallback.APIKey,
			BaseURL:     cfg.Fallback.BaseURL,
			Model:       cfg.Fallback.Model,
			Temperature: cfg.Fallback.Temperature,
			Timeout:     cfg.Fallback.Timeout,
		}, logger)
		logger.Info("main.fallback_enabled", "model", cfg.Fallback.Model)
	} else {
		logger.Info("main.fallback_disabled")
	}

	var records history.Repository
	var exporter *export.Service
	if cfg.History.DSN != "" {
		store, err := history.Open(ctx, cfg.History.DSN, logger)
		if err != nil {
			return err
		}
		defer store.Close()
		records = store
		exporter = export.NewService(store, logger)
	} else {
		logger.Info("main.history_disabled")
	}

	proc := processor.NewProcessor(logger, ocrx, fx, fallback, records)
	verifier := verify.NewVerifier(logger)
	srv := server.NewServer(cfg.Server, cfg.OCR.WorkDir, proc, verifier, records, exporter, logger)

	if cfg.Ingest.WatchDir != "" {
		queue := ingest.NewQueue(proc, logger,
			ingest.WithWorkers(cfg.Ingest.Workers),
			ingest.WithProcessTimeout(cfg.OCR.Timeout+cfg.Fallback.Timeout))
		ing := ingest.NewIngestor(ingest.WatchConfig{
			Root:        cfg.Ingest.WatchDir,
			InitialScan: true,
			Debounce:    cfg.Ingest.Debounce,
		}, queue, logger)
		go func() {
			if err := ing.Run(ctx); err != nil {
				logger.Error("main.ingest_failed", "error", err)
			}
		}()
		defer func() {
			drainCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			queue.Shutdown(drainCtx)
		}()
	}

	httpSrv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: srv.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("main.listening", "addr", cfg.Server.HTTPAddr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("main.shutting_down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("main.stopped")
	return nil
}
