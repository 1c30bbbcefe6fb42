// Command docuextract runs the extraction pipeline against a single
// document and prints the result as JSON. Useful for smoke-testing OCR
// and field extraction without the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/arjun-krishnan/docuverify/internal/common"
	"github.com/arjun-krishnan/docuverify/internal/fields"
	"github.com/arjun-krishnan/docuverify/internal/llm"
	"github.com/arjun-krishnan/docuverify/internal/llm/openrouter"
	"github.com/arjun-krishnan/docuverify/internal/ocr"
	processor "github.com/arjun-krishnan/docuverify/internal/pipeline"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "docuextract <file-path>")
		os.Exit(2)
	}
	path := os.Args[1]
	if _, err := os.Stat(path); err != nil {
		logger.Error("stat input file", "path", path, "error", err)
		os.Exit(2)
	}

	cfg := common.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

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
	}

	proc := processor.NewProcessor(logger, ocrx, fx, fallback, nil)

	res, err := proc.ProcessFile(ctx, path, filepath.Base(path))
	if err != nil {
		logger.Error("extraction failed", "path", path, "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}
}
