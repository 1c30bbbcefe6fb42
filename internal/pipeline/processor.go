// Package processor coordinates the document pipeline: OCR, field
// extraction, optional remote cleanup, and audit recording.
package processor

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/arjun-krishnan/docuverify/constants"
	"github.com/arjun-krishnan/docuverify/internal/fields"
	"github.com/arjun-krishnan/docuverify/internal/history"
	"github.com/arjun-krishnan/docuverify/internal/language"
	"github.com/arjun-krishnan/docuverify/internal/llm"
	"github.com/arjun-krishnan/docuverify/internal/ocr"
)

// OCRExtractor abstracts the external recognition boundary.
type OCRExtractor interface {
	Extract(ctx context.Context, path string) (ocr.Result, error)
}

// Processor wires the stages together. The fallback extractor and the
// history repository are optional; nil disables them.
type Processor struct {
	logger   *slog.Logger
	ocr      OCRExtractor
	fields   *fields.Extractor
	fallback llm.FieldExtractor
	records  history.Repository
}

func NewProcessor(logger *slog.Logger, ocrx OCRExtractor, fx *fields.Extractor, fallback llm.FieldExtractor, records history.Repository) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{logger: logger, ocr: ocrx, fields: fx, fallback: fallback, records: records}
}

// Result is the document-level outcome of a full pipeline run.
type Result struct {
	RecordID           uuid.UUID          `json:"record_id,omitempty"`
	Filename           string             `json:"filename"`
	Language           string             `json:"language_detected"`
	Method             string             `json:"method"`
	OCRConfidence      float32            `json:"ocr_confidence"`
	DocumentConfidence float32            `json:"document_confidence"`
	FallbackUsed       bool               `json:"fallback_used"`
	Fields             map[string]string  `json:"fields"`
	ConfidenceScores   map[string]float64 `json:"confidence_scores"`
	Warnings           []string           `json:"warnings,omitempty"`
}

// ProcessFile runs the pipeline over one uploaded document. OCR failure
// fails the run; a fallback failure only degrades it to OCR-only output.
func (p *Processor) ProcessFile(ctx context.Context, path, filename string) (*Result, error) {
	start := time.Now()

	ocrRes, err := p.ocr.Extract(ctx, path)
	if err != nil {
		p.logger.Error("pipeline.ocr.failed", "filename", filename, "error", err)
		return nil, err
	}

	ext := p.fields.ExtractAll(ocrRes.RawText, language.Tag(ocrRes.Language))

	res := &Result{
		Filename:         filename,
		Language:         string(ext.LanguageDetected),
		Method:           ocrRes.Method,
		OCRConfidence:    ocrRes.AvgConfidence,
		Fields:           ext.Fields,
		ConfidenceScores: ext.ConfidenceScores,
		Warnings:         ocrRes.Warnings,
	}

	if p.fallback != nil && ocrRes.AvgConfidence < constants.FallbackConfidenceThreshold {
		cleanup, _, fbErr := p.fallback.ExtractFields(ctx, llm.CleanupRequest{
			OCRText:       ocrRes.RawText,
			Language:      res.Language,
			OCRConfidence: ocrRes.AvgConfidence,
		})
		if fbErr != nil {
			// degrade to OCR-only output, never fail the request here
			p.logger.Warn("pipeline.fallback.failed", "filename", filename, "error", fbErr)
		} else {
			res.Fields = llm.MergeFields(ext.Fields, ocrRes.AvgConfidence, cleanup, p.logger)
			res.FallbackUsed = true
			for k := range res.Fields {
				if _, ok := res.ConfidenceScores[k]; !ok {
					res.ConfidenceScores[k] = constants.DefaultFieldConfidence
				}
			}
		}
	}

	res.DocumentConfidence = llm.DocumentConfidence(res.Fields, ocrRes.AvgConfidence)

	p.record(ctx, res)

	p.logger.Info("pipeline.process.ok",
		"filename", filename,
		"method", res.Method,
		"language", res.Language,
		"fields", len(res.Fields),
		"fallback_used", res.FallbackUsed,
		"document_confidence", res.DocumentConfidence,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

// record persists an audit row; persistence problems are logged, not
// surfaced to the caller.
func (p *Processor) record(ctx context.Context, res *Result) {
	if p.records == nil {
		return
	}

	scores := make(map[string]float32, len(res.ConfidenceScores))
	for k, v := range res.ConfidenceScores {
		scores[k] = float32(v)
	}
	rec := &history.ExtractionRecord{
		Filename:           res.Filename,
		Language:           res.Language,
		Method:             res.Method,
		OCRConfidence:      res.OCRConfidence,
		DocumentConfidence: res.DocumentConfidence,
		FallbackUsed:       res.FallbackUsed,
		Fields:             res.Fields,
		Scores:             scores,
	}
	if err := p.records.SaveExtraction(ctx, rec); err != nil {
		p.logger.Warn("pipeline.record.failed", "filename", res.Filename, "error", err)
		return
	}
	res.RecordID = rec.ID
}
