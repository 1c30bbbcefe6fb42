package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arjun-krishnan/docuverify/internal/llm"
)

const maxPromptChars = 3000

// ExtractFields implements llm.FieldExtractor over OpenRouter's
// chat/completions endpoint.
func (c *Client) ExtractFields(ctx context.Context, req llm.CleanupRequest) (llm.DocumentFields, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("llm.cleanup.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"text_len", len(req.OCRText),
		"language", req.Language,
		"ocr_confidence", req.OCRConfidence,
	)

	body := map[string]any{
		"model":       c.cfg.Model,
		"temperature": c.cfg.Temperature,
		"max_tokens":  c.cfg.MaxTokens,
		"messages": []map[string]any{
			{"role": "user", "content": buildCleanupPrompt(req.OCRText)},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}
	raw, status, err := llm.PostJSON(ctx, c.http, endpoint, body, headers, c.logger)
	if err != nil {
		c.logger.Error("llm.cleanup.http_error",
			"req_id", rid, "status", status, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.DocumentFields{}, nil, err
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.logger.Error("llm.cleanup.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.DocumentFields{}, raw, fmt.Errorf("decode openrouter response: %w", err)
	}
	if len(cc.Choices) == 0 {
		c.logger.Error("llm.cleanup.no_choices",
			"req_id", rid, "raw", string(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.DocumentFields{}, raw, fmt.Errorf("no choices in openrouter response")
	}

	content := llm.StripMarkdownFences(cc.Choices[0].Message.Content)
	sanitized, _, err := llm.NormalizeAndSanitizeJSON([]byte(content), c.logger)
	if err != nil {
		c.logger.Error("llm.cleanup.sanitize_failed",
			"req_id", rid, "error", err, "content", content,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.DocumentFields{}, []byte(content), fmt.Errorf("sanitize cleanup response: %w", err)
	}

	if err := llm.ValidateDocumentJSON(sanitized); err != nil {
		c.logger.Error("llm.cleanup.schema_validation_failed",
			"req_id", rid, "error", err, "content", string(sanitized),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.DocumentFields{}, sanitized, fmt.Errorf("schema validation failed: %w", err)
	}

	var out llm.DocumentFields
	if err := json.Unmarshal(sanitized, &out); err != nil {
		c.logger.Error("llm.cleanup.unmarshal_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.DocumentFields{}, sanitized, fmt.Errorf("unmarshal fields: %w", err)
	}

	c.logger.Info("llm.cleanup.ok",
		"req_id", rid,
		"fields", len(out.AsMap()),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, sanitized, nil
}

func buildCleanupPrompt(ocrText string) string {
	if len(ocrText) > maxPromptChars {
		ocrText = ocrText[:maxPromptChars]
	}

	var b strings.Builder
	b.WriteString(`Clean and correct the following OCR text. Extract and output ONLY the following fields in strict JSON format:
{
  "name": "",
  "age": "",
  "gender": "",
  "address": "",
  "phone": "",
  "email": ""
}

OCR Text:
`)
	b.WriteString(ocrText)
	b.WriteString(`

Rules:
- Extract only information that is clearly present in the text
- Do not hallucinate or invent information
- If a field is not found, use empty string ""
- Output ONLY valid JSON, no other text
`)
	return b.String()
}
